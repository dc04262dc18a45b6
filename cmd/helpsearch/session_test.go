package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/letmevibethatforyou/tripsearch/catalog"
	"github.com/letmevibethatforyou/tripsearch/inmemory"
	"github.com/letmevibethatforyou/tripsearch/recent"
	"github.com/letmevibethatforyou/tripsearch/selection"
)

func newTestSession(t *testing.T) (*session, *bytes.Buffer) {
	t.Helper()
	help := catalog.DefaultHelp()
	searcher, err := inmemory.New(help.Items, inmemory.WithSynonyms(help.Synonyms))
	if err != nil {
		t.Fatalf("inmemory.New failed: %v", err)
	}
	store := recent.New(context.Background(), recent.NewMemoryStorage())
	var out bytes.Buffer
	return newSession(selection.New(searcher, selection.WithRecent(store)), store, &out), &out
}

func TestSessionRun(t *testing.T) {
	s, _ := newTestSession(t)

	got := s.run(context.Background(), "pasaporte", []selection.Key{selection.KeyEnter})

	if len(got.Results) != 1 || got.Results[0].ID != "documentos" {
		t.Fatalf("Unexpected results %+v", got.Results)
	}
	if got.Activated == nil || got.Activated.Item.ID != "documentos" || got.Activated.Index != 0 {
		t.Errorf("Unexpected activation %+v", got.Activated)
	}
	if len(got.Recent) != 1 || got.Recent[0] != "pasaporte" {
		t.Errorf("Expected recent [pasaporte], got %v", got.Recent)
	}
}

func TestSessionRunNavigation(t *testing.T) {
	s, _ := newTestSession(t)

	got := s.run(context.Background(), "", []selection.Key{selection.KeyDown, selection.KeyDown, selection.KeyUp})

	if len(got.Results) != inmemory.DefaultIdleCount {
		t.Fatalf("Expected %d idle results, got %d", inmemory.DefaultIdleCount, len(got.Results))
	}
	if !got.Results[0].Active {
		t.Errorf("Expected first result active, got %+v", got.Results)
	}
	if got.Activated != nil {
		t.Errorf("Expected no activation, got %+v", got.Activated)
	}
	if len(got.Recent) != 0 {
		t.Errorf("Expected no recent queries, got %v", got.Recent)
	}
}

func TestSessionHighlights(t *testing.T) {
	s, _ := newTestSession(t)
	s.controller.SetQuery("Equipaje")

	hits := s.hits()
	if len(hits) == 0 || hits[0].ID != "equipaje" {
		t.Fatalf("Unexpected hits %+v", hits)
	}
	if hits[0].Highlighted != "¿Cuánto [equipaje] puedo llevar?" {
		t.Errorf("Unexpected highlight %q", hits[0].Highlighted)
	}
}

func TestSessionExec(t *testing.T) {
	s, out := newTestSession(t)
	ctx := context.Background()

	if s.exec(ctx, "maleta") {
		t.Fatal("query line should not end the session")
	}
	if !strings.Contains(out.String(), `results for "maleta"`) {
		t.Errorf("Expected results header, got %q", out.String())
	}

	out.Reset()
	s.exec(ctx, ":down")
	if !strings.Contains(out.String(), "> 1.") {
		t.Errorf("Expected first row marked active, got %q", out.String())
	}

	out.Reset()
	s.exec(ctx, ":enter")
	if !strings.Contains(out.String(), "-> ¿Cuánto equipaje puedo llevar? #equipaje") {
		t.Errorf("Expected activation line, got %q", out.String())
	}

	out.Reset()
	s.exec(ctx, ":recent")
	if strings.TrimSpace(out.String()) != "recent: maleta" {
		t.Errorf("Unexpected recent output %q", out.String())
	}

	out.Reset()
	s.exec(ctx, ":clear")
	if strings.TrimSpace(out.String()) != "no recent queries" {
		t.Errorf("Unexpected clear output %q", out.String())
	}

	out.Reset()
	s.exec(ctx, ":jump")
	if !strings.Contains(out.String(), `unknown command "jump"`) {
		t.Errorf("Expected unknown command message, got %q", out.String())
	}

	if !s.exec(ctx, ":quit") {
		t.Error("Expected :quit to end the session")
	}
}

func TestSessionExecNoResults(t *testing.T) {
	s, out := newTestSession(t)

	s.exec(context.Background(), "zzzz")
	if !strings.Contains(out.String(), "(no results)") {
		t.Errorf("Expected empty marker, got %q", out.String())
	}
}

func TestParseKeys(t *testing.T) {
	keys, err := parseKeys([]string{"ArrowDown", "enter"})
	if err != nil {
		t.Fatalf("parseKeys failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != selection.KeyDown || keys[1] != selection.KeyEnter {
		t.Errorf("Unexpected keys %v", keys)
	}

	if _, err := parseKeys([]string{"Tab"}); err == nil {
		t.Error("Expected error for unknown key")
	}
}

func TestOpenStorage(t *testing.T) {
	ctx := context.Background()

	storage, closeFn, err := openStorage(ctx, storageConfig{})
	if err != nil {
		t.Fatalf("openStorage failed: %v", err)
	}
	if _, ok := storage.(*recent.MemoryStorage); !ok {
		t.Errorf("Expected memory storage, got %T", storage)
	}
	if err := closeFn(); err != nil {
		t.Errorf("close failed: %v", err)
	}

	storage, closeFn, err = openStorage(ctx, storageConfig{badgerDir: t.TempDir()})
	if err != nil {
		t.Fatalf("openStorage badger failed: %v", err)
	}
	if err := storage.Set(ctx, "k", "v"); err != nil {
		t.Errorf("Set failed: %v", err)
	}
	if err := closeFn(); err != nil {
		t.Errorf("close failed: %v", err)
	}

	if _, _, err := openStorage(ctx, storageConfig{badgerDir: "x", redisURL: "redis://localhost"}); err == nil {
		t.Error("Expected error for two backends")
	}
}
