package selection

import (
	"context"
	"reflect"
	"testing"

	"github.com/letmevibethatforyou/tripsearch"
	"github.com/letmevibethatforyou/tripsearch/inmemory"
	"github.com/letmevibethatforyou/tripsearch/recent"
)

func newSearcher(t *testing.T) *inmemory.Searcher {
	t.Helper()
	searcher, err := inmemory.New([]tripsearch.Item{
		{ID: "reserva", Title: "¿Cómo reservo un tour?", TargetRef: "#reserva"},
		{ID: "pago", Title: "Medios de pago aceptados", TargetRef: "#pago"},
		{ID: "cancelacion", Title: "Política de cancelación", TargetRef: "#cancelacion"},
		{ID: "equipaje", Title: "Equipaje permitido", TargetRef: "#equipaje"},
		{ID: "documentos", Title: "Documentos de viaje", TargetRef: "#documentos"},
	}, inmemory.WithSynonyms(tripsearch.Synonyms{
		"pago":     {"tarjeta"},
		"equipaje": {"maleta"},
	}))
	if err != nil {
		t.Fatalf("inmemory.New failed: %v", err)
	}
	return searcher
}

// fixedRanker always returns n items.
func fixedRanker(n int) Ranker {
	return RankerFunc(func(string) []tripsearch.Item {
		items := make([]tripsearch.Item, n)
		for i := range items {
			items[i] = tripsearch.Item{ID: string(rune('a' + i))}
		}
		return items
	})
}

func TestInitialState(t *testing.T) {
	c := New(newSearcher(t))
	if c.Active() != NoSelection {
		t.Errorf("Expected NoSelection, got %d", c.Active())
	}
	if len(c.Results()) != inmemory.DefaultIdleCount {
		t.Errorf("Expected idle results, got %d", len(c.Results()))
	}
	if _, ok := c.Selected(); ok {
		t.Error("Expected no selected item")
	}
}

func TestWrapAround(t *testing.T) {
	ctx := context.Background()
	c := New(fixedRanker(3))

	c.Handle(ctx, KeyDown)
	c.Handle(ctx, KeyDown)
	c.Handle(ctx, KeyDown)
	if c.Active() != 2 {
		t.Fatalf("Expected active 2, got %d", c.Active())
	}

	c.Handle(ctx, KeyDown)
	if c.Active() != 0 {
		t.Errorf("Next from last should wrap to 0, got %d", c.Active())
	}

	c.Handle(ctx, KeyUp)
	if c.Active() != 2 {
		t.Errorf("Previous from 0 should wrap to 2, got %d", c.Active())
	}

	c.Handle(ctx, KeyLeft)
	c.Handle(ctx, KeyRight)
	if c.Active() != 2 {
		t.Errorf("Left then Right should return to 2, got %d", c.Active())
	}
}

func TestPreviousFromNoSelection(t *testing.T) {
	c := New(fixedRanker(3))
	c.Handle(context.Background(), KeyUp)
	if c.Active() != 2 {
		t.Errorf("Expected last index, got %d", c.Active())
	}
}

func TestEmptyResultsAreNoops(t *testing.T) {
	ctx := context.Background()
	c := New(fixedRanker(0))

	for _, key := range []Key{KeyDown, KeyUp, KeyRight, KeyLeft} {
		c.Handle(ctx, key)
		if c.Active() != NoSelection {
			t.Errorf("%v changed active index to %d", key, c.Active())
		}
	}
	if _, ok := c.Handle(ctx, KeyEnter); ok {
		t.Error("Enter should not activate with no results")
	}
}

func TestQueryChangeResetsSelection(t *testing.T) {
	ctx := context.Background()
	c := New(newSearcher(t))

	c.SetQuery("de")
	c.Handle(ctx, KeyDown)
	c.Handle(ctx, KeyDown)
	if c.Active() != 1 {
		t.Fatalf("Expected active 1, got %d", c.Active())
	}

	c.SetQuery("de ")
	if c.Active() != NoSelection {
		t.Errorf("Expected NoSelection after query change, got %d", c.Active())
	}
	if c.Query() != "de " {
		t.Errorf("Unexpected query %q", c.Query())
	}
}

func TestEnterActivates(t *testing.T) {
	ctx := context.Background()
	store := recent.New(ctx, recent.NewMemoryStorage())
	c := New(newSearcher(t), WithRecent(store))

	c.SetQuery("maleta")
	act, ok := c.Handle(ctx, KeyEnter)
	if !ok {
		t.Fatal("Expected activation")
	}
	if act.Item.ID != "equipaje" || act.Index != 0 || act.Query != "maleta" {
		t.Errorf("Unexpected activation %+v", act)
	}
	if act.Item.TargetRef != "#equipaje" {
		t.Errorf("Unexpected target %q", act.Item.TargetRef)
	}

	c.SetQuery("de")
	c.Handle(ctx, KeyDown)
	c.Handle(ctx, KeyDown)
	act, ok = c.Handle(ctx, KeyEnter)
	if !ok || act.Index != 1 {
		t.Fatalf("Expected activation of index 1, got %+v, %v", act, ok)
	}
	if act.Item.ID != c.Results()[1].ID {
		t.Errorf("Activated %q, expected %q", act.Item.ID, c.Results()[1].ID)
	}

	if got := store.List(); !reflect.DeepEqual(got, []string{"de", "maleta"}) {
		t.Errorf("Recent queries = %v", got)
	}
}

func TestEnterWithoutRecentStore(t *testing.T) {
	c := New(fixedRanker(2))
	act, ok := c.Handle(context.Background(), KeyEnter)
	if !ok || act.Item.ID != "a" {
		t.Errorf("Expected first item, got %+v, %v", act, ok)
	}
}

func TestEscapeResets(t *testing.T) {
	ctx := context.Background()
	c := New(newSearcher(t))

	c.SetQuery("pago")
	c.Handle(ctx, KeyDown)
	c.Handle(ctx, KeyEscape)

	if c.Query() != "" {
		t.Errorf("Expected empty query, got %q", c.Query())
	}
	if c.Active() != NoSelection {
		t.Errorf("Expected NoSelection, got %d", c.Active())
	}
	if len(c.Results()) != inmemory.DefaultIdleCount {
		t.Errorf("Expected idle results after escape, got %d", len(c.Results()))
	}
}

func TestUnknownKeyIsIgnored(t *testing.T) {
	c := New(fixedRanker(2))
	if _, ok := c.Handle(context.Background(), KeyUnknown); ok {
		t.Error("Unknown key should not activate")
	}
	if c.Active() != NoSelection {
		t.Errorf("Unknown key changed selection to %d", c.Active())
	}
}
