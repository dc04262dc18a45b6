package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/letmevibethatforyou/tripsearch/highlight"
	"github.com/letmevibethatforyou/tripsearch/recent"
	"github.com/letmevibethatforyou/tripsearch/selection"
)

// commandPrefix marks an input line as a key press or a command instead
// of query text.
const commandPrefix = ":"

// session drives a Controller from text lines.
type session struct {
	controller *selection.Controller
	recent     *recent.Store
	out        io.Writer
}

func newSession(controller *selection.Controller, store *recent.Store, out io.Writer) *session {
	return &session{controller: controller, recent: store, out: out}
}

// hit is the printed form of one result.
type hit struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Target      string `json:"target,omitempty"`
	Highlighted string `json:"highlighted"`
	Active      bool   `json:"active,omitempty"`
}

// outcome is the printed form of a non-interactive run.
type outcome struct {
	Query     string                `json:"query"`
	Results   []hit                 `json:"results"`
	Activated *selection.Activation `json:"activated,omitempty"`
	Recent    []string              `json:"recent"`
}

// run sets query, presses keys in order and reports the final state.
// The last activation, if any, is reported.
func (s *session) run(ctx context.Context, query string, keys []selection.Key) outcome {
	s.controller.SetQuery(query)

	var activated *selection.Activation
	for _, key := range keys {
		if act, ok := s.controller.Handle(ctx, key); ok {
			activated = &act
		}
	}

	return outcome{
		Query:     s.controller.Query(),
		Results:   s.hits(),
		Activated: activated,
		Recent:    s.recent.List(),
	}
}

func (s *session) hits() []hit {
	query := s.controller.Query()
	items := s.controller.Results()
	hits := make([]hit, len(items))
	for i, item := range items {
		hits[i] = hit{
			ID:          item.ID,
			Title:       item.Title,
			Target:      item.TargetRef,
			Highlighted: highlight.Render(highlight.Highlight(item.Title, query), "[", "]"),
			Active:      i == s.controller.Active(),
		}
	}
	return hits
}

// exec handles one input line and reports whether the session is over.
func (s *session) exec(ctx context.Context, line string) bool {
	if !strings.HasPrefix(line, commandPrefix) {
		s.controller.SetQuery(line)
		s.render()
		return false
	}

	cmd := strings.TrimSpace(strings.TrimPrefix(line, commandPrefix))
	switch strings.ToLower(cmd) {
	case "q", "quit", "exit":
		return true
	case "recent":
		s.printRecent()
		return false
	case "clear":
		s.recent.Clear(ctx)
		s.printRecent()
		return false
	}

	key, err := selection.ParseKey(cmd)
	if err != nil {
		fmt.Fprintf(s.out, "unknown command %q\n", cmd)
		return false
	}

	if act, ok := s.controller.Handle(ctx, key); ok {
		fmt.Fprintf(s.out, "-> %s %s\n", act.Item.Title, act.Item.TargetRef)
	}
	s.render()
	return false
}

func (s *session) render() {
	query := s.controller.Query()
	if query == "" {
		fmt.Fprintln(s.out, "popular topics:")
	} else {
		fmt.Fprintf(s.out, "results for %q:\n", query)
	}

	hits := s.hits()
	if len(hits) == 0 {
		fmt.Fprintln(s.out, "  (no results)")
		return
	}
	for i, h := range hits {
		marker := " "
		if h.Active {
			marker = ">"
		}
		fmt.Fprintf(s.out, "%s %d. %s\n", marker, i+1, h.Highlighted)
	}
}

func (s *session) printRecent() {
	list := s.recent.List()
	if len(list) == 0 {
		fmt.Fprintln(s.out, "no recent queries")
		return
	}
	fmt.Fprintf(s.out, "recent: %s\n", strings.Join(list, ", "))
}
