package inmemory

import (
	"reflect"
	"testing"

	"github.com/letmevibethatforyou/tripsearch"
	"github.com/letmevibethatforyou/tripsearch/textnorm"
)

func helpCatalog() ([]tripsearch.Item, tripsearch.Synonyms) {
	items := []tripsearch.Item{
		{ID: "reserva", Title: "¿Cómo reservo un tour?", TargetRef: "#reserva"},
		{ID: "pago", Title: "Medios de pago aceptados", TargetRef: "#pago"},
		{ID: "cancelacion", Title: "Política de cancelación y reembolsos", TargetRef: "#cancelacion"},
		{ID: "equipaje", Title: "¿Cuánto equipaje puedo llevar?", TargetRef: "#equipaje"},
		{ID: "documentos", Title: "Documentos para viajar", TargetRef: "#documentos"},
		{ID: "contacto", Title: "Contacto y atención al cliente", TargetRef: "#contacto"},
	}
	synonyms := tripsearch.Synonyms{
		"reserva":     {"reservar", "booking", "comprar"},
		"pago":        {"tarjeta", "yape", "plin", "transferencia"},
		"cancelacion": {"reembolso", "devolucion", "anular"},
		"equipaje":    {"maleta", "valija", "mochila"},
		"documentos":  {"pasaporte", "dni", "visa"},
		"contacto":    {"telefono", "whatsapp", "correo"},
	}
	return items, synonyms
}

func ids(results []tripsearch.Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Item.ID
	}
	return out
}

func TestRankEmptyQuery(t *testing.T) {
	items, synonyms := helpCatalog()

	for _, query := range []string{"", "   ", "\t\n"} {
		got := Rank(items, query, WithSynonyms(synonyms))
		want := []string{"reserva", "pago", "cancelacion", "equipaje"}
		if !reflect.DeepEqual(ids(got), want) {
			t.Errorf("Rank(%q) = %v, want %v", query, ids(got), want)
		}
		for _, r := range got {
			if r.Score != 0 {
				t.Errorf("Idle result %q has score %d", r.Item.ID, r.Score)
			}
		}
	}
}

func TestRankEmptyQuerySmallCatalog(t *testing.T) {
	items, _ := helpCatalog()
	got := Rank(items[:2], "")
	if !reflect.DeepEqual(ids(got), []string{"reserva", "pago"}) {
		t.Errorf("Unexpected idle results %v", ids(got))
	}

	if got := Rank(items, "", WithIdleCount(1)); len(got) != 1 {
		t.Errorf("Expected 1 idle result, got %d", len(got))
	}
}

func TestRankExcludesZeroScores(t *testing.T) {
	items, synonyms := helpCatalog()
	scorer := NewScorer(synonyms)

	for _, query := range []string{"pago", "maleta viaje", "xyz", "a", "política reembolso", "(.*)"} {
		for _, r := range Rank(items, query, WithSynonyms(synonyms)) {
			if r.Score <= 0 {
				t.Errorf("Query %q returned %q with score %d", query, r.Item.ID, r.Score)
			}
			if want := scorer.Score(r.Item, textnorm.Tokenize(query)); want != r.Score {
				t.Errorf("Query %q: result score %d disagrees with scorer %d", query, r.Score, want)
			}
		}
	}
}

func TestRankOrdering(t *testing.T) {
	items, synonyms := helpCatalog()

	got := Rank(items, "pago tarjeta", WithSynonyms(synonyms))
	if len(got) != 1 || got[0].Item.ID != "pago" {
		t.Fatalf("Expected only pago, got %v", ids(got))
	}

	got = Rank(items, "de", WithSynonyms(synonyms))
	for i := 1; i < len(got); i++ {
		if got[i-1].Score < got[i].Score {
			t.Errorf("Results not sorted descending at %d: %v", i, got)
		}
	}
}

func TestRankStableTies(t *testing.T) {
	items := []tripsearch.Item{
		{ID: "a1", Title: "Tour Lima"},
		{ID: "a2", Title: "Tour Cusco"},
		{ID: "a3", Title: "Tour Arequipa"},
		{ID: "a4", Title: "Tour tour Puno"},
	}

	got := Rank(items, "tour")
	want := []string{"a1", "a2", "a3", "a4"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Equal scores should keep catalog order: got %v, want %v", ids(got), want)
	}

	got = Rank(items, "tour cusco")
	want = []string{"a2", "a1", "a3", "a4"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Got %v, want %v", ids(got), want)
	}
}

func TestRankEndToEnd(t *testing.T) {
	items := []tripsearch.Item{
		{ID: "reserva", Title: "¿Cómo reservo un tour?"},
		{ID: "pago", Title: "Medios de pago aceptados"},
	}
	synonyms := tripsearch.Synonyms{
		"reserva": {"reservar", "booking"},
		"pago":    {"tarjeta", "yape"},
	}

	got := Rank(items, "Reservar", WithSynonyms(synonyms))
	if len(got) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(got))
	}
	if got[0].Item.ID != "reserva" || got[0].Score != 2 {
		t.Errorf("Expected reserva with score 2, got %q with %d", got[0].Item.ID, got[0].Score)
	}
}
