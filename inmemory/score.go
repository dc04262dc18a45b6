package inmemory

import (
	"strings"

	"github.com/letmevibethatforyou/tripsearch"
	"github.com/letmevibethatforyou/tripsearch/textnorm"
)

// Weights are the per-token score contributions of each match kind.
type Weights struct {
	// Title is added when the normalized title contains the token.
	Title int
	// ID is added when the normalized item ID contains the token.
	ID int
	// Synonym is added when any normalized synonym of the item contains the token.
	Synonym int
}

// DefaultWeights are the tuned production weights.
var DefaultWeights = Weights{Title: 3, ID: 2, Synonym: 2}

// Scorer computes additive relevance scores for catalog items.
type Scorer struct {
	Synonyms tripsearch.Synonyms
	Weights  Weights
}

// NewScorer returns a scorer using DefaultWeights.
func NewScorer(synonyms tripsearch.Synonyms) Scorer {
	return Scorer{Synonyms: synonyms, Weights: DefaultWeights}
}

// Score returns the relevance of item for the given tokens. Tokens are
// expected to be normalized (see textnorm.Tokenize). No tokens score zero.
func (s Scorer) Score(item tripsearch.Item, tokens []string) int {
	if len(tokens) == 0 {
		return 0
	}

	title := textnorm.Normalize(item.Title)
	id := textnorm.Normalize(item.ID)
	synonyms := s.Synonyms.For(item.ID)
	normalized := make([]string, len(synonyms))
	for i, syn := range synonyms {
		normalized[i] = textnorm.Normalize(syn)
	}

	score := 0
	for _, token := range tokens {
		if strings.Contains(title, token) {
			score += s.Weights.Title
		}
		if strings.Contains(id, token) {
			score += s.Weights.ID
		}
		for _, syn := range normalized {
			if strings.Contains(syn, token) {
				score += s.Weights.Synonym
				break
			}
		}
	}
	return score
}
