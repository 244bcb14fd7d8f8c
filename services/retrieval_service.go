package services

import (
	"sort"

	"cardio_recommend/models"
	"cardio_recommend/utils"
)

// Per-field match weights. Warnings text is intentionally absent:
// it must never influence ranking.
const (
	weightName      = 5
	weightKeywords  = 3
	weightMechanism = 1
)

// DefaultTopK is the result size when the caller does not configure one.
const DefaultTopK = 5

// supplementTokens caches the tokenized scorable fields of one supplement.
type supplementTokens struct {
	name      map[string]struct{}
	keywords  map[string]struct{}
	mechanism map[string]struct{}
}

// RetrievalEngine scores the in-memory knowledge base against a search
// query. All state is built once from the loaded bundle and read-only
// afterwards, so concurrent Retrieve calls need no locking.
type RetrievalEngine struct {
	supplements []models.Supplement
	tokens      []supplementTokens
	synonyms    models.SynonymTable
}

// NewRetrievalEngine tokenizes every supplement's scorable fields up front.
// Supplement slice order is the static order used for ranking tie-breaks.
func NewRetrievalEngine(bundle *KnowledgeBundle) *RetrievalEngine {
	engine := &RetrievalEngine{
		supplements: bundle.Supplements,
		tokens:      make([]supplementTokens, 0, len(bundle.Supplements)),
		synonyms:    bundle.Synonyms,
	}
	for _, s := range bundle.Supplements {
		keywordTokens := make(map[string]struct{})
		for _, kw := range s.Keywords {
			for _, t := range utils.Tokenize(kw) {
				keywordTokens[t] = struct{}{}
			}
		}
		engine.tokens = append(engine.tokens, supplementTokens{
			name:      utils.TokenSet(s.Name),
			keywords:  keywordTokens,
			mechanism: utils.TokenSet(s.Mechanism),
		})
	}
	return engine
}

// Retrieve returns the ranked top-k supplements for the query. An empty
// token set, k <= 0 or an empty knowledge base all yield an empty result,
// never an error.
func (e *RetrievalEngine) Retrieve(query string, k int) models.RetrievalResult {
	if k <= 0 {
		return models.RetrievalResult{}
	}

	tokens := utils.Tokenize(query)
	if len(tokens) == 0 {
		return models.RetrievalResult{}
	}

	matchSet := e.expandTokens(tokens)

	scored := make(models.RetrievalResult, 0, len(e.supplements))
	for i, s := range e.supplements {
		score := e.scoreSupplement(e.tokens[i], matchSet)
		if score > 0 {
			scored = append(scored, models.ScoredSupplement{Supplement: s, Score: score})
		}
	}

	// Stable sort keeps the static load order between equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// expandTokens builds the match set: each token plus its direct synonym
// expansions. Expansion is one level deep; expansions of expansions are
// never chased, which keeps the set bounded.
func (e *RetrievalEngine) expandTokens(tokens []string) map[string]struct{} {
	matchSet := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		matchSet[token] = struct{}{}
		for _, expansion := range e.synonyms[token] {
			matchSet[expansion] = struct{}{}
		}
	}
	return matchSet
}

// scoreSupplement sums per-term, per-field weights. Each term in the match
// set counts a field at most once, regardless of how often it occurs there.
func (e *RetrievalEngine) scoreSupplement(tokens supplementTokens, matchSet map[string]struct{}) int {
	score := 0
	for term := range matchSet {
		if _, ok := tokens.name[term]; ok {
			score += weightName
		}
		if _, ok := tokens.keywords[term]; ok {
			score += weightKeywords
		}
		if _, ok := tokens.mechanism[term]; ok {
			score += weightMechanism
		}
	}
	return score
}
