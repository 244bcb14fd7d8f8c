package models

// Condition is a health-risk category supplements belong to.
// The set is static reference data, read-only at request time.
type Condition struct {
	ID     string `json:"id"`
	Code   string `json:"code" example:"АГ"`
	Name   string `json:"name" example:"Артериальная гипертензия"`
	NameEN string `json:"name_en,omitempty" example:"Hypertension"`
}

// Supplement is a single recommendation record. Each supplement belongs to
// exactly one condition; the store resolves the relation before returning.
type Supplement struct {
	ID            string   `json:"id"`
	ConditionCode string   `json:"condition_code"`
	Name          string   `json:"name"`
	Dosage        string   `json:"dosage,omitempty"`
	Mechanism     string   `json:"mechanism,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
	Warnings      string   `json:"warnings,omitempty"`
}

// SynonymTable maps a root term to its expansion terms. Keys and values are
// lower-cased, trimmed tokens; the table is loaded once and never mutated.
type SynonymTable map[string][]string

// ScoredSupplement pairs a supplement with its internal match score.
type ScoredSupplement struct {
	Supplement Supplement
	Score      int
}

// RetrievalResult is an ordered top-k list of scored supplements,
// descending by score. Created and discarded per request.
type RetrievalResult []ScoredSupplement

// Supplements strips the internal scores for the HTTP boundary.
func (r RetrievalResult) Supplements() []Supplement {
	out := make([]Supplement, 0, len(r))
	for _, s := range r {
		out = append(out, s.Supplement)
	}
	return out
}
