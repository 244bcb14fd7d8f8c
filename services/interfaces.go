package services

import (
	"context"

	"cardio_recommend/models"
)

// KnowledgeStore is the read-only boundary to whichever backend holds the
// knowledge base. A store is selected once at startup and never re-selected.
type KnowledgeStore interface {
	// Kind names the backend ("database" or "file") for logs and health checks.
	Kind() string

	LoadConditions(ctx context.Context) ([]models.Condition, error)
	LoadSupplements(ctx context.Context) ([]models.Supplement, error)
	LoadSynonymTable(ctx context.Context) (models.SynonymTable, error)
}

// RiskScorer converts a profile into per-condition risk scores and a
// derived search query. Implementations must be pure and deterministic,
// so a model-backed scorer can replace the heuristic one without touching
// the retrieval side.
type RiskScorer interface {
	Score(profile *models.Profile) (models.RiskScoreMap, string)
}

// Retriever returns the ranked top-k supplements for a search query.
type Retriever interface {
	Retrieve(query string, k int) models.RetrievalResult
}
