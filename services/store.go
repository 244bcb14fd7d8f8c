package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"cardio_recommend/config"
	"cardio_recommend/logger"
	"cardio_recommend/models"
	"cardio_recommend/utils"
)

// KnowledgeBundle is the validated, immutable knowledge data handed to the
// retrieval engine. Loaded once at startup, read concurrently afterwards.
type KnowledgeBundle struct {
	Backend     string
	Conditions  []models.Condition
	Supplements []models.Supplement
	Synonyms    models.SynonymTable
}

// OpenKnowledgeStore selects the backend for the process lifetime.
// The relational store is tried first; on failure the static file backend
// takes over. An unusable file backend is returned as an error, which the
// caller must treat as fatal.
func OpenKnowledgeStore(cfg *config.Config) (KnowledgeStore, error) {
	store, err := NewDBStore(cfg)
	if err == nil {
		logger.Info("knowledge base using relational backend")
		return store, nil
	}
	logger.Warn("relational backend unavailable, falling back to static file",
		"error", err, "file", cfg.Knowledge.FilePath)

	store, err = NewFileStore(cfg.Knowledge.FilePath, cfg.Knowledge.SynonymsPath)
	if err != nil {
		return nil, fmt.Errorf("static file backend unusable: %w", err)
	}
	logger.Info("knowledge base using static file backend",
		"file", cfg.Knowledge.FilePath, "synonyms", cfg.Knowledge.SynonymsPath)
	return store, nil
}

// LoadKnowledge pulls all reference data out of the store and validates it.
// The three loads run concurrently; any failure aborts the whole load.
func LoadKnowledge(ctx context.Context, store KnowledgeStore) (*KnowledgeBundle, error) {
	bundle := &KnowledgeBundle{Backend: store.Kind()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bundle.Conditions, err = store.LoadConditions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bundle.Supplements, err = store.LoadSupplements(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bundle.Synonyms, err = store.LoadSynonymTable(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load knowledge from %s backend: %w", store.Kind(), err)
	}

	if err := validateBundle(bundle); err != nil {
		return nil, fmt.Errorf("%s backend returned inconsistent data: %w", store.Kind(), err)
	}

	bundle.Synonyms = normalizeSynonyms(bundle.Synonyms)

	if len(bundle.Supplements) == 0 {
		logger.Warn("knowledge base holds no supplements, every retrieval will be empty",
			"backend", store.Kind())
	}

	logger.Info("knowledge base loaded",
		"backend", bundle.Backend,
		"conditions", len(bundle.Conditions),
		"supplements", len(bundle.Supplements),
		"synonym_roots", len(bundle.Synonyms))

	return bundle, nil
}

// validateBundle enforces the supplement-to-condition relation: every
// supplement must resolve to exactly one known condition.
func validateBundle(bundle *KnowledgeBundle) error {
	known := make(map[string]bool, len(bundle.Conditions))
	for _, c := range bundle.Conditions {
		if c.Code == "" {
			return fmt.Errorf("condition %q has an empty code", c.Name)
		}
		if known[c.Code] {
			return fmt.Errorf("duplicate condition code %q", c.Code)
		}
		known[c.Code] = true
	}
	for _, s := range bundle.Supplements {
		if !known[s.ConditionCode] {
			return fmt.Errorf("supplement %q references unknown condition %q", s.Name, s.ConditionCode)
		}
	}
	return nil
}

// normalizeSynonyms lower-cases and trims every root and expansion term.
func normalizeSynonyms(table models.SynonymTable) models.SynonymTable {
	normalized := make(models.SynonymTable, len(table))
	for root, terms := range table {
		root = utils.NormalizeTerm(root)
		if root == "" {
			continue
		}
		cleaned := make([]string, 0, len(terms))
		for _, term := range terms {
			term = utils.NormalizeTerm(term)
			if term != "" {
				cleaned = append(cleaned, term)
			}
		}
		normalized[root] = utils.DeduplicateSlice(cleaned)
	}
	return normalized
}
