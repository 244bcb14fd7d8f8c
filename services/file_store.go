package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"cardio_recommend/models"
)

// conditionEntry mirrors one object of the static knowledge base file:
// a condition with its embedded supplement list.
type conditionEntry struct {
	Condition string `json:"condition"`
	Name      string `json:"name"`
	NameEN    string `json:"name_en"`
	Supps     []struct {
		Name      string   `json:"name"`
		Dosage    string   `json:"dosage"`
		Mechanism string   `json:"mechanism"`
		Keywords  []string `json:"keywords"`
		Warnings  string   `json:"warnings"`
	} `json:"supplements"`
}

// fileStore serves the knowledge base from a JSON file plus a YAML synonym
// table. Both files are parsed eagerly so a broken fallback fails at
// startup instead of at first request.
type fileStore struct {
	conditions  []models.Condition
	supplements []models.Supplement
	synonyms    models.SynonymTable
}

// NewFileStore reads and parses both static files.
func NewFileStore(kbPath, synonymsPath string) (KnowledgeStore, error) {
	kbData, err := os.ReadFile(kbPath)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base %s: %w", kbPath, err)
	}

	var entries []conditionEntry
	if err := json.Unmarshal(kbData, &entries); err != nil {
		return nil, fmt.Errorf("parse knowledge base %s: %w", kbPath, err)
	}

	synData, err := os.ReadFile(synonymsPath)
	if err != nil {
		return nil, fmt.Errorf("read synonym table %s: %w", synonymsPath, err)
	}

	var synonyms models.SynonymTable
	if err := yaml.Unmarshal(synData, &synonyms); err != nil {
		return nil, fmt.Errorf("parse synonym table %s: %w", synonymsPath, err)
	}

	store := &fileStore{synonyms: synonyms}
	for _, entry := range entries {
		if entry.Condition == "" {
			return nil, fmt.Errorf("knowledge base %s: entry without condition code", kbPath)
		}
		name := entry.Name
		if name == "" {
			name = entry.Condition
		}
		store.conditions = append(store.conditions, models.Condition{
			ID:     uuid.NewString(),
			Code:   entry.Condition,
			Name:   name,
			NameEN: entry.NameEN,
		})
		for _, s := range entry.Supps {
			store.supplements = append(store.supplements, models.Supplement{
				ID:            uuid.NewString(),
				ConditionCode: entry.Condition,
				Name:          s.Name,
				Dosage:        s.Dosage,
				Mechanism:     s.Mechanism,
				Keywords:      s.Keywords,
				Warnings:      s.Warnings,
			})
		}
	}

	return store, nil
}

func (s *fileStore) Kind() string { return "file" }

func (s *fileStore) LoadConditions(ctx context.Context) ([]models.Condition, error) {
	return s.conditions, nil
}

func (s *fileStore) LoadSupplements(ctx context.Context) ([]models.Supplement, error) {
	return s.supplements, nil
}

func (s *fileStore) LoadSynonymTable(ctx context.Context) (models.SynonymTable, error) {
	return s.synonyms, nil
}
