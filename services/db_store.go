package services

import (
	"context"
	"fmt"
	"time"

	"cardio_recommend/config"
	"cardio_recommend/db"
	"cardio_recommend/models"
	"cardio_recommend/repository"
)

// dbStore serves the knowledge base from MySQL. It is only consulted at
// startup to preload data; requests never touch the database.
type dbStore struct {
	queryTimeout time.Duration
}

// NewDBStore connects to MySQL and verifies the knowledge base has data.
// A connection failure or an empty supplements table is an error so the
// caller can fall back to the static file.
func NewDBStore(cfg *config.Config) (KnowledgeStore, error) {
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("no database DSN configured")
	}
	if err := db.InitMySQLWithConfig(cfg); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	timeout := time.Duration(cfg.Knowledge.ConnectTimeoutSec) * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	count, err := repository.CountSupplements(ctx)
	if err != nil {
		return nil, fmt.Errorf("count supplements: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("database reachable but holds no supplements")
	}

	return &dbStore{queryTimeout: timeout}, nil
}

func (s *dbStore) Kind() string { return "database" }

func (s *dbStore) LoadConditions(ctx context.Context) ([]models.Condition, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	return repository.LoadConditions(ctx)
}

func (s *dbStore) LoadSupplements(ctx context.Context) ([]models.Supplement, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	return repository.LoadSupplements(ctx)
}

func (s *dbStore) LoadSynonymTable(ctx context.Context) (models.SynonymTable, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	return repository.LoadSynonyms(ctx)
}
