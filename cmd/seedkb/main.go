package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"cardio_recommend/config"
	"cardio_recommend/db"
	"cardio_recommend/logger"
	"cardio_recommend/repository"
	"cardio_recommend/services"
)

// seedkb loads the static knowledge base files into MySQL. It runs
// out-of-band before the service starts; request handling never writes.
func main() {
	app := &cli.App{
		Name:  "seedkb",
		Usage: "seed the relational knowledge base from the static files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kb-file",
				Usage: "knowledge base JSON file",
			},
			&cli.StringFlag{
				Name:  "synonyms-file",
				Usage: "synonym table YAML file",
			},
		},
		Action: seed,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func seed(c *cli.Context) error {
	cfg := config.Load()
	logger.InitDefault()

	kbPath := c.String("kb-file")
	if kbPath == "" {
		kbPath = cfg.Knowledge.FilePath
	}
	synonymsPath := c.String("synonyms-file")
	if synonymsPath == "" {
		synonymsPath = cfg.Knowledge.SynonymsPath
	}

	if err := db.InitMySQLWithConfig(cfg); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if err := repository.InitSchema(ctx); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	store, err := services.NewFileStore(kbPath, synonymsPath)
	if err != nil {
		return err
	}
	bundle, err := services.LoadKnowledge(ctx, store)
	if err != nil {
		return err
	}

	conditionIDs := make(map[string]string, len(bundle.Conditions))
	conditionsCreated := 0
	for _, cond := range bundle.Conditions {
		id, err := repository.InsertCondition(ctx, cond)
		if err != nil {
			return fmt.Errorf("insert condition %s: %w", cond.Code, err)
		}
		if id == cond.ID {
			conditionsCreated++
		}
		conditionIDs[cond.Code] = id
	}

	supplementsCreated := 0
	for i, supp := range bundle.Supplements {
		conditionID := conditionIDs[supp.ConditionCode]
		exists, err := repository.SupplementExists(ctx, conditionID, supp.Name)
		if err != nil {
			return fmt.Errorf("check supplement %s: %w", supp.Name, err)
		}
		if exists {
			logger.Info("supplement already seeded, skipping", "name", supp.Name)
			continue
		}
		if err := repository.InsertSupplement(ctx, conditionID, supp, i); err != nil {
			return fmt.Errorf("insert supplement %s: %w", supp.Name, err)
		}
		supplementsCreated++
	}

	for root, terms := range bundle.Synonyms {
		if err := repository.ReplaceSynonyms(ctx, root, terms); err != nil {
			return fmt.Errorf("replace synonyms for %s: %w", root, err)
		}
	}

	logger.Info("seeding complete",
		"conditions_created", conditionsCreated,
		"supplements_created", supplementsCreated,
		"synonym_roots", len(bundle.Synonyms))
	return nil
}
