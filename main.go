package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/swaggo/swag" // swag import

	"cardio_recommend/config"
	"cardio_recommend/db"
	_ "cardio_recommend/docs" // swagger docs
	"cardio_recommend/handlers"
	"cardio_recommend/logger"
	"cardio_recommend/services"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	logger.Info("logging initialized", "level", cfg.Log.Level, "format", cfg.Log.Format, "output", cfg.Log.Output)

	// Select the knowledge backend once for the process lifetime. If the
	// relational store and the static file both fail, refuse to start.
	store, err := services.OpenKnowledgeStore(cfg)
	if err != nil {
		logger.Error("no usable knowledge backend", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	bundle, err := services.LoadKnowledge(context.Background(), store)
	if err != nil {
		logger.Error("loading knowledge base failed", "error", err)
		os.Exit(1)
	}

	scorer := services.NewRiskEngine(bundle.Conditions)
	retriever := services.NewRetrievalEngine(bundle)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	handlers.RegisterRoutes(r, scorer, retriever, bundle, cfg)

	logger.Info("server starting", "address", cfg.Server.Addr, "backend", bundle.Backend)
	logger.Info("swagger documentation available", "url", "http://localhost"+cfg.Server.Addr+"/swagger/index.html")
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, r))
}
