package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"cardio_recommend/config"
	_ "cardio_recommend/docs" // swagger docs
	"cardio_recommend/logger"
	"cardio_recommend/models"
	"cardio_recommend/services"
	"cardio_recommend/utils"
)

// AnalyzeHandler godoc
// @Summary Analyze a physiological profile
// @Description Computes per-condition risk scores from the profile and returns the ranked supplement recommendations retrieved for the derived search query
// @Tags analysis
// @Accept json
// @Produce json
// @Param profile body models.Profile true "Physiological profile"
// @Success 200 {object} models.APIResponse "success"
// @Failure 400 {object} models.APIResponse "invalid profile"
// @Router /api/v1/analyze [post]
func AnalyzeHandler(w http.ResponseWriter, r *http.Request, scorer services.RiskScorer, retriever services.Retriever, cfg *config.Config) {
	profile, ok := utils.DecodeProfile(w, r)
	if !ok {
		return
	}

	scores, query := scorer.Score(profile)
	logger.Info("profile scored", "query", query, "age", profile.Age)

	results := retriever.Retrieve(query, cfg.Knowledge.TopK)
	logger.Info("retrieval finished", "query", query, "results", len(results))

	// An empty result is a valid outcome, not an error.
	utils.WriteSuccessResponse(w, models.AnalyzeResponse{
		RiskScores:  scores,
		SearchQuery: query,
		Supplements: results.Supplements(),
	})
}

// HealthHandler godoc
// @Summary Service health
// @Description Reports the active knowledge backend and how much data it serves
// @Tags health
// @Produce json
// @Success 200 {object} models.APIResponse "success"
// @Router /api/v1/health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request, bundle *services.KnowledgeBundle) {
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"status":      "ok",
		"backend":     bundle.Backend,
		"conditions":  len(bundle.Conditions),
		"supplements": len(bundle.Supplements),
	})
}

func RegisterRoutes(r *chi.Mux, scorer services.RiskScorer, retriever services.Retriever, bundle *services.KnowledgeBundle, cfg *config.Config) {
	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Post("/api/v1/analyze", func(w http.ResponseWriter, req *http.Request) {
		AnalyzeHandler(w, req, scorer, retriever, cfg)
	})

	r.Get("/api/v1/health", func(w http.ResponseWriter, req *http.Request) {
		HealthHandler(w, req, bundle)
	})
}
