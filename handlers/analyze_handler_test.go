package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardio_recommend/config"
	"cardio_recommend/logger"
	"cardio_recommend/models"
	"cardio_recommend/services"
)

func TestMain(m *testing.M) {
	logger.InitDefault()
	os.Exit(m.Run())
}

func testRouter(t *testing.T) *chi.Mux {
	t.Helper()

	bundle := &services.KnowledgeBundle{
		Backend: "file",
		Conditions: []models.Condition{
			{ID: "c1", Code: "АГ", Name: "Артериальная гипертензия"},
			{ID: "c2", Code: "СД2", Name: "Сахарный диабет 2 типа"},
			{ID: "c3", Code: "ИБС", Name: "Ишемическая болезнь сердца"},
		},
		Supplements: []models.Supplement{
			{
				ID:            "s1",
				ConditionCode: "АГ",
				Name:          "Магний глицинат",
				Dosage:        "200-400 мг/день",
				Mechanism:     "Поддерживает вазодилатацию",
				Keywords:      []string{"давление", "магний"},
			},
			{
				ID:            "s2",
				ConditionCode: "СД2",
				Name:          "Берберин",
				Keywords:      []string{"сахар", "глюкоза"},
			},
		},
		Synonyms: models.SynonymTable{
			"давление": {"аг", "гипертензия", "сосуды", "магний", "вазодилатация"},
		},
	}

	cfg := &config.Config{}
	cfg.Knowledge.TopK = 5

	scorer := services.NewRiskEngine(bundle.Conditions)
	retriever := services.NewRetrievalEngine(bundle)

	r := chi.NewRouter()
	RegisterRoutes(r, scorer, retriever, bundle, cfg)
	return r
}

func TestAnalyzeEndpoint(t *testing.T) {
	router := testRouter(t)

	body := `{"age": 45, "gender": "male", "smoking_status": "smoker", "activity_level": "sedentary"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Code    int                    `json:"code"`
		Message string                 `json:"message"`
		Data    models.AnalyzeResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, models.CodeSuccess, resp.Code)
	require.Len(t, resp.Data.RiskScores, 3)
	for code, score := range resp.Data.RiskScores {
		assert.GreaterOrEqual(t, score, 0.0, code)
		assert.LessOrEqual(t, score, 1.0, code)
	}
	assert.NotEmpty(t, resp.Data.SearchQuery)

	// Hypertension dominates for this profile, so the magnesium record matches.
	require.NotEmpty(t, resp.Data.Supplements)
	assert.Equal(t, "Магний глицинат", resp.Data.Supplements[0].Name)
}

func TestAnalyzeRejectsInvalidProfile(t *testing.T) {
	router := testRouter(t)

	cases := []string{
		`{"age": 12, "gender": "male", "smoking_status": "smoker", "activity_level": "sedentary"}`,
		`{"age": 45, "gender": "other", "smoking_status": "smoker", "activity_level": "sedentary"}`,
		`{"age": 45, "gender": "male", "smoking_status": "sometimes", "activity_level": "sedentary"}`,
		`{"age": 45, "gender": "male", "smoking_status": "smoker", "activity_level": "lazy"}`,
		`not json at all`,
	}

	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		var resp models.APIResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, models.CodeInvalidParams, resp.Code, "body: %s", body)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Code int `json:"code"`
		Data struct {
			Status      string `json:"status"`
			Backend     string `json:"backend"`
			Supplements int    `json:"supplements"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, models.CodeSuccess, resp.Code)
	assert.Equal(t, "ok", resp.Data.Status)
	assert.Equal(t, "file", resp.Data.Backend)
	assert.Equal(t, 2, resp.Data.Supplements)
}
