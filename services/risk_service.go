package services

import (
	"math"
	"strings"

	"cardio_recommend/models"
)

// Multipliers applied on top of the age-driven base score.
const (
	maleMultiplier      = 1.2
	smokerMultiplier    = 1.5
	sedentaryMultiplier = 1.3
)

// ageCurve is a linear, monotonically non-decreasing age-to-base-score
// function: base + (age-20)*slope, floored at base below age 20.
type ageCurve struct {
	base  float64
	slope float64
}

// riskCurves holds the heuristic curve per condition code. Codes missing
// here still get a 0.0 entry in the score map.
var riskCurves = map[string]ageCurve{
	"АГ":  {base: 0.10, slope: 0.008},
	"СД2": {base: 0.05, slope: 0.005},
	"ИБС": {base: 0.05, slope: 0.007},
}

// queryTerms maps the dominant condition to the base search terms.
var queryTerms = map[string]string{
	"АГ":  "давление сосуды",
	"СД2": "сахар инсулин",
	"ИБС": "сердце миокард",
}

const defaultQueryTerms = "сердце сосуды"

// RiskEngine is the heuristic stand-in for a model-backed scorer. It is a
// pure function of the profile: no I/O, no randomness, no shared state.
type RiskEngine struct {
	order []string // static condition order, also the dominance tie-break
}

// NewRiskEngine builds a scorer over the given condition set. The slice
// order is preserved and used for deterministic tie-breaking.
func NewRiskEngine(conditions []models.Condition) *RiskEngine {
	order := make([]string, 0, len(conditions))
	for _, c := range conditions {
		order = append(order, c.Code)
	}
	return &RiskEngine{order: order}
}

// Score computes the risk score map and the derived search query.
// Every valid profile produces a result; the function is total.
func (e *RiskEngine) Score(profile *models.Profile) (models.RiskScoreMap, string) {
	scores := make(models.RiskScoreMap, len(e.order))
	for _, code := range e.order {
		scores[code] = e.scoreCondition(code, profile)
	}

	dominant := e.dominantCondition(scores)
	query := e.buildQuery(dominant, profile)

	return scores, query
}

func (e *RiskEngine) scoreCondition(code string, profile *models.Profile) float64 {
	curve, ok := riskCurves[code]
	if !ok {
		return 0.0
	}

	score := curve.base
	if profile.Age > 20 {
		score += float64(profile.Age-20) * curve.slope
	}

	if profile.Gender == models.GenderMale {
		score *= maleMultiplier
	}
	if profile.SmokingStatus == models.SmokingSmoker {
		score *= smokerMultiplier
	}
	if profile.ActivityLevel == models.ActivitySedentary {
		score *= sedentaryMultiplier
	}

	score = math.Max(0.0, math.Min(1.0, score))
	return math.Round(score*100) / 100
}

// dominantCondition returns the highest-scoring condition; ties go to the
// earlier entry in the static condition order.
func (e *RiskEngine) dominantCondition(scores models.RiskScoreMap) string {
	dominant := ""
	best := -1.0
	for _, code := range e.order {
		if scores[code] > best {
			dominant = code
			best = scores[code]
		}
	}
	return dominant
}

func (e *RiskEngine) buildQuery(dominant string, profile *models.Profile) string {
	var sb strings.Builder

	if terms, ok := queryTerms[dominant]; ok {
		sb.WriteString(terms)
	} else {
		sb.WriteString(defaultQueryTerms)
	}

	if profile.SmokingStatus == models.SmokingSmoker {
		sb.WriteString(" курение")
	}
	if profile.ActivityLevel == models.ActivitySedentary {
		sb.WriteString(" активность")
	}
	if profile.ActivityLevel == models.ActivityActive {
		sb.WriteString(" энергия")
	}
	if profile.Age > 50 {
		sb.WriteString(" усталость")
	}

	return sb.String()
}
