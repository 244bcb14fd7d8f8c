package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardio_recommend/models"
)

func defaultConditions() []models.Condition {
	return []models.Condition{
		{ID: "c1", Code: "АГ", Name: "Артериальная гипертензия"},
		{ID: "c2", Code: "СД2", Name: "Сахарный диабет 2 типа"},
		{ID: "c3", Code: "ИБС", Name: "Ишемическая болезнь сердца"},
	}
}

func TestScoreDeterminism(t *testing.T) {
	engine := NewRiskEngine(defaultConditions())
	profile := &models.Profile{
		Age:           45,
		Gender:        models.GenderMale,
		SmokingStatus: models.SmokingSmoker,
		ActivityLevel: models.ActivitySedentary,
	}

	scores1, query1 := engine.Score(profile)
	scores2, query2 := engine.Score(profile)

	assert.Equal(t, scores1, scores2)
	assert.Equal(t, query1, query2)
}

func TestScoreMonotonicInAge(t *testing.T) {
	engine := NewRiskEngine(defaultConditions())

	prev := make(models.RiskScoreMap)
	for age := 18; age <= 100; age++ {
		profile := &models.Profile{
			Age:           age,
			Gender:        models.GenderFemale,
			SmokingStatus: models.SmokingNonSmoker,
			ActivityLevel: models.ActivityModerate,
		}
		scores, _ := engine.Score(profile)
		for code, score := range scores {
			if age > 18 {
				assert.GreaterOrEqual(t, score, prev[code],
					"score for %s dropped between age %d and %d", code, age-1, age)
			}
		}
		prev = scores
	}
}

func TestMultiplierOrdering(t *testing.T) {
	engine := NewRiskEngine(defaultConditions())

	base := models.Profile{
		Age:           50,
		Gender:        models.GenderFemale,
		SmokingStatus: models.SmokingNonSmoker,
		ActivityLevel: models.ActivityModerate,
	}

	smoker := base
	smoker.SmokingStatus = models.SmokingSmoker
	male := base
	male.Gender = models.GenderMale
	sedentary := base
	sedentary.ActivityLevel = models.ActivitySedentary
	active := base
	active.ActivityLevel = models.ActivityActive

	baseScores, _ := engine.Score(&base)
	smokerScores, _ := engine.Score(&smoker)
	maleScores, _ := engine.Score(&male)
	sedentaryScores, _ := engine.Score(&sedentary)
	activeScores, _ := engine.Score(&active)

	for code := range baseScores {
		assert.GreaterOrEqual(t, smokerScores[code], baseScores[code], "smoker < non-smoker for %s", code)
		assert.GreaterOrEqual(t, maleScores[code], baseScores[code], "male < female for %s", code)
		assert.GreaterOrEqual(t, sedentaryScores[code], baseScores[code], "sedentary < moderate for %s", code)
		assert.GreaterOrEqual(t, baseScores[code], activeScores[code], "moderate < active for %s", code)
	}
}

func TestScoresStayWithinBounds(t *testing.T) {
	engine := NewRiskEngine(defaultConditions())

	profile := &models.Profile{
		Age:           100,
		Gender:        models.GenderMale,
		SmokingStatus: models.SmokingSmoker,
		ActivityLevel: models.ActivitySedentary,
	}
	scores, _ := engine.Score(profile)
	for code, score := range scores {
		assert.GreaterOrEqual(t, score, 0.0, "score for %s below 0", code)
		assert.LessOrEqual(t, score, 1.0, "score for %s above 1", code)
	}
}

func TestEveryConditionGetsAnEntry(t *testing.T) {
	conditions := append(defaultConditions(),
		models.Condition{ID: "c4", Code: "Пост-ОИМ", Name: "Постинфарктное состояние"})
	engine := NewRiskEngine(conditions)

	scores, _ := engine.Score(&models.Profile{
		Age:           40,
		Gender:        models.GenderMale,
		SmokingStatus: models.SmokingNonSmoker,
		ActivityLevel: models.ActivityModerate,
	})

	require.Len(t, scores, 4)
	assert.Contains(t, scores, "Пост-ОИМ")
	assert.Equal(t, 0.0, scores["Пост-ОИМ"], "conditions without a curve score zero")
}

func TestQueryDerivation(t *testing.T) {
	engine := NewRiskEngine(defaultConditions())

	// Hypertension dominates at mid ages; plain profile has no suffix terms.
	scores, query := engine.Score(&models.Profile{
		Age:           25,
		Gender:        models.GenderFemale,
		SmokingStatus: models.SmokingNonSmoker,
		ActivityLevel: models.ActivityModerate,
	})
	assert.Greater(t, scores["АГ"], scores["СД2"])
	assert.Greater(t, scores["АГ"], scores["ИБС"])
	assert.Equal(t, "давление сосуды", query)

	// Smoker + sedentary + over 50 appends all three suffix terms.
	_, query = engine.Score(&models.Profile{
		Age:           55,
		Gender:        models.GenderMale,
		SmokingStatus: models.SmokingSmoker,
		ActivityLevel: models.ActivitySedentary,
	})
	assert.Equal(t, "давление сосуды курение активность усталость", query)

	// Active profiles get the energy term instead.
	_, query = engine.Score(&models.Profile{
		Age:           30,
		Gender:        models.GenderFemale,
		SmokingStatus: models.SmokingNonSmoker,
		ActivityLevel: models.ActivityActive,
	})
	assert.Equal(t, "давление сосуды энергия", query)
}

func TestDominantTieBreakFollowsStaticOrder(t *testing.T) {
	// At the extreme every condition clamps to 1.0, forcing a tie that
	// must resolve to the first condition in the static order.
	profile := &models.Profile{
		Age:           100,
		Gender:        models.GenderMale,
		SmokingStatus: models.SmokingSmoker,
		ActivityLevel: models.ActivitySedentary,
	}

	engine := NewRiskEngine(defaultConditions())
	scores, query := engine.Score(profile)
	require.Equal(t, 1.0, scores["АГ"])
	require.Equal(t, 1.0, scores["ИБС"])
	assert.Equal(t, "давление сосуды курение активность усталость", query)

	reordered := NewRiskEngine([]models.Condition{
		{ID: "c3", Code: "ИБС", Name: "Ишемическая болезнь сердца"},
		{ID: "c1", Code: "АГ", Name: "Артериальная гипертензия"},
		{ID: "c2", Code: "СД2", Name: "Сахарный диабет 2 типа"},
	})
	_, query = reordered.Score(profile)
	assert.Equal(t, "сердце миокард курение активность усталость", query)
}
