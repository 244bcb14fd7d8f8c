package models

import "fmt"

// Gender values accepted in a profile.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Smoking status values accepted in a profile.
const (
	SmokingSmoker    = "smoker"
	SmokingNonSmoker = "non-smoker"
)

// Activity level values accepted in a profile.
const (
	ActivitySedentary = "sedentary"
	ActivityModerate  = "moderate"
	ActivityActive    = "active"
)

// Profile is the physiological input for risk scoring. It is owned by the
// caller and lives for a single request.
type Profile struct {
	Age           int    `json:"age" example:"45"`
	Gender        string `json:"gender" example:"male"`
	SmokingStatus string `json:"smoking_status" example:"smoker"`
	ActivityLevel string `json:"activity_level" example:"sedentary"`
}

// Validate checks field ranges and enum membership.
func (p *Profile) Validate() error {
	if p.Age < 18 || p.Age > 100 {
		return fmt.Errorf("age must be between 18 and 100, got %d", p.Age)
	}
	switch p.Gender {
	case GenderMale, GenderFemale:
	default:
		return fmt.Errorf("gender must be %q or %q, got %q", GenderMale, GenderFemale, p.Gender)
	}
	switch p.SmokingStatus {
	case SmokingSmoker, SmokingNonSmoker:
	default:
		return fmt.Errorf("smoking_status must be %q or %q, got %q", SmokingSmoker, SmokingNonSmoker, p.SmokingStatus)
	}
	switch p.ActivityLevel {
	case ActivitySedentary, ActivityModerate, ActivityActive:
	default:
		return fmt.Errorf("activity_level must be %q, %q or %q, got %q",
			ActivitySedentary, ActivityModerate, ActivityActive, p.ActivityLevel)
	}
	return nil
}

// RiskScoreMap maps a condition code to a risk score in [0.0, 1.0].
// It always carries an entry for every known condition.
type RiskScoreMap map[string]float64
