package utils

import (
	"errors"
	"math"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"

	// kcal of energy per kg of body mass.
	kcalPerKg = 7700.0
)

// CalorieTarget computes a daily kcal budget from biometrics.
// BMR uses Mifflin-St Jeor; maintenance applies the activity
// multiplier; the deficit spreads (weight - goal) * 7700 kcal over the
// time period. A goal above the current weight yields a surplus — that
// is the bulking case and is accepted.
func CalorieTarget(
	weightKg, goalWeightKg, heightCm float64,
	ageYears int,
	gender string,
	activityMultiplier float64,
	timePeriodWeeks float64,
) (int, error) {
	if weightKg <= 0 || goalWeightKg <= 0 || heightCm <= 0 || ageYears <= 0 {
		return 0, errors.New("weight, goal weight, height and age must be positive")
	}
	if gender != GenderMale && gender != GenderFemale {
		return 0, errors.New("gender must be 'male' or 'female'")
	}
	if activityMultiplier < 1.2 || activityMultiplier > 1.9 {
		return 0, errors.New("activity multiplier must be between 1.2 and 1.9")
	}
	if timePeriodWeeks <= 0 {
		return 0, errors.New("time period must be a positive number of weeks")
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if gender == GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	maintenance := bmr * activityMultiplier
	totalDeficit := (weightKg - goalWeightKg) * kcalPerKg
	dailyDeficit := totalDeficit / (timePeriodWeeks * 7)

	return int(math.Round(maintenance - dailyDeficit)), nil
}
