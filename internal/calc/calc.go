// Package calc implements the stateless nutrition calculators: body mass
// index, Harris-Benedict energy expenditure and arm muscle circumference.
package calc

import (
	"errors"
	"fmt"
)

var ErrValidation = errors.New("calc: invalid input")

// BMI expects height in centimeters and weight in kilograms.
func BMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, fmt.Errorf("%w: height and weight must be positive", ErrValidation)
	}
	// Sanity checks to avoid garbage input
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, fmt.Errorf("%w: height/weight out of plausible range", ErrValidation)
	}

	h := heightCm / 100.0
	return weightKg / (h * h), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Abaixo do peso"
	case bmi < 24.9:
		return "Peso normal"
	case bmi < 29.9:
		return "Sobrepeso"
	default:
		return "Obesidade"
	}
}

// Activity factors for the TDEE multiplier.
const (
	ActivitySedentary = 1.2
	ActivityLight     = 1.375
	ActivityModerate  = 1.55
	ActivityIntense   = 1.725
)

// BMR computes the Harris-Benedict basal metabolic rate. Sex is "male" or
// "female"; weight in kg, height in cm, age in years.
func BMR(sex string, weightKg, heightCm float64, age int) (float64, error) {
	if weightKg <= 0 || heightCm <= 0 || age <= 0 {
		return 0, fmt.Errorf("%w: weight, height and age must be positive", ErrValidation)
	}
	switch sex {
	case "male":
		return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*float64(age), nil
	case "female":
		return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*float64(age), nil
	default:
		return 0, fmt.Errorf("%w: sex must be male or female", ErrValidation)
	}
}

// TDEE scales a basal rate by the activity factor.
func TDEE(bmr, activity float64) (float64, error) {
	if activity < 1 || activity > 2.5 {
		return 0, fmt.Errorf("%w: activity factor out of range", ErrValidation)
	}
	return bmr * activity, nil
}

// CMB estimates the arm muscle circumference from the arm circumference
// (cm) and the triceps skinfold (mm): CMB = CB - 0.314 * DCT.
func CMB(armCircumferenceCm, tricepsSkinfoldMm float64) (float64, error) {
	if armCircumferenceCm <= 0 {
		return 0, fmt.Errorf("%w: arm circumference must be positive", ErrValidation)
	}
	if tricepsSkinfoldMm < 0 {
		return 0, fmt.Errorf("%w: skinfold cannot be negative", ErrValidation)
	}
	return armCircumferenceCm - 0.314*tricepsSkinfoldMm, nil
}

// CMBStatus classifies the estimate. Thresholds are the simplified general
// reference used on intake assessments.
func CMBStatus(cmb float64) string {
	switch {
	case cmb < 19:
		return "Depleção Muscular Moderada/Grave"
	case cmb < 22:
		return "Depleção Muscular Leve"
	case cmb > 30:
		return "Musculatura Preservada/Alta"
	default:
		return "Normal"
	}
}
