package calc

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestBMI(t *testing.T) {
	got, err := BMI(170, 70)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(got, 24.22) {
		t.Errorf("BMI = %.2f, want 24.22", got)
	}
}

func TestBMIRejectsImplausibleInput(t *testing.T) {
	cases := []struct {
		name           string
		height, weight float64
	}{
		{"zero height", 0, 70},
		{"zero weight", 170, 0},
		{"negative weight", 170, -5},
		{"tiny height", 30, 70},
		{"huge weight", 170, 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := BMI(tc.height, tc.weight); !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestBMICategory(t *testing.T) {
	cases := []struct {
		bmi  float64
		want string
	}{
		{17.0, "Abaixo do peso"},
		{22.0, "Peso normal"},
		{27.0, "Sobrepeso"},
		{32.0, "Obesidade"},
	}
	for _, tc := range cases {
		if got := BMICategory(tc.bmi); got != tc.want {
			t.Errorf("BMICategory(%.1f) = %q, want %q", tc.bmi, got, tc.want)
		}
	}
}

func TestBMRHarrisBenedict(t *testing.T) {
	// male: 88.362 + 13.397*80 + 4.799*180 - 5.677*30 = 1853.632
	got, err := BMR("male", 80, 180, 30)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(got, 1853.632) {
		t.Errorf("male BMR = %.2f, want 1853.63", got)
	}

	// female: 447.593 + 9.247*60 + 3.098*165 - 4.330*25 = 1405.333
	got, err = BMR("female", 60, 165, 25)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(got, 1405.333) {
		t.Errorf("female BMR = %.2f, want 1405.33", got)
	}

	if _, err := BMR("other", 80, 180, 30); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
	if _, err := BMR("male", 0, 180, 30); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestTDEE(t *testing.T) {
	got, err := TDEE(1800, ActivityModerate)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(got, 2790) {
		t.Errorf("TDEE = %.2f, want 2790", got)
	}
	if _, err := TDEE(1800, 0.5); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestCMB(t *testing.T) {
	// 28 - 0.314*12 = 24.232
	got, err := CMB(28, 12)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(got, 24.232) {
		t.Errorf("CMB = %.3f, want 24.232", got)
	}
	if _, err := CMB(0, 12); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
	if _, err := CMB(28, -1); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestCMBStatus(t *testing.T) {
	cases := []struct {
		cmb  float64
		want string
	}{
		{17.5, "Depleção Muscular Moderada/Grave"},
		{20.0, "Depleção Muscular Leve"},
		{25.0, "Normal"},
		{31.0, "Musculatura Preservada/Alta"},
	}
	for _, tc := range cases {
		if got := CMBStatus(tc.cmb); got != tc.want {
			t.Errorf("CMBStatus(%.1f) = %q, want %q", tc.cmb, got, tc.want)
		}
	}
}
