package dietplan

import (
	"time"

	"github.com/google/uuid"
)

// Weekdays is the fixed day order of every plan, Monday through Sunday.
var Weekdays = []string{"Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado", "Domingo"}

// Units lists the portion units a MealItem may carry.
var Units = []string{
	"g", "ml", "kg", "l",
	"colher(es) sopa", "colher(es) chá",
	"xícara(s)", "fatia(s)", "unidade(s)", "à vontade",
}

// MealItem is a single food entry. Portion is kept as a string because it may
// be a qualitative phrase ("à vontade") rather than a number.
type MealItem struct {
	Food     string   `json:"food"`
	Portion  string   `json:"portion"`
	Unit     string   `json:"unit,omitempty"`
	Calories *float64 `json:"calories,omitempty"`
}

type Meal struct {
	Name  string     `json:"name"`
	Time  string     `json:"time"`
	Items []MealItem `json:"items"`
}

type DailyDiet struct {
	DayOfWeek string `json:"dayOfWeek"`
	Meals     []Meal `json:"meals"`
}

// Macros holds daily average estimates, not per-meal values.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// DietPlan is a 7-day structured meal schedule. It is owned exclusively by
// its patient; replacing it discards the previous plan.
type DietPlan struct {
	ID          string      `json:"id"`
	CreatedAt   time.Time   `json:"createdAt"`
	Weeks       []DailyDiet `json:"weeks"`
	Notes       string      `json:"notes"`
	Explanation string      `json:"explanation,omitempty"`
	Macros      *Macros     `json:"macros,omitempty"`
}

// Analysis is the nutrient/justification estimate for an existing plan.
type Analysis struct {
	Explanation string `json:"explanation"`
	Macros      Macros `json:"macros"`
}

// NewBlankPlan returns a fresh 7-day plan with the default Breakfast, Lunch
// and Dinner skeleton used for manual authoring.
func NewBlankPlan() DietPlan {
	weeks := make([]DailyDiet, 0, len(Weekdays))
	for _, day := range Weekdays {
		weeks = append(weeks, DailyDiet{
			DayOfWeek: day,
			Meals: []Meal{
				{Name: "Café da Manhã", Time: "08:00", Items: []MealItem{{Food: "", Portion: "1", Unit: "unidade(s)"}}},
				{Name: "Almoço", Time: "12:00", Items: []MealItem{{Food: "", Portion: "100", Unit: "g"}}},
				{Name: "Jantar", Time: "19:00", Items: []MealItem{{Food: "", Portion: "100", Unit: "g"}}},
			},
		})
	}
	return DietPlan{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Weeks:     weeks,
	}
}

// NormalizeWeek forces a plan to exactly 7 days in the fixed weekday order,
// truncating extras and padding missing days with empty meal lists. Day names
// supplied by a generator are preserved when present.
func NormalizeWeek(plan DietPlan) DietPlan {
	weeks := make([]DailyDiet, len(Weekdays))
	for i := range Weekdays {
		if i < len(plan.Weeks) {
			weeks[i] = plan.Weeks[i]
		}
		if weeks[i].DayOfWeek == "" {
			weeks[i].DayOfWeek = Weekdays[i]
		}
		if weeks[i].Meals == nil {
			weeks[i].Meals = []Meal{}
		}
	}
	plan.Weeks = weeks
	return plan
}
