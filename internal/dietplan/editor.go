package dietplan

import (
	"errors"
	"fmt"
)

// ErrInvalidIndex reports an edit addressed to a day, meal or item that does
// not exist. Indices come from the caller's own view of the plan, so an
// out-of-range index is a contract violation; edits never partially apply.
var ErrInvalidIndex = errors.New("dietplan: index out of range")

// MealField names an editable scalar field of a Meal.
type MealField string

const (
	MealName MealField = "name"
	MealTime MealField = "time"
)

// ItemField names an editable field of a MealItem.
type ItemField string

const (
	ItemFood    ItemField = "food"
	ItemPortion ItemField = "portion"
	ItemUnit    ItemField = "unit"
)

// Every editor operation takes and returns plan values with copy-on-write
// semantics: only the path down to the targeted node is reallocated, all
// sibling subtrees keep their backing arrays.

// UpdateMealField replaces one scalar field of one meal.
func UpdateMealField(plan DietPlan, day, meal int, field MealField, value string) (DietPlan, error) {
	if err := checkMeal(plan, day, meal); err != nil {
		return DietPlan{}, err
	}
	out := plan
	out.Weeks = copyWeeks(plan.Weeks)
	meals := copyMeals(out.Weeks[day].Meals)
	switch field {
	case MealName:
		meals[meal].Name = value
	case MealTime:
		meals[meal].Time = value
	default:
		return DietPlan{}, fmt.Errorf("dietplan: unknown meal field %q", field)
	}
	out.Weeks[day].Meals = meals
	return out, nil
}

// UpdateItemField replaces one field of one meal item.
func UpdateItemField(plan DietPlan, day, meal, item int, field ItemField, value string) (DietPlan, error) {
	if err := checkItem(plan, day, meal, item); err != nil {
		return DietPlan{}, err
	}
	out := plan
	out.Weeks = copyWeeks(plan.Weeks)
	meals := copyMeals(out.Weeks[day].Meals)
	items := copyItems(meals[meal].Items)
	switch field {
	case ItemFood:
		items[item].Food = value
	case ItemPortion:
		items[item].Portion = value
	case ItemUnit:
		items[item].Unit = value
	default:
		return DietPlan{}, fmt.Errorf("dietplan: unknown item field %q", field)
	}
	meals[meal].Items = items
	out.Weeks[day].Meals = meals
	return out, nil
}

// AddMeal appends a default meal to one day.
func AddMeal(plan DietPlan, day int) (DietPlan, error) {
	if err := checkDay(plan, day); err != nil {
		return DietPlan{}, err
	}
	out := plan
	out.Weeks = copyWeeks(plan.Weeks)
	meals := copyMeals(out.Weeks[day].Meals)
	out.Weeks[day].Meals = append(meals, Meal{
		Name:  "Nova Refeição",
		Time:  "00:00",
		Items: []MealItem{{Food: "", Portion: "1", Unit: "unidade(s)"}},
	})
	return out, nil
}

// RemoveMeal deletes a meal by position.
func RemoveMeal(plan DietPlan, day, meal int) (DietPlan, error) {
	if err := checkMeal(plan, day, meal); err != nil {
		return DietPlan{}, err
	}
	out := plan
	out.Weeks = copyWeeks(plan.Weeks)
	src := out.Weeks[day].Meals
	meals := make([]Meal, 0, len(src)-1)
	meals = append(meals, src[:meal]...)
	meals = append(meals, src[meal+1:]...)
	out.Weeks[day].Meals = meals
	return out, nil
}

// AddItem appends a default item to one meal.
func AddItem(plan DietPlan, day, meal int) (DietPlan, error) {
	if err := checkMeal(plan, day, meal); err != nil {
		return DietPlan{}, err
	}
	out := plan
	out.Weeks = copyWeeks(plan.Weeks)
	meals := copyMeals(out.Weeks[day].Meals)
	meals[meal].Items = append(copyItems(meals[meal].Items), MealItem{Food: "", Portion: "", Unit: "g"})
	out.Weeks[day].Meals = meals
	return out, nil
}

// RemoveItem deletes a meal item by position.
func RemoveItem(plan DietPlan, day, meal, item int) (DietPlan, error) {
	if err := checkItem(plan, day, meal, item); err != nil {
		return DietPlan{}, err
	}
	out := plan
	out.Weeks = copyWeeks(plan.Weeks)
	meals := copyMeals(out.Weeks[day].Meals)
	src := meals[meal].Items
	items := make([]MealItem, 0, len(src)-1)
	items = append(items, src[:item]...)
	items = append(items, src[item+1:]...)
	meals[meal].Items = items
	out.Weeks[day].Meals = meals
	return out, nil
}

// Edit is one structural edit request, dispatched by Op.
type Edit struct {
	Op    string `json:"op"`
	Day   int    `json:"day"`
	Meal  int    `json:"meal"`
	Item  int    `json:"item"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// Editor operation names accepted by Apply.
const (
	OpUpdateMealField = "updateMealField"
	OpUpdateItemField = "updateItemField"
	OpAddMeal         = "addMeal"
	OpRemoveMeal      = "removeMeal"
	OpAddItem         = "addItem"
	OpRemoveItem      = "removeItem"
)

// Apply dispatches one edit to the matching operation.
func Apply(plan DietPlan, e Edit) (DietPlan, error) {
	switch e.Op {
	case OpUpdateMealField:
		return UpdateMealField(plan, e.Day, e.Meal, MealField(e.Field), e.Value)
	case OpUpdateItemField:
		return UpdateItemField(plan, e.Day, e.Meal, e.Item, ItemField(e.Field), e.Value)
	case OpAddMeal:
		return AddMeal(plan, e.Day)
	case OpRemoveMeal:
		return RemoveMeal(plan, e.Day, e.Meal)
	case OpAddItem:
		return AddItem(plan, e.Day, e.Meal)
	case OpRemoveItem:
		return RemoveItem(plan, e.Day, e.Meal, e.Item)
	default:
		return DietPlan{}, fmt.Errorf("dietplan: unknown edit op %q", e.Op)
	}
}

func copyWeeks(weeks []DailyDiet) []DailyDiet {
	out := make([]DailyDiet, len(weeks))
	copy(out, weeks)
	return out
}

func copyMeals(meals []Meal) []Meal {
	out := make([]Meal, len(meals))
	copy(out, meals)
	return out
}

func copyItems(items []MealItem) []MealItem {
	out := make([]MealItem, len(items))
	copy(out, items)
	return out
}

func checkDay(plan DietPlan, day int) error {
	if day < 0 || day >= len(plan.Weeks) {
		return fmt.Errorf("%w: day %d", ErrInvalidIndex, day)
	}
	return nil
}

func checkMeal(plan DietPlan, day, meal int) error {
	if err := checkDay(plan, day); err != nil {
		return err
	}
	if meal < 0 || meal >= len(plan.Weeks[day].Meals) {
		return fmt.Errorf("%w: meal %d", ErrInvalidIndex, meal)
	}
	return nil
}

func checkItem(plan DietPlan, day, meal, item int) error {
	if err := checkMeal(plan, day, meal); err != nil {
		return err
	}
	if item < 0 || item >= len(plan.Weeks[day].Meals[meal].Items) {
		return fmt.Errorf("%w: item %d", ErrInvalidIndex, item)
	}
	return nil
}
