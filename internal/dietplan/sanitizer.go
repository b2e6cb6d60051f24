package dietplan

import (
	"strconv"
	"strings"
)

// seasoningDenylist holds condiment keywords exempt from portion correction.
// "1g" of salt is a plausible prescription; "1g" of rice is a hallucination.
var seasoningDenylist = []string{
	"sal", "azeite", "óleo", "vinagre", "pimenta",
	"açúcar", "adoçante", "canela", "orégano", "manteiga",
}

// Sanitize repairs implausible machine-generated portion values. It is pure
// and idempotent: non-numeric portions, seasoning items and unrecognized
// units always pass through unchanged. Apply it exactly once, when a
// generated plan is ingested, never to user-edited data.
func Sanitize(plan DietPlan) DietPlan {
	out := plan
	out.Weeks = make([]DailyDiet, len(plan.Weeks))
	copy(out.Weeks, plan.Weeks)
	for di, day := range out.Weeks {
		meals := make([]Meal, len(day.Meals))
		copy(meals, day.Meals)
		for mi, meal := range meals {
			items := make([]MealItem, len(meal.Items))
			copy(items, meal.Items)
			for ii, item := range items {
				items[ii] = sanitizeItem(item)
			}
			meals[mi].Items = items
		}
		out.Weeks[di].Meals = meals
	}
	return out
}

func sanitizeItem(item MealItem) MealItem {
	qty, err := strconv.ParseFloat(strings.TrimSpace(item.Portion), 64)
	if err != nil {
		return item
	}
	if isSeasoning(strings.ToLower(item.Food)) {
		return item
	}
	switch strings.ToLower(item.Unit) {
	case "g":
		if qty < 10 {
			item.Portion = "100"
		}
	case "ml":
		if qty < 10 {
			item.Portion = "200"
		}
	}
	return item
}

func isSeasoning(food string) bool {
	for _, s := range seasoningDenylist {
		if strings.Contains(food, s) {
			return true
		}
	}
	return false
}
