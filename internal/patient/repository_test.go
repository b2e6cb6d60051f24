package patient

import (
	"context"
	"reflect"
	"testing"

	"nutricare-server/internal/dietplan"
	"nutricare-server/internal/store"
)

func TestRepositorySeedsWhenCollectionAbsent(t *testing.T) {
	repo := NewRepository(store.NewMemory())
	patients, err := repo.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(patients) != 1 || patients[0].FullName != "Maria Silva" {
		t.Fatalf("unexpected seed: %+v", patients)
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo := NewRepository(store.NewMemory())
	ctx := context.Background()

	plan := dietplan.NewBlankPlan()
	plan.Notes = "beber 2L de água por dia"
	plan.Macros = &dietplan.Macros{Calories: 2000, Protein: 110, Carbs: 220, Fats: 70}
	saved := []Patient{
		{
			ID:       "p-1",
			FullName: "João Pereira",
			DOB:      "1995-03-02",
			Age:      29,
			Gender:   GenderMale,
			Contact:  ContactInfo{Email: "joao@email.com", City: "Recife"},
			Anamnesis: &Anamnesis{
				ClinicalStatus:   []Status{StatusActive, StatusConscious},
				FoodRestrictions: []string{"Glúten"},
				Goals:            []string{"Ganho de massa"},
				MealsPerDay:      4,
			},
			CurrentDietPlan: &plan,
		},
		{ID: "p-2", FullName: "Ana Costa", Gender: GenderFemale},
	}

	if err := repo.Replace(ctx, saved); err != nil {
		t.Fatal(err)
	}
	loaded, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded, saved) {
		t.Errorf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", saved, loaded)
	}
}
