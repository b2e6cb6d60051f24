package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nutricare-server/internal/patient"
)

// newTestGemini points the client at a server that replies with the given
// JSON document wrapped in the generateContent envelope.
func newTestGemini(t *testing.T, reply string, capture *generateRequest) *Gemini {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		envelope := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": reply}}}},
			},
		}
		json.NewEncoder(w).Encode(envelope)
	}))
	t.Cleanup(srv.Close)

	g := NewGemini("test-key")
	g.baseURL = srv.URL
	return g
}

func testAnamnesis() patient.Anamnesis {
	return patient.Anamnesis{
		ClinicalStatus:   []patient.Status{patient.StatusActive},
		Goals:            []string{"Emagrecimento"},
		FoodRestrictions: []string{"lactose"},
		DietType:         "Low Carb",
		MealsPerDay:      4,
	}
}

func TestGeneratePlanParsesReply(t *testing.T) {
	reply := `{
		"weeks": [{"dayOfWeek": "Segunda-feira", "meals": [{"name": "Almoço", "time": "12:00", "items": [{"food": "Frango grelhado", "portion": "150", "unit": "g"}]}]}],
		"notes": "Beber 2L de água",
		"explanation": "Plano hipocalórico",
		"macros": {"calories": 1800, "protein": 120, "carbs": 150, "fats": 60}
	}`
	var captured generateRequest
	g := newTestGemini(t, reply, &captured)

	plan, err := g.GeneratePlan(context.Background(), patient.Patient{FullName: "Maria Silva", Age: 33}, testAnamnesis())
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.Weeks) != 1 || plan.Weeks[0].Meals[0].Items[0].Food != "Frango grelhado" {
		t.Errorf("plan = %+v", plan)
	}
	if plan.Macros == nil || plan.Macros.Calories != 1800 {
		t.Errorf("macros = %+v", plan.Macros)
	}

	if captured.GenerationConfig.ResponseMIMEType != "application/json" {
		t.Errorf("responseMimeType = %q", captured.GenerationConfig.ResponseMIMEType)
	}
	prompt := captured.Contents[0].Parts[0].Text
	for _, want := range []string{"Maria Silva", "Emagrecimento", "lactose", "Low Carb"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGeneratePlanRejectsEmptyWeek(t *testing.T) {
	g := newTestGemini(t, `{"weeks": [], "notes": ""}`, nil)
	if _, err := g.GeneratePlan(context.Background(), patient.Patient{}, testAnamnesis()); err == nil {
		t.Fatal("expected error for empty plan")
	}
}

func TestGeneratePlanRejectsMalformedReply(t *testing.T) {
	g := newTestGemini(t, `not json at all`, nil)
	if _, err := g.GeneratePlan(context.Background(), patient.Patient{}, testAnamnesis()); err == nil {
		t.Fatal("expected error for malformed reply")
	}
}

func TestGenerateErrorOnHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewGemini("test-key")
	g.baseURL = srv.URL
	if _, err := g.SuggestFoods(context.Background(), testAnamnesis()); err == nil {
		t.Fatal("expected error on HTTP failure")
	}
}

func TestSuggestFoodsCapsList(t *testing.T) {
	suggestions := make([]patient.FoodSuggestion, 0, 20)
	for i := 0; i < 20; i++ {
		suggestions = append(suggestions, patient.FoodSuggestion{Food: "Aveia", Reason: "Fibras"})
	}
	reply, _ := json.Marshal(suggestions)

	g := newTestGemini(t, string(reply), nil)
	got, err := g.SuggestFoods(context.Background(), testAnamnesis())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != maxFoodSuggestions {
		t.Errorf("len = %d, want %d", len(got), maxFoodSuggestions)
	}
}

func TestGenerateRecipeRequiresTitle(t *testing.T) {
	g := newTestGemini(t, `{"title": "", "ingredients": [], "instructions": ""}`, nil)
	if _, err := g.GenerateRecipe(context.Background(), []string{"frango"}, nil); err == nil {
		t.Fatal("expected error for untitled recipe")
	}
}

func TestGenerateRecipeParsesReply(t *testing.T) {
	reply := `{"title": "Frango com legumes", "ingredients": ["frango", "cenoura"], "instructions": "Refogue tudo.", "tags": ["Low Carb"], "calories": 380}`
	g := newTestGemini(t, reply, nil)

	r, err := g.GenerateRecipe(context.Background(), []string{"frango", "cenoura"}, []string{"sem lactose"})
	if err != nil {
		t.Fatal(err)
	}
	if r.Title != "Frango com legumes" || r.Calories != 380 {
		t.Errorf("recipe = %+v", r)
	}
}

func TestCalculateCalories(t *testing.T) {
	g := newTestGemini(t, `{"calories": 412.5}`, nil)
	got, err := g.CalculateCalories(context.Background(), "Bolo de banana", []string{"banana"}, "Asse.")
	if err != nil {
		t.Fatal(err)
	}
	if got != 412.5 {
		t.Errorf("calories = %v", got)
	}
}
