package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nutricare-server/internal/dietplan"
	"nutricare-server/internal/patient"
	"nutricare-server/internal/recipe"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	modelName      = "gemini-2.5-flash"

	maxFoodSuggestions = 15
)

// Gemini calls the generateContent REST API with structured-output schemas
// so every reply arrives as parseable JSON. It satisfies both
// patient.PlanGenerator and recipe.Generator.
type Gemini struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGemini(apiKey string) *Gemini {
	return &Gemini{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// schema is the subset of the OpenAPI schema object that generateContent
// accepts for constrained JSON output.
type schema struct {
	Type       string             `json:"type"`
	Properties map[string]*schema `json:"properties,omitempty"`
	Items      *schema            `json:"items,omitempty"`
}

var (
	str = &schema{Type: "STRING"}
	num = &schema{Type: "NUMBER"}

	macrosSchema = &schema{Type: "OBJECT", Properties: map[string]*schema{
		"calories": num,
		"protein":  num,
		"carbs":    num,
		"fats":     num,
	}}

	planSchema = &schema{Type: "OBJECT", Properties: map[string]*schema{
		"weeks": {Type: "ARRAY", Items: &schema{Type: "OBJECT", Properties: map[string]*schema{
			"dayOfWeek": str,
			"meals": {Type: "ARRAY", Items: &schema{Type: "OBJECT", Properties: map[string]*schema{
				"name": str,
				"time": str,
				"items": {Type: "ARRAY", Items: &schema{Type: "OBJECT", Properties: map[string]*schema{
					"food":     str,
					"portion":  str,
					"unit":     str,
					"calories": num,
				}}},
			}}},
		}}},
		"notes":       str,
		"explanation": str,
		"macros":      macrosSchema,
	}}

	analysisSchema = &schema{Type: "OBJECT", Properties: map[string]*schema{
		"explanation": str,
		"macros":      macrosSchema,
	}}

	suggestionsSchema = &schema{Type: "ARRAY", Items: &schema{Type: "OBJECT", Properties: map[string]*schema{
		"food":   str,
		"reason": str,
	}}}

	recipeSchema = &schema{Type: "OBJECT", Properties: map[string]*schema{
		"title":        str,
		"ingredients":  {Type: "ARRAY", Items: str},
		"instructions": str,
		"tags":         {Type: "ARRAY", Items: str},
		"calories":     num,
	}}

	caloriesSchema = &schema{Type: "OBJECT", Properties: map[string]*schema{
		"calories": num,
	}}
)

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate posts a single-turn prompt and unmarshals the JSON reply into out.
func (g *Gemini) generate(ctx context.Context, prompt string, respSchema *schema, out any) error {
	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   respSchema,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, modelName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("gemini API error: %s - %s", resp.Status, string(respBody))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("gemini API returned no candidates")
	}
	text := result.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("malformed gemini reply: %w", err)
	}
	return nil
}

type planPayload struct {
	Weeks       []dietplan.DailyDiet `json:"weeks"`
	Notes       string               `json:"notes"`
	Explanation string               `json:"explanation"`
	Macros      *dietplan.Macros     `json:"macros"`
}

func (g *Gemini) GeneratePlan(ctx context.Context, p patient.Patient, a patient.Anamnesis) (dietplan.DietPlan, error) {
	prompt := fmt.Sprintf(`ROLE: Senior Clinical Nutritionist.
TASK: Create a detailed weekly meal plan (7 days) for a patient.

PATIENT DATA:
- Name: %s
- Age: %d
- Goal: %s
- Clinical Status: %s
- Financial Status: %s
- Restrictions: %s
- Preferences: %s
- Diet Type: %s
- Meals per day: %d
- Liquid needs: %.0fml

CRITICAL RULES:
1. **NO UNREALISTIC PORTIONS**: DO NOT output "1g" or "1ml" for foods like Rice, Beans, Meat, Fruits. Use standard portions (100g, 150g, 200ml).
2. **VARIETY**: Do not repeat the exact same lunch every day unless requested.
3. **CONTEXT**: If patient is "Acamado", suggest appropriate textures.
4. **MACROS**: Estimate daily macros.

OUTPUT FORMAT: JSON matching the schema.`,
		p.FullName,
		p.Age,
		strings.Join(a.Goals, ", "),
		joinStatuses(a.ClinicalStatus),
		a.FinancialStatus,
		strings.Join(a.FoodRestrictions, ", "),
		strings.Join(a.FoodPreferences, ", "),
		a.DietType,
		a.MealsPerDay,
		a.LiquidRequirement,
	)

	var payload planPayload
	if err := g.generate(ctx, prompt, planSchema, &payload); err != nil {
		return dietplan.DietPlan{}, err
	}
	if len(payload.Weeks) == 0 {
		return dietplan.DietPlan{}, fmt.Errorf("gemini returned a plan with no days")
	}
	return dietplan.DietPlan{
		Weeks:       payload.Weeks,
		Notes:       payload.Notes,
		Explanation: payload.Explanation,
		Macros:      payload.Macros,
	}, nil
}

func (g *Gemini) AnalyzePlan(ctx context.Context, plan dietplan.DietPlan, a patient.Anamnesis) (dietplan.Analysis, error) {
	weeks, err := json.Marshal(plan.Weeks)
	if err != nil {
		return dietplan.Analysis{}, err
	}
	prompt := fmt.Sprintf(`ACT AS: Senior Nutritionist.
TASK: Analyze the following meal plan JSON (which may have been manually written by a user).

1. **CALCULATE MACROS**: Look at the foods, portions and units provided in the JSON. Estimate the TOTAL DAILY AVERAGE for:
   - Calories (kcal)
   - Protein (g)
   - Carbs (g)
   - Fats (g)
   (Be precise based on standard nutritional tables like TACO/USDA).

2. **JUSTIFICATION**: Write a professional justification for this diet considering the patient's goals: %s and status: %s.

PLAN DATA: %s`,
		strings.Join(a.Goals, ", "),
		joinStatuses(a.ClinicalStatus),
		string(weeks),
	)

	var analysis dietplan.Analysis
	if err := g.generate(ctx, prompt, analysisSchema, &analysis); err != nil {
		return dietplan.Analysis{}, err
	}
	if strings.TrimSpace(analysis.Explanation) == "" {
		return dietplan.Analysis{}, fmt.Errorf("gemini returned an empty analysis")
	}
	return analysis, nil
}

func (g *Gemini) SuggestFoods(ctx context.Context, a patient.Anamnesis) ([]patient.FoodSuggestion, error) {
	prompt := fmt.Sprintf(`Sugira %d alimentos específicos ideais para um paciente com as seguintes características:
Objetivos: %s
Status: %s
Restrições: %s

Retorne uma lista JSON com nome do alimento e uma breve razão.`,
		maxFoodSuggestions,
		strings.Join(a.Goals, ", "),
		joinStatuses(a.ClinicalStatus),
		strings.Join(a.FoodRestrictions, ", "),
	)

	var foods []patient.FoodSuggestion
	if err := g.generate(ctx, prompt, suggestionsSchema, &foods); err != nil {
		return nil, err
	}
	if len(foods) > maxFoodSuggestions {
		foods = foods[:maxFoodSuggestions]
	}
	return foods, nil
}

func (g *Gemini) GenerateRecipe(ctx context.Context, ingredients, restrictions []string) (recipe.Recipe, error) {
	prompt := fmt.Sprintf(`Crie uma receita nutritiva usando alguns destes ingredientes: %s.
Considere estas restrições/preferências: %s.
Calcule as calorias aproximadas por porção.`,
		strings.Join(ingredients, ", "),
		strings.Join(restrictions, ", "),
	)

	var r recipe.Recipe
	if err := g.generate(ctx, prompt, recipeSchema, &r); err != nil {
		return recipe.Recipe{}, err
	}
	if strings.TrimSpace(r.Title) == "" {
		return recipe.Recipe{}, fmt.Errorf("gemini returned a recipe without a title")
	}
	return r, nil
}

func (g *Gemini) CalculateCalories(ctx context.Context, title string, ingredients []string, instructions string) (float64, error) {
	prompt := fmt.Sprintf(`Calcule o valor calórico TOTAL aproximado (em kcal) por porção para esta receita. Retorne apenas o número.
Receita: %s
Ingredientes: %s
Preparo: %s`,
		title,
		strings.Join(ingredients, ", "),
		instructions,
	)

	var out struct {
		Calories float64 `json:"calories"`
	}
	if err := g.generate(ctx, prompt, caloriesSchema, &out); err != nil {
		return 0, err
	}
	return out.Calories, nil
}

func joinStatuses(statuses []patient.Status) string {
	parts := make([]string, 0, len(statuses))
	for _, s := range statuses {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ", ")
}
