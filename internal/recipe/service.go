package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotFound   = errors.New("recipe: not found")
	ErrValidation = errors.New("recipe: invalid input")
	// ErrRemote marks a failed or malformed generator call; the catalog is
	// never touched when it occurs.
	ErrRemote = errors.New("recipe: remote generator failure")
)

// Generator is the slice of the remote generator the recipe flows use.
type Generator interface {
	GenerateRecipe(ctx context.Context, ingredients, restrictions []string) (Recipe, error)
	CalculateCalories(ctx context.Context, title string, ingredients []string, instructions string) (float64, error)
}

type Service interface {
	List(ctx context.Context, query string) ([]Recipe, error)
	CreateManual(ctx context.Context, r Recipe) (*Recipe, error)
	Generate(ctx context.Context, ingredients, restrictions []string) (*Recipe, error)
	EstimateCalories(ctx context.Context, title string, ingredients []string, instructions string) (float64, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo      Repository
	generator Generator
}

func NewService(repo Repository, generator Generator) Service {
	return &service{repo: repo, generator: generator}
}

func (s *service) List(ctx context.Context, query string) ([]Recipe, error) {
	recipes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return recipes, nil
	}
	out := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		if matches(r, query) {
			out = append(out, r)
		}
	}
	return out, nil
}

func matches(r Recipe, query string) bool {
	if strings.Contains(strings.ToLower(r.Title), query) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func (s *service) CreateManual(ctx context.Context, r Recipe) (*Recipe, error) {
	if strings.TrimSpace(r.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	r.ID = uuid.NewString()
	r.IsManual = true
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	return s.prepend(ctx, r)
}

func (s *service) Generate(ctx context.Context, ingredients, restrictions []string) (*Recipe, error) {
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("%w: at least one ingredient is required", ErrValidation)
	}
	generated, err := s.generator.GenerateRecipe(ctx, ingredients, restrictions)
	if err != nil {
		log.Warn().Err(err).Msg("recipe generation failed")
		return nil, fmt.Errorf("%w: %v", ErrRemote, err)
	}
	generated.ID = uuid.NewString()
	generated.Restrictions = restrictions
	return s.prepend(ctx, generated)
}

func (s *service) EstimateCalories(ctx context.Context, title string, ingredients []string, instructions string) (float64, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(instructions) == "" {
		return 0, fmt.Errorf("%w: title and instructions are required", ErrValidation)
	}
	calories, err := s.generator.CalculateCalories(ctx, title, ingredients, instructions)
	if err != nil {
		log.Warn().Err(err).Msg("calorie estimate failed")
		return 0, fmt.Errorf("%w: %v", ErrRemote, err)
	}
	return calories, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	recipes, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	kept := make([]Recipe, 0, len(recipes))
	found := false
	for _, r := range recipes {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return ErrNotFound
	}
	return s.repo.Replace(ctx, kept)
}

// prepend stores r as the newest catalog entry.
func (s *service) prepend(ctx context.Context, r Recipe) (*Recipe, error) {
	recipes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	recipes = append([]Recipe{r}, recipes...)
	if err := s.repo.Replace(ctx, recipes); err != nil {
		return nil, err
	}
	return &r, nil
}
