package recipe

import (
	"context"
	"encoding/json"
	"fmt"

	"nutricare-server/internal/store"
)

type Repository interface {
	List(ctx context.Context) ([]Recipe, error)
	Replace(ctx context.Context, recipes []Recipe) error
}

type recordsRepo struct {
	records store.Records
}

func NewRepository(records store.Records) Repository {
	return &recordsRepo{records: records}
}

func (r *recordsRepo) List(ctx context.Context) ([]Recipe, error) {
	doc, ok, err := r.records.Load(ctx, store.Recipes)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Recipes seed empty.
		return []Recipe{}, nil
	}
	var recipes []Recipe
	if err := json.Unmarshal(doc, &recipes); err != nil {
		return nil, fmt.Errorf("unmarshal recipes: %w", err)
	}
	return recipes, nil
}

func (r *recordsRepo) Replace(ctx context.Context, recipes []Recipe) error {
	doc, err := json.Marshal(recipes)
	if err != nil {
		return fmt.Errorf("marshal recipes: %w", err)
	}
	return r.records.Save(ctx, store.Recipes, doc)
}
