package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/dbx"
	"github.com/dmitrijs2005/recipebook/internal/models"
	"github.com/dmitrijs2005/recipebook/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
)

// IngredientService manages the shared ingredient catalog.
type IngredientService struct {
	repomanager repomanager.RepositoryManager
	tx          dbx.Transactor
}

func NewIngredientService(m repomanager.RepositoryManager) *IngredientService {
	return &IngredientService{repomanager: m, tx: m.Transactor()}
}

func (s *IngredientService) List(ctx context.Context) ([]models.Ingredient, error) {
	list, err := s.repomanager.Ingredients(s.tx.Conn()).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing ingredients: %w", err)
	}
	return list, nil
}

// ingredientSource adapts a catalog slice for fuzzy matching on names.
type ingredientSource []models.Ingredient

func (s ingredientSource) String(i int) string { return s[i].Name }
func (s ingredientSource) Len() int            { return len(s) }

// Search returns ingredients whose names fuzzily match query, best match
// first. A blank query returns the whole catalog.
func (s *IngredientService) Search(ctx context.Context, query string) ([]models.Ingredient, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return list, nil
	}

	matches := fuzzy.FindFrom(query, ingredientSource(list))
	result := make([]models.Ingredient, 0, len(matches))
	for _, m := range matches {
		result = append(result, list[m.Index])
	}
	return result, nil
}

// Create stores a new catalog entry.
func (s *IngredientService) Create(ctx context.Context, d models.IngredientDraft) (*models.Ingredient, error) {
	price := d.PricePerUnit
	ing := &models.Ingredient{
		Name:         d.Name,
		Category:     d.Category,
		Unit:         d.Unit,
		PricePerUnit: &price,
		Description:  d.Description,
	}
	created, err := s.repomanager.Ingredients(s.tx.Conn()).Create(ctx, ing)
	if err != nil {
		return nil, fmt.Errorf("error creating ingredient: %w", err)
	}
	return created, nil
}

// Delete removes the ingredient. Unknown ids yield ErrIngredientNotFound and
// ingredients still used by a recipe yield ErrIngredientInUse.
func (s *IngredientService) Delete(ctx context.Context, id string) error {
	if !isID(id) {
		return ErrIngredientNotFound
	}
	err := s.repomanager.Ingredients(s.tx.Conn()).Delete(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound):
		return ErrIngredientNotFound
	case errors.Is(err, common.ErrorConflict):
		return ErrIngredientInUse
	default:
		return fmt.Errorf("error deleting ingredient: %w", err)
	}
}

func isID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
