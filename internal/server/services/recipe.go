package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/dbx"
	"github.com/dmitrijs2005/recipebook/internal/models"
	"github.com/dmitrijs2005/recipebook/internal/server/repositories/repomanager"
)

// RecipeService manages recipes and their ingredient lines. Writes run in a
// single transaction so a recipe is never stored with a partial line set.
type RecipeService struct {
	repomanager repomanager.RepositoryManager
	tx          dbx.Transactor
}

func NewRecipeService(m repomanager.RepositoryManager) *RecipeService {
	return &RecipeService{repomanager: m, tx: m.Transactor()}
}

func (s *RecipeService) List(ctx context.Context) ([]models.Recipe, error) {
	list, err := s.repomanager.Recipes(s.tx.Conn()).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing recipes: %w", err)
	}
	return list, nil
}

func (s *RecipeService) Get(ctx context.Context, id string) (*models.Recipe, error) {
	if !isID(id) {
		return nil, ErrRecipeNotFound
	}
	r, err := s.repomanager.Recipes(s.tx.Conn()).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("error loading recipe: %w", err)
	}
	return r, nil
}

// Create stores the recipe and its lines and returns the stored record.
func (s *RecipeService) Create(ctx context.Context, d models.RecipeDraft) (*models.Recipe, error) {
	var out *models.Recipe
	err := s.tx.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.checkIngredients(ctx, tx, d.Lines); err != nil {
			return err
		}
		repo := s.repomanager.Recipes(tx)
		rec, err := repo.Create(ctx, &models.Recipe{Name: d.Name, Description: d.Description, ImageURL: d.ImageURL})
		if err != nil {
			return fmt.Errorf("error creating recipe: %w", err)
		}
		if err := repo.ReplaceIngredients(ctx, rec.ID, d.Lines); err != nil {
			return fmt.Errorf("error storing recipe lines: %w", err)
		}
		out, err = repo.Get(ctx, rec.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the recipe and replaces all of its lines.
func (s *RecipeService) Update(ctx context.Context, id string, d models.RecipeDraft) (*models.Recipe, error) {
	if !isID(id) {
		return nil, ErrRecipeNotFound
	}
	var out *models.Recipe
	err := s.tx.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Recipes(tx)
		err := repo.Update(ctx, &models.Recipe{ID: id, Name: d.Name, Description: d.Description, ImageURL: d.ImageURL})
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return ErrRecipeNotFound
			}
			return fmt.Errorf("error updating recipe: %w", err)
		}
		if err := s.checkIngredients(ctx, tx, d.Lines); err != nil {
			return err
		}
		if err := repo.ReplaceIngredients(ctx, id, d.Lines); err != nil {
			return fmt.Errorf("error storing recipe lines: %w", err)
		}
		out, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the recipe and its lines.
func (s *RecipeService) Delete(ctx context.Context, id string) error {
	if !isID(id) {
		return ErrRecipeNotFound
	}
	err := s.repomanager.Recipes(s.tx.Conn()).Delete(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return ErrRecipeNotFound
		}
		return fmt.Errorf("error deleting recipe: %w", err)
	}
	return nil
}

// checkIngredients rejects lines pointing at ingredients that do not exist.
func (s *RecipeService) checkIngredients(ctx context.Context, tx dbx.DBTX, lines []models.RecipeLine) error {
	repo := s.repomanager.Ingredients(tx)
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.IngredientID]; ok {
			continue
		}
		seen[l.IngredientID] = struct{}{}
		if !isID(l.IngredientID) {
			return ErrUnknownIngredient
		}
		if _, err := repo.Get(ctx, l.IngredientID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return ErrUnknownIngredient
			}
			return fmt.Errorf("error checking ingredient: %w", err)
		}
	}
	return nil
}
