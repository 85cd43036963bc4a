package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/models"
)

type RecipesRepository struct {
	s  *Store
	tx bool
}

// resolve builds the public view of sr. Callers hold at least a read lock.
func (r *RecipesRepository) resolve(sr storedRecipe) models.Recipe {
	rec := sr.recipe
	rec.Description = clonePtr(rec.Description)
	rec.ImageURL = clonePtr(rec.ImageURL)
	rec.Ingredients = make([]models.RecipeIngredient, 0, len(sr.lines))
	for _, l := range sr.lines {
		line := models.RecipeIngredient{ID: l.id, IngredientID: l.ingredientID, Quantity: l.quantity}
		if ing, ok := r.s.st.ingredients[l.ingredientID]; ok {
			ing = cloneIngredient(ing)
			line.Ingredient = &ing
		}
		rec.Ingredients = append(rec.Ingredients, line)
	}
	return rec
}

func (r *RecipesRepository) List(_ context.Context) ([]models.Recipe, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stored := make([]storedRecipe, 0, len(r.s.st.recipes))
	for _, sr := range r.s.st.recipes {
		stored = append(stored, sr)
	}
	slices.SortFunc(stored, func(a, b storedRecipe) int {
		return cmp.Or(cmp.Compare(b.seq, a.seq), strings.Compare(a.recipe.ID, b.recipe.ID))
	})

	result := make([]models.Recipe, 0, len(stored))
	for _, sr := range stored {
		result = append(result, r.resolve(sr))
	}
	return result, nil
}

func (r *RecipesRepository) Get(_ context.Context, id string) (*models.Recipe, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sr, ok := r.s.st.recipes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	rec := r.resolve(sr)
	return &rec, nil
}

func (r *RecipesRepository) Create(_ context.Context, rec *models.Recipe) (*models.Recipe, error) {
	defer r.s.lockWrite(r.tx)()

	rec.ID = r.s.newID()
	rec.CreatedAt = r.s.now()
	r.s.st.seq++

	stored := *rec
	stored.Ingredients = nil
	stored.Description = clonePtr(rec.Description)
	stored.ImageURL = clonePtr(rec.ImageURL)
	r.s.st.recipes[rec.ID] = storedRecipe{recipe: stored, seq: r.s.st.seq}
	return rec, nil
}

func (r *RecipesRepository) Update(_ context.Context, rec *models.Recipe) error {
	defer r.s.lockWrite(r.tx)()

	sr, ok := r.s.st.recipes[rec.ID]
	if !ok {
		return common.ErrorNotFound
	}
	sr.recipe.Name = rec.Name
	sr.recipe.Description = clonePtr(rec.Description)
	sr.recipe.ImageURL = clonePtr(rec.ImageURL)
	r.s.st.recipes[rec.ID] = sr
	return nil
}

func (r *RecipesRepository) ReplaceIngredients(_ context.Context, recipeID string, lines []models.RecipeLine) error {
	defer r.s.lockWrite(r.tx)()

	sr, ok := r.s.st.recipes[recipeID]
	if !ok {
		return common.ErrorConflict
	}
	stored := make([]storedLine, 0, len(lines))
	for _, l := range lines {
		if _, ok := r.s.st.ingredients[l.IngredientID]; !ok {
			return common.ErrorConflict
		}
		stored = append(stored, storedLine{id: r.s.newID(), ingredientID: l.IngredientID, quantity: l.Quantity})
	}
	sr.lines = stored
	r.s.st.recipes[recipeID] = sr
	return nil
}

func (r *RecipesRepository) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.tx)()

	if _, ok := r.s.st.recipes[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.st.recipes, id)
	return nil
}
