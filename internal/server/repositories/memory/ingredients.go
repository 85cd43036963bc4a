package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/models"
)

type IngredientsRepository struct {
	s  *Store
	tx bool
}

func (r *IngredientsRepository) List(_ context.Context) ([]models.Ingredient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]models.Ingredient, 0, len(r.s.st.ingredients))
	for _, i := range r.s.st.ingredients {
		result = append(result, cloneIngredient(i))
	}
	slices.SortFunc(result, func(a, b models.Ingredient) int {
		return cmp.Or(
			strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
			strings.Compare(a.ID, b.ID),
		)
	})
	return result, nil
}

func (r *IngredientsRepository) Get(_ context.Context, id string) (*models.Ingredient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i, ok := r.s.st.ingredients[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	i = cloneIngredient(i)
	return &i, nil
}

func (r *IngredientsRepository) Create(_ context.Context, ing *models.Ingredient) (*models.Ingredient, error) {
	defer r.s.lockWrite(r.tx)()

	ing.ID = r.s.newID()
	r.s.st.ingredients[ing.ID] = cloneIngredient(*ing)
	return ing, nil
}

func (r *IngredientsRepository) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.tx)()

	if _, ok := r.s.st.ingredients[id]; !ok {
		return common.ErrorNotFound
	}
	for _, rec := range r.s.st.recipes {
		for _, l := range rec.lines {
			if l.ingredientID == id {
				return common.ErrorConflict
			}
		}
	}
	delete(r.s.st.ingredients, id)
	return nil
}
