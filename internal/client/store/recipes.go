package store

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/recipebook/internal/client/client"
	"github.com/dmitrijs2005/recipebook/internal/models"
)

const (
	msgRecipesLoadFailed  = "Ошибка при загрузке рецептов"
	msgRecipeSaveFailed   = "Ошибка при сохранении рецепта"
	msgRecipeDeleteFailed = "Ошибка при удалении рецепта"
)

// RecipeState is a snapshot of the RecipeStore.
type RecipeState struct {
	Recipes   []models.Recipe
	IsLoading bool
	Error     *string
}

// RecipeStore caches recipes in the order the server lists them.
type RecipeStore struct {
	gw    client.Gateway
	items *collection[models.Recipe]
}

func NewRecipeStore(gw client.Gateway) *RecipeStore {
	return &RecipeStore{
		gw:    gw,
		items: newCollection(func(r models.Recipe) string { return r.ID }),
	}
}

func (s *RecipeStore) State() RecipeState {
	items, loading, err := s.items.snapshot()
	return RecipeState{Recipes: items, IsLoading: loading, Error: err}
}

func (s *RecipeStore) Load(ctx context.Context) models.Result[[]models.Recipe] {
	ctx = context.WithoutCancel(ctx)
	s.items.startLoading()
	defer s.items.stopLoading()

	res, err := s.gw.ListRecipes(ctx)
	res = settle(s.items, res, err, msgRecipesLoadFailed)
	if res.Success {
		s.items.replace(res.Data)
	}
	return res
}

func (s *RecipeStore) Add(ctx context.Context, form url.Values) models.Result[*models.Recipe] {
	ctx = context.WithoutCancel(ctx)
	s.items.startLoading()
	defer s.items.stopLoading()

	res, err := s.gw.CreateRecipe(ctx, form)
	res = settle(s.items, res, err, msgRecipeSaveFailed)
	if res.Success && res.Data != nil {
		s.items.append(*res.Data)
	}
	return res
}

// Update replaces the matching cached recipe with the server copy.
func (s *RecipeStore) Update(ctx context.Context, id string, form url.Values) models.Result[*models.Recipe] {
	ctx = context.WithoutCancel(ctx)
	s.items.startLoading()
	defer s.items.stopLoading()

	res, err := s.gw.UpdateRecipe(ctx, id, form)
	res = settle(s.items, res, err, msgRecipeSaveFailed)
	if res.Success && res.Data != nil {
		s.items.update(*res.Data)
	}
	return res
}

func (s *RecipeStore) Remove(ctx context.Context, id string) models.Result[models.Empty] {
	ctx = context.WithoutCancel(ctx)
	s.items.clearError()

	res, err := s.gw.DeleteRecipe(ctx, id)
	res = settle(s.items, res, err, msgRecipeDeleteFailed)
	if res.Success {
		s.items.remove(id)
	}
	return res
}

func (s *RecipeStore) Find(id string) (models.Recipe, bool) {
	return s.items.find(id)
}

func (s *RecipeStore) Reset() { s.items.reset() }
