package store

import (
	"context"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/recipebook/internal/client/client"
	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/models"
)

const (
	msgIngredientsLoadFailed  = "Ошибка при загрузке ингредиентов"
	msgIngredientCreateFailed = "Ошибка при добавлении ингредиента"
	msgIngredientDeleteFailed = "Ошибка при удалении ингредиента"
	msgIngredientSearchFailed = "Ошибка при поиске ингредиентов"
)

// IngredientState is a snapshot of the IngredientStore.
type IngredientState struct {
	Ingredients []models.Ingredient
	IsLoading   bool
	Error       *string
}

// IngredientStore caches the ingredient catalog.
type IngredientStore struct {
	gw    client.Gateway
	items *collection[models.Ingredient]
}

func NewIngredientStore(gw client.Gateway) *IngredientStore {
	return &IngredientStore{
		gw:    gw,
		items: newCollection(func(i models.Ingredient) string { return i.ID }),
	}
}

func (s *IngredientStore) State() IngredientState {
	items, loading, err := s.items.snapshot()
	return IngredientState{Ingredients: items, IsLoading: loading, Error: err}
}

// Load replaces the collection with the server catalog.
func (s *IngredientStore) Load(ctx context.Context) models.Result[[]models.Ingredient] {
	ctx = context.WithoutCancel(ctx)
	s.items.startLoading()
	defer s.items.stopLoading()

	res, err := s.gw.ListIngredients(ctx)
	res = settle(s.items, res, err, msgIngredientsLoadFailed)
	if res.Success {
		s.items.replace(res.Data)
	}
	return res
}

// Add creates an ingredient and appends it without re-fetching.
func (s *IngredientStore) Add(ctx context.Context, form url.Values) models.Result[*models.Ingredient] {
	ctx = context.WithoutCancel(ctx)
	s.items.startLoading()
	defer s.items.stopLoading()

	res, err := s.gw.CreateIngredient(ctx, form)
	res = settle(s.items, res, err, msgIngredientCreateFailed)
	if res.Success && res.Data != nil {
		s.items.append(*res.Data)
	}
	return res
}

// Remove deletes an ingredient and drops it from the collection.
func (s *IngredientStore) Remove(ctx context.Context, id string) models.Result[models.Empty] {
	ctx = context.WithoutCancel(ctx)
	s.items.clearError()

	res, err := s.gw.DeleteIngredient(ctx, id)
	res = settle(s.items, res, err, msgIngredientDeleteFailed)
	if res.Success {
		s.items.remove(id)
	}
	return res
}

// Search asks the server for ingredients whose names match query, best
// match first. The cached collection and its error are left alone.
func (s *IngredientStore) Search(ctx context.Context, query string) models.Result[[]models.Ingredient] {
	res, err := s.gw.SearchIngredients(context.WithoutCancel(ctx), query)
	if err != nil {
		return models.Fail[[]models.Ingredient](common.KindUnknown, msgIngredientSearchFailed)
	}
	return res
}

// Filter returns the cached ingredients whose name contains term, ignoring
// case. An empty term returns everything.
func (s *IngredientStore) Filter(term string) []models.Ingredient {
	items, _, _ := s.items.snapshot()
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}

	out := make([]models.Ingredient, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), term) {
			out = append(out, it)
		}
	}
	return out
}

func (s *IngredientStore) Find(id string) (models.Ingredient, bool) {
	return s.items.find(id)
}

func (s *IngredientStore) Reset() { s.items.reset() }
