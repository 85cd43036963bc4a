package gateway

import (
	"context"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/recipebook/internal/models"
	"github.com/dmitrijs2005/recipebook/internal/server/services"
)

// ListIngredients returns the whole catalog ordered by name.
func (g *Gateway) ListIngredients(ctx context.Context) (res models.Result[[]models.Ingredient]) {
	const op = "list_ingredients"
	defer guard(ctx, g, op, &res, msgIngredientsLoadFailed)

	list, err := g.catalog.List(ctx)
	if err != nil {
		return fail[[]models.Ingredient](ctx, g, op, err, msgIngredientsLoadFailed)
	}
	return models.Ok(list)
}

// SearchIngredients returns catalog entries matching query, best first. A
// blank query lists everything.
func (g *Gateway) SearchIngredients(ctx context.Context, query string) (res models.Result[[]models.Ingredient]) {
	const op = "search_ingredients"
	defer guard(ctx, g, op, &res, msgIngredientsLoadFailed)

	if strings.TrimSpace(query) == "" {
		return g.ListIngredients(ctx)
	}
	list, err := g.catalog.Search(ctx, query)
	if err != nil {
		return fail[[]models.Ingredient](ctx, g, op, err, msgIngredientsLoadFailed)
	}
	return models.Ok(list)
}

// CreateIngredient validates form and adds the ingredient to the catalog.
func (g *Gateway) CreateIngredient(ctx context.Context, form url.Values) (res models.Result[*models.Ingredient]) {
	const op = "create_ingredient"
	defer guard(ctx, g, op, &res, msgIngredientCreateFailed)

	if denied := requireUser[*models.Ingredient](ctx, g, op); denied != nil {
		return *denied
	}

	draft, err := ParseIngredientForm(form)
	if err != nil {
		return fail[*models.Ingredient](ctx, g, op, err, msgIngredientCreateFailed)
	}

	ing, err := g.catalog.Create(ctx, draft)
	if err != nil {
		return fail[*models.Ingredient](ctx, g, op, err, msgIngredientCreateFailed)
	}
	g.log.Info(ctx, "ingredient created", "id", ing.ID)
	return models.Ok(ing)
}

// DeleteIngredient removes an ingredient that no recipe uses.
func (g *Gateway) DeleteIngredient(ctx context.Context, id string) (res models.Result[models.Empty]) {
	const op = "delete_ingredient"
	defer guard(ctx, g, op, &res, msgIngredientDeleteFailed)

	if denied := requireUser[models.Empty](ctx, g, op); denied != nil {
		return *denied
	}

	if err := g.catalog.Delete(ctx, id); err != nil {
		return fail[models.Empty](ctx, g, op, err, msgIngredientDeleteFailed,
			known{services.ErrIngredientNotFound, msgIngredientNotFound},
			known{services.ErrIngredientInUse, msgIngredientInUse})
	}
	g.log.Info(ctx, "ingredient deleted", "id", id)
	return models.Ok(models.Empty{})
}
