package gateway

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/recipebook/internal/models"
	"github.com/dmitrijs2005/recipebook/internal/server/services"
)

var recipeErrors = []known{
	{services.ErrRecipeNotFound, msgRecipeNotFound},
	{services.ErrUnknownIngredient, msgIngredientNotFound},
}

// ListRecipes returns all recipes, newest first.
func (g *Gateway) ListRecipes(ctx context.Context) (res models.Result[[]models.Recipe]) {
	const op = "list_recipes"
	defer guard(ctx, g, op, &res, msgRecipesLoadFailed)

	list, err := g.cookbook.List(ctx)
	if err != nil {
		return fail[[]models.Recipe](ctx, g, op, err, msgRecipesLoadFailed)
	}
	return models.Ok(list)
}

func (g *Gateway) GetRecipe(ctx context.Context, id string) (res models.Result[*models.Recipe]) {
	const op = "get_recipe"
	defer guard(ctx, g, op, &res, msgRecipesLoadFailed)

	r, err := g.cookbook.Get(ctx, id)
	if err != nil {
		return fail[*models.Recipe](ctx, g, op, err, msgRecipesLoadFailed, recipeErrors...)
	}
	return models.Ok(r)
}

// CreateRecipe stores a recipe with its ingredient lines.
func (g *Gateway) CreateRecipe(ctx context.Context, form url.Values) (res models.Result[*models.Recipe]) {
	const op = "create_recipe"
	defer guard(ctx, g, op, &res, msgRecipeSaveFailed)

	if denied := requireUser[*models.Recipe](ctx, g, op); denied != nil {
		return *denied
	}

	draft, err := ParseRecipeForm(form)
	if err != nil {
		return fail[*models.Recipe](ctx, g, op, err, msgRecipeSaveFailed)
	}

	r, err := g.cookbook.Create(ctx, draft)
	if err != nil {
		return fail[*models.Recipe](ctx, g, op, err, msgRecipeSaveFailed, recipeErrors...)
	}
	g.log.Info(ctx, "recipe created", "id", r.ID, "lines", len(r.Ingredients))
	return models.Ok(r)
}

// UpdateRecipe overwrites the recipe and replaces all of its lines.
func (g *Gateway) UpdateRecipe(ctx context.Context, id string, form url.Values) (res models.Result[*models.Recipe]) {
	const op = "update_recipe"
	defer guard(ctx, g, op, &res, msgRecipeSaveFailed)

	if denied := requireUser[*models.Recipe](ctx, g, op); denied != nil {
		return *denied
	}

	draft, err := ParseRecipeForm(form)
	if err != nil {
		return fail[*models.Recipe](ctx, g, op, err, msgRecipeSaveFailed)
	}

	r, err := g.cookbook.Update(ctx, id, draft)
	if err != nil {
		return fail[*models.Recipe](ctx, g, op, err, msgRecipeSaveFailed, recipeErrors...)
	}
	g.log.Info(ctx, "recipe updated", "id", r.ID, "lines", len(r.Ingredients))
	return models.Ok(r)
}

func (g *Gateway) DeleteRecipe(ctx context.Context, id string) (res models.Result[models.Empty]) {
	const op = "delete_recipe"
	defer guard(ctx, g, op, &res, msgRecipeDeleteFailed)

	if denied := requireUser[models.Empty](ctx, g, op); denied != nil {
		return *denied
	}

	if err := g.cookbook.Delete(ctx, id); err != nil {
		return fail[models.Empty](ctx, g, op, err, msgRecipeDeleteFailed, recipeErrors...)
	}
	g.log.Info(ctx, "recipe deleted", "id", id)
	return models.Ok(models.Empty{})
}

// ImageUploadURL presigns an upload for a recipe image.
func (g *Gateway) ImageUploadURL(ctx context.Context) (res models.Result[*models.UploadTarget]) {
	const op = "image_upload_url"
	defer guard(ctx, g, op, &res, msgUploadFailed)

	if denied := requireUser[*models.UploadTarget](ctx, g, op); denied != nil {
		return *denied
	}

	t, err := g.images.UploadURL(ctx)
	if err != nil {
		return fail[*models.UploadTarget](ctx, g, op, err, msgUploadFailed)
	}
	return models.Ok(t)
}
