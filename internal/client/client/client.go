package client

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/recipebook/internal/models"
)

// Gateway is the client view of the server actions. Form based operations
// take the same field names the server parses (name, category, unit,
// pricePerUnit, description, imageUrl, ingredient_<i>, quantity_<i>).
type Gateway interface {
	Register(ctx context.Context, email, password, confirmPassword string) (models.Result[*models.User], error)
	SignIn(ctx context.Context, email, password string) (models.Result[*models.AuthResult], error)
	SignOut(ctx context.Context) (models.Result[models.Empty], error)
	Session(ctx context.Context) (models.Result[models.Session], error)

	ListIngredients(ctx context.Context) (models.Result[[]models.Ingredient], error)
	SearchIngredients(ctx context.Context, query string) (models.Result[[]models.Ingredient], error)
	CreateIngredient(ctx context.Context, form url.Values) (models.Result[*models.Ingredient], error)
	DeleteIngredient(ctx context.Context, id string) (models.Result[models.Empty], error)

	ListRecipes(ctx context.Context) (models.Result[[]models.Recipe], error)
	GetRecipe(ctx context.Context, id string) (models.Result[*models.Recipe], error)
	CreateRecipe(ctx context.Context, form url.Values) (models.Result[*models.Recipe], error)
	UpdateRecipe(ctx context.Context, id string, form url.Values) (models.Result[*models.Recipe], error)
	DeleteRecipe(ctx context.Context, id string) (models.Result[models.Empty], error)

	ImageUploadURL(ctx context.Context) (models.Result[*models.UploadTarget], error)
	Ping(ctx context.Context) error
}
