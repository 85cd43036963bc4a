package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrijs2005/recipebook/internal/client/client"
	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/models"
)

// fakeGateway is an in-memory client.Gateway. Setting down makes every call
// fail as if the server were unreachable.
type fakeGateway struct {
	mu          sync.Mutex
	ingredients []models.Ingredient
	recipes     []models.Recipe
	seq         int
	down        bool
	failWith    string
	session     models.Result[models.Session]
	signedOut   int
	ctxErrs     []error
}

var _ client.Gateway = (*fakeGateway)(nil)

var errDown = fmt.Errorf("%w: connection refused", client.ErrUnavailable)

func (f *fakeGateway) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s%d", prefix, f.seq)
}

func (f *fakeGateway) observe(ctx context.Context) error {
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	if f.down {
		return errDown
	}
	return nil
}

func (f *fakeGateway) Register(ctx context.Context, email, password, confirmPassword string) (models.Result[*models.User], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.observe(ctx); err != nil {
		return models.Result[*models.User]{}, err
	}
	return models.Ok(&models.User{ID: f.nextID("u"), Email: email}), nil
}

func (f *fakeGateway) SignIn(ctx context.Context, email, password string) (models.Result[*models.AuthResult], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.observe(ctx); err != nil {
		return models.Result[*models.AuthResult]{}, err
	}
	if password != "secret1" {
		return models.Fail[*models.AuthResult](common.KindAuth, "Неверный email или пароль"), nil
	}
	return models.Ok(&models.AuthResult{User: &models.User{ID: "u1", Email: email}, AccessToken: "a", RefreshToken: "r"}), nil
}

func (f *fakeGateway) SignOut(ctx context.Context) (models.Result[models.Empty], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signedOut++
	if err := f.observe(ctx); err != nil {
		return models.Result[models.Empty]{}, err
	}
	return models.Ok(models.Empty{}), nil
}

func (f *fakeGateway) Session(ctx context.Context) (models.Result[models.Session], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.observe(ctx); err != nil {
		return models.Result[models.Session]{}, err
	}
	return f.session, nil
}

func (f *fakeGateway) ListIngredients(ctx context.Context) (models.Result[[]models.Ingredient], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.observe(ctx); err != nil {
		return models.Result[[]models.Ingredient]{}, err
	}
	if f.failWith != "" {
		return models.Fail[[]models.Ingredient](common.KindUnknown, f.failWith), nil
	}
	return models.Ok(append([]models.Ingredient(nil), f.ingredients...)), nil
}

func (f *fakeGateway) SearchIngredients(ctx context.Context, query string) (models.Result[[]models.Ingredient], error) {
	res, err := f.ListIngredients(ctx)
	if err != nil || !res.Success {
		return res, err
	}
	matched := res.Data[:0]
	for _, i := range res.Data {
		if strings.Contains(strings.ToLower(i.Name), strings.ToLower(query)) {
			matched = append(matched, i)
		}
	}
	res.Data = matched
	return res, nil
}

func (f *fakeGateway) CreateIngredient(ctx context.Context, form url.Values) (models.Result[*models.Ingredient], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.observe(ctx); err != nil {
		return models.Result[*models.Ingredient]{}, err
	}
	if form.Get("name") == "" {
		return models.Fail[*models.Ingredient](common.KindValidation, "Название обязательно"), nil
	}
	ing := models.Ingredient{
		ID:       f.nextID("i"),
		Name:     form.Get("name"),
		Category: models.Category(form.Get("category")),
		Unit:     models.Unit(form.Get("unit")),
	}
	f.ingredients = append(f.ingredients, ing)
	return models.Ok(&ing), nil
}

func (f *fakeGateway) DeleteIngredient(ctx context.Context, id string) (models.Result[models.Empty], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.observe(ctx); err != nil {
		return models.Result[models.Empty]{}, err
	}
	for i, it := range f.ingredients {
		if it.ID == id {
			f.ingredients = append(f.ingredients[:i], f.ingredients[i+1:]...)
			return models.Ok(models.Empty{}), nil
		}
	}
	return models.Fail[models.Empty](common.KindNotFound, "Ингредиент не найден"), nil
}

func (f *fakeGateway) ListRecipes(ctx context.Context) (models.Result[[]models.Recipe], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.observe(ctx); err != nil {
		return models.Result[[]models.Recipe]{}, err
	}
	return models.Ok(append([]models.Recipe(nil), f.recipes...)), nil
}

func (f *fakeGateway) GetRecipe(ctx context.Context, id string) (models.Result[*models.Recipe], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.observe(ctx); err != nil {
		return models.Result[*models.Recipe]{}, err
	}
	for _, r := range f.recipes {
		if r.ID == id {
			return models.Ok(&r), nil
		}
	}
	return models.Fail[*models.Recipe](common.KindNotFound, "Рецепт не найден"), nil
}

func (f *fakeGateway) recipeFromForm(id string, form url.Values) (models.Recipe, error) {
	if form.Get("name") == "" {
		return models.Recipe{}, errors.New("Название обязательно")
	}
	r := models.Recipe{ID: id, Name: form.Get("name")}
	if ing := form.Get("ingredient_0"); ing != "" {
		r.Ingredients = append(r.Ingredients, models.RecipeIngredient{IngredientID: ing, Quantity: 1})
	}
	return r, nil
}

func (f *fakeGateway) CreateRecipe(ctx context.Context, form url.Values) (models.Result[*models.Recipe], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.observe(ctx); err != nil {
		return models.Result[*models.Recipe]{}, err
	}
	r, err := f.recipeFromForm(f.nextID("r"), form)
	if err != nil {
		return models.Fail[*models.Recipe](common.KindValidation, err.Error()), nil
	}
	f.recipes = append(f.recipes, r)
	return models.Ok(&r), nil
}

func (f *fakeGateway) UpdateRecipe(ctx context.Context, id string, form url.Values) (models.Result[*models.Recipe], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.observe(ctx); err != nil {
		return models.Result[*models.Recipe]{}, err
	}
	for i := range f.recipes {
		if f.recipes[i].ID != id {
			continue
		}
		r, err := f.recipeFromForm(id, form)
		if err != nil {
			return models.Fail[*models.Recipe](common.KindValidation, err.Error()), nil
		}
		f.recipes[i] = r
		return models.Ok(&r), nil
	}
	return models.Fail[*models.Recipe](common.KindNotFound, "Рецепт не найден"), nil
}

func (f *fakeGateway) DeleteRecipe(ctx context.Context, id string) (models.Result[models.Empty], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.observe(ctx); err != nil {
		return models.Result[models.Empty]{}, err
	}
	for i, r := range f.recipes {
		if r.ID == id {
			f.recipes = append(f.recipes[:i], f.recipes[i+1:]...)
			return models.Ok(models.Empty{}), nil
		}
	}
	return models.Fail[models.Empty](common.KindNotFound, "Рецепт не найден"), nil
}

func (f *fakeGateway) ImageUploadURL(ctx context.Context) (models.Result[*models.UploadTarget], error) {
	return models.Ok(&models.UploadTarget{UploadURL: "http://s3/put", ObjectURL: "http://s3/obj"}), nil
}

func (f *fakeGateway) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.observe(ctx)
}

func (f *fakeGateway) setDown(down bool) {
	f.mu.Lock()
	f.down = down
	f.mu.Unlock()
}
