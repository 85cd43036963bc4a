package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/dmitrijs2005/recipebook/internal/client/client"
	"github.com/dmitrijs2005/recipebook/internal/client/store"
	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/models"
)

// fakeGateway answers the calls the CLI makes. Unused methods fall through
// to the nil embedded interface.
type fakeGateway struct {
	client.Gateway

	ingredients []models.Ingredient
	recipes     []models.Recipe
	lastForm    url.Values
	lastID      string
	lastQuery   string
	searchErr   error
	pingErr     error
}

func (f *fakeGateway) Register(ctx context.Context, email, password, confirm string) (models.Result[*models.User], error) {
	if password != confirm {
		return models.Fail[*models.User](common.KindValidation, "Пароль не совпадает"), nil
	}
	return models.Ok(&models.User{ID: "u1", Email: email}), nil
}

func (f *fakeGateway) SignIn(ctx context.Context, email, password string) (models.Result[*models.AuthResult], error) {
	if password != "secret1" {
		return models.Fail[*models.AuthResult](common.KindAuth, "Неверный email или пароль"), nil
	}
	return models.Ok(&models.AuthResult{User: &models.User{ID: "u1", Email: email}}), nil
}

func (f *fakeGateway) SignOut(ctx context.Context) (models.Result[models.Empty], error) {
	return models.Ok(models.Empty{}), nil
}

func (f *fakeGateway) Session(ctx context.Context) (models.Result[models.Session], error) {
	return models.Ok(models.Session{Status: models.AuthUnauthenticated}), nil
}

func (f *fakeGateway) ListIngredients(ctx context.Context) (models.Result[[]models.Ingredient], error) {
	return models.Ok(append([]models.Ingredient(nil), f.ingredients...)), nil
}

// SearchIngredients matches by prefix, which keeps it distinguishable from
// the local substring filter.
func (f *fakeGateway) SearchIngredients(ctx context.Context, query string) (models.Result[[]models.Ingredient], error) {
	f.lastQuery = query
	if f.searchErr != nil {
		return models.Result[[]models.Ingredient]{}, f.searchErr
	}
	var out []models.Ingredient
	for _, i := range f.ingredients {
		if strings.HasPrefix(strings.ToLower(i.Name), strings.ToLower(query)) {
			out = append(out, i)
		}
	}
	return models.Ok(out), nil
}

func (f *fakeGateway) CreateIngredient(ctx context.Context, form url.Values) (models.Result[*models.Ingredient], error) {
	f.lastForm = form
	ing := models.Ingredient{
		ID:       "new",
		Name:     form.Get("name"),
		Category: models.Category(form.Get("category")),
		Unit:     models.Unit(form.Get("unit")),
	}
	return models.Ok(&ing), nil
}

func (f *fakeGateway) DeleteIngredient(ctx context.Context, id string) (models.Result[models.Empty], error) {
	f.lastID = id
	return models.Ok(models.Empty{}), nil
}

func (f *fakeGateway) ListRecipes(ctx context.Context) (models.Result[[]models.Recipe], error) {
	return models.Ok(append([]models.Recipe(nil), f.recipes...)), nil
}

func (f *fakeGateway) GetRecipe(ctx context.Context, id string) (models.Result[*models.Recipe], error) {
	f.lastID = id
	for _, r := range f.recipes {
		if r.ID == id {
			return models.Ok(&r), nil
		}
	}
	return models.Fail[*models.Recipe](common.KindNotFound, "Рецепт не найден"), nil
}

func (f *fakeGateway) CreateRecipe(ctx context.Context, form url.Values) (models.Result[*models.Recipe], error) {
	f.lastForm = form
	return models.Ok(&models.Recipe{ID: "rnew", Name: form.Get("name")}), nil
}

func (f *fakeGateway) UpdateRecipe(ctx context.Context, id string, form url.Values) (models.Result[*models.Recipe], error) {
	f.lastID, f.lastForm = id, form
	return models.Ok(&models.Recipe{ID: id, Name: form.Get("name")}), nil
}

func (f *fakeGateway) DeleteRecipe(ctx context.Context, id string) (models.Result[models.Empty], error) {
	f.lastID = id
	return models.Ok(models.Empty{}), nil
}

func (f *fakeGateway) ImageUploadURL(ctx context.Context) (models.Result[*models.UploadTarget], error) {
	return models.Ok(&models.UploadTarget{UploadURL: "http://s3/put?sig", ObjectURL: "http://s3/recipes/k"}), nil
}

func (f *fakeGateway) Ping(ctx context.Context) error { return f.pingErr }

func newTestApp(gw *fakeGateway) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return newApp(store.NewSession(gw), bufio.NewReader(strings.NewReader("")), &out), &out
}

// stubAnswers feeds answers to the text and line prompts in order.
func stubAnswers(t *testing.T, answers []string, lines [][]string) {
	t.Helper()
	origST, origGL := getSimpleText, getLines
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getLines = func(_ *bufio.Reader, _ string, _ io.Writer) ([]string, error) {
		if len(lines) == 0 {
			return nil, nil
		}
		l := lines[0]
		lines = lines[1:]
		return l, nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getLines = origGL
	})
}

func stubPasswords(t *testing.T, passwords ...string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		p := passwords[0]
		passwords = passwords[1:]
		return []byte(p), nil
	}
	t.Cleanup(func() { getPassword = orig })
}
