package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/filex"
	"github.com/dmitrijs2005/recipebook/internal/models"
	"github.com/dmitrijs2005/recipebook/internal/netx"
)

var errUnknownIngredient = errors.New("unknown ingredient")

// Recipes reloads and prints the recipe list.
func (a *App) Recipes(ctx context.Context) error {
	res := a.session.Recipes.Load(ctx)
	if !res.Success {
		a.toast.Danger("Ошибка", res.Error)
	}
	renderRecipes(a.out, a.session.Recipes.State().Recipes)
	return nil
}

func (a *App) recipeRef(ref string) string {
	items := a.session.Recipes.State().Recipes
	ids := make([]string, len(items))
	for i, r := range items {
		ids[i] = r.ID
	}
	return resolveRef(ref, ids)
}

// ShowRecipe prints one recipe, fetching it from the server so the lines
// are current.
func (a *App) ShowRecipe(ctx context.Context, ref string) error {
	res, err := a.session.Gateway.GetRecipe(ctx, a.recipeRef(ref))
	if err != nil {
		return err
	}
	if !res.Success || res.Data == nil {
		a.toast.Danger("Ошибка", res.Error)
		return nil
	}
	renderRecipe(a.out, *res.Data)
	return nil
}

// recipeLine is one "ingredient=quantity" entry typed by the user.
type recipeLine struct {
	ingredient string
	quantity   string
}

func parseRecipeLines(raw []string) ([]recipeLine, error) {
	lines := make([]recipeLine, 0, len(raw))
	for _, l := range raw {
		name, qty, ok := strings.Cut(l, "=")
		if !ok {
			return nil, fmt.Errorf("expected ingredient=quantity, got %q", l)
		}
		lines = append(lines, recipeLine{ingredient: strings.TrimSpace(name), quantity: strings.TrimSpace(qty)})
	}
	return lines, nil
}

// findIngredient matches ref against catalog by row number, id or name,
// ignoring case for names.
func findIngredient(ref string, catalog []models.Ingredient) (models.Ingredient, bool) {
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(catalog) {
		return catalog[n-1], true
	}
	for _, it := range catalog {
		if it.ID == ref || strings.EqualFold(it.Name, ref) {
			return it, true
		}
	}
	return models.Ingredient{}, false
}

// recipeForm builds the form the server expects. Lines past the server cap
// are dropped.
func recipeForm(name, description, imageURL string, lines []recipeLine, catalog []models.Ingredient) (url.Values, error) {
	form := url.Values{"name": {name}}
	if description != "" {
		form.Set("description", description)
	}
	if imageURL != "" {
		form.Set("imageUrl", imageURL)
	}

	for i, l := range lines {
		if i >= common.MaxRecipeLines {
			break
		}
		ing, ok := findIngredient(l.ingredient, catalog)
		if !ok {
			return nil, fmt.Errorf("%w: %s", errUnknownIngredient, l.ingredient)
		}
		form.Set(fmt.Sprintf("ingredient_%d", i), ing.ID)
		form.Set(fmt.Sprintf("quantity_%d", i), l.quantity)
	}
	return form, nil
}

// linesOf renders existing recipe lines back into the editable form.
func linesOf(r models.Recipe) []recipeLine {
	out := make([]recipeLine, 0, len(r.Ingredients))
	for _, l := range r.Ingredients {
		out = append(out, recipeLine{ingredient: l.IngredientID, quantity: formatAmount(l.Quantity)})
	}
	return out
}

func (a *App) catalog(ctx context.Context) []models.Ingredient {
	if items := a.session.Ingredients.State().Ingredients; len(items) > 0 {
		return items
	}
	a.session.Ingredients.Load(ctx)
	return a.session.Ingredients.State().Ingredients
}

// promptRecipe collects the recipe fields. Empty answers keep the values of
// current when it is not nil.
func (a *App) promptRecipe(ctx context.Context, current *models.Recipe) (url.Values, error) {
	hint := func(label, value string) string {
		if current == nil || value == "" {
			return label
		}
		return fmt.Sprintf("%s [%s]", label, value)
	}
	keep := func(in, value string) string {
		if in == "" && current != nil {
			return value
		}
		return in
	}

	var curName, curDesc, curImage string
	if current != nil {
		curName, curDesc, curImage = current.Name, deref(current.Description), deref(current.ImageURL)
	}

	name, err := getSimpleText(a.reader, hint("Name", curName), a.out)
	if err != nil {
		return nil, err
	}
	description, err := getSimpleText(a.reader, hint("Description (optional)", curDesc), a.out)
	if err != nil {
		return nil, err
	}
	imageURL, err := getSimpleText(a.reader, hint("Image URL (optional, see 'upload')", curImage), a.out)
	if err != nil {
		return nil, err
	}

	catalog := a.catalog(ctx)
	renderIngredients(a.out, catalog)
	prompt := fmt.Sprintf("Ingredients as <n or name>=<quantity>, up to %d", common.MaxRecipeLines)
	if current != nil {
		prompt += " (empty keeps the current list)"
	}
	raw, err := getLines(a.reader, prompt, a.out)
	if err != nil {
		return nil, err
	}

	var lines []recipeLine
	if len(raw) == 0 && current != nil {
		lines = linesOf(*current)
	} else if lines, err = parseRecipeLines(raw); err != nil {
		return nil, err
	}
	if len(lines) > common.MaxRecipeLines {
		fmt.Fprintf(a.out, "Only the first %d ingredients are kept\n", common.MaxRecipeLines)
	}

	return recipeForm(keep(name, curName), keep(description, curDesc), keep(imageURL, curImage), lines, catalog)
}

func (a *App) AddRecipe(ctx context.Context) error {
	form, err := a.promptRecipe(ctx, nil)
	if err != nil {
		return err
	}
	res := a.session.Recipes.Add(ctx, form)
	toastResult(a, res, "Рецепт сохранён")
	return nil
}

func (a *App) EditRecipe(ctx context.Context, ref string) error {
	id := a.recipeRef(ref)
	current, ok := a.session.Recipes.Find(id)
	if !ok {
		res, err := a.session.Gateway.GetRecipe(ctx, id)
		if err != nil {
			return err
		}
		if !res.Success || res.Data == nil {
			a.toast.Danger("Ошибка", res.Error)
			return nil
		}
		current = *res.Data
	}

	form, err := a.promptRecipe(ctx, &current)
	if err != nil {
		return err
	}
	res := a.session.Recipes.Update(ctx, current.ID, form)
	toastResult(a, res, "Рецепт обновлён")
	return nil
}

func (a *App) DeleteRecipe(ctx context.Context, ref string) error {
	res := a.session.Recipes.Remove(ctx, a.recipeRef(ref))
	toastResult(a, res, "Рецепт удалён")
	return nil
}

// maxImageBytes caps the size of an uploaded recipe image.
const maxImageBytes = 10 << 20

// uploadImage is a seam for tests.
var uploadImage = func(ctx context.Context, url string, body []byte) error {
	return netx.UploadToPresignedURL(ctx, nil, url, body)
}

// Upload gets a presigned image location from the server. With a file path
// it also uploads the file; either way it prints the URL to use as the
// recipe's image URL.
func (a *App) Upload(ctx context.Context, path string) error {
	var body []byte
	if path != "" {
		b, err := filex.ReadLimited(path, maxImageBytes)
		if err != nil {
			return err
		}
		body = b
	}

	res, err := a.session.Gateway.ImageUploadURL(ctx)
	if err != nil {
		return err
	}
	if !res.Success || res.Data == nil {
		a.toast.Danger("Ошибка", res.Error)
		return nil
	}

	if body == nil {
		fmt.Fprintf(a.out, "PUT the image to:\n  %s\nthen use this image URL:\n  %s\n", res.Data.UploadURL, res.Data.ObjectURL)
		return nil
	}

	if err := uploadImage(ctx, res.Data.UploadURL, body); err != nil {
		a.toast.Danger("Не удалось загрузить изображение", err.Error())
		return nil
	}
	a.toast.Success("Изображение загружено", res.Data.ObjectURL)
	return nil
}
