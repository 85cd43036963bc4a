package cli

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/recipebook/internal/models"
)

// Ingredients reloads the catalog and prints it.
func (a *App) Ingredients(ctx context.Context) error {
	res := a.session.Ingredients.Load(ctx)
	if !res.Success {
		a.toast.Danger("Ошибка", res.Error)
	}
	renderIngredients(a.out, a.session.Ingredients.State().Ingredients)
	return nil
}

// Search prints the server's fuzzy matches for term. When the server cannot
// answer, the loaded catalog is filtered locally instead.
func (a *App) Search(ctx context.Context, term string) error {
	res := a.session.Ingredients.Search(ctx, term)
	if res.Success {
		renderIngredients(a.out, res.Data)
		return nil
	}

	a.toast.Danger("Ошибка", res.Error)
	renderIngredients(a.out, a.session.Ingredients.Filter(term))
	return nil
}

// pickOption prints the numbered labels and returns the chosen value. The
// user may type the number or the value itself.
func pickOption[T ~string](a *App, prompt string, options []T, label func(T) string) (T, error) {
	for i, o := range options {
		fmt.Fprintf(a.out, "  %d) %s\n", i+1, label(o))
	}
	raw, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], nil
	}
	return T(strings.ToUpper(raw)), nil
}

func (a *App) AddIngredient(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	category, err := pickOption(a, "Category", models.Categories, models.Category.Label)
	if err != nil {
		return err
	}
	unit, err := pickOption(a, "Unit", models.Units, models.Unit.Label)
	if err != nil {
		return err
	}
	price, err := getSimpleText(a.reader, "Price per unit", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}

	form := url.Values{
		"name":         {name},
		"category":     {string(category)},
		"unit":         {string(unit)},
		"pricePerUnit": {price},
	}
	if description != "" {
		form.Set("description", description)
	}

	res := a.session.Ingredients.Add(ctx, form)
	toastResult(a, res, "Ингредиент добавлен")
	return nil
}

// resolveRef turns a 1-based row number into the id at that row. Anything
// else is returned as is.
func resolveRef(ref string, ids []string) string {
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(ids) {
		return ids[n-1]
	}
	return ref
}

func (a *App) DeleteIngredient(ctx context.Context, ref string) error {
	items := a.session.Ingredients.State().Ingredients
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	res := a.session.Ingredients.Remove(ctx, resolveRef(ref, ids))
	toastResult(a, res, "Ингредиент удалён")
	return nil
}
