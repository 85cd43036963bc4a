package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/recipebook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 { return &v }

func TestIngredients_RendersTable(t *testing.T) {
	desc := "морская"
	gw := &fakeGateway{ingredients: []models.Ingredient{
		{ID: "i1", Name: "Соль", Category: models.CategorySpices, Unit: models.UnitGrams, PricePerUnit: price(1.5), Description: &desc},
		{ID: "i2", Name: "Молоко", Category: models.CategoryDairy, Unit: models.UnitLiters, PricePerUnit: price(80)},
	}}
	a, out := newTestApp(gw)

	require.NoError(t, a.Ingredients(context.Background()))

	s := out.String()
	assert.Contains(t, s, "Соль")
	assert.Contains(t, s, "Специи")
	assert.Contains(t, s, "1.5")
	assert.Contains(t, s, "морская")
	assert.Contains(t, s, "Молочные")
	assert.Contains(t, s, "Всего: 2")
}

func TestSearch_UsesServerMatches(t *testing.T) {
	gw := &fakeGateway{ingredients: []models.Ingredient{
		{ID: "i1", Name: "Соль"},
		{ID: "i2", Name: "Перец"},
		{ID: "i3", Name: "Сладкий перец"},
	}}
	a, out := newTestApp(gw)

	require.NoError(t, a.Search(context.Background(), "пер"))
	assert.Equal(t, "пер", gw.lastQuery)
	assert.Contains(t, out.String(), "Перец")
	assert.NotContains(t, out.String(), "Сладкий перец")
	assert.Contains(t, out.String(), "Всего: 1")
	assert.Empty(t, a.session.Ingredients.State().Ingredients, "search leaves the cached catalog alone")
}

func TestSearch_FallsBackToLoadedCatalog(t *testing.T) {
	gw := &fakeGateway{ingredients: []models.Ingredient{
		{ID: "i1", Name: "Соль"},
		{ID: "i2", Name: "Перец"},
		{ID: "i3", Name: "Сладкий перец"},
	}}
	a, out := newTestApp(gw)
	require.True(t, a.session.Ingredients.Load(context.Background()).Success)

	gw.searchErr = errors.New("connection refused")
	require.NoError(t, a.Search(context.Background(), "пер"))
	assert.Contains(t, out.String(), "✖ Ошибка: Ошибка при поиске ингредиентов")
	assert.Contains(t, out.String(), "Сладкий перец")
	assert.Contains(t, out.String(), "Всего: 2")
}

func TestAddIngredient_BuildsForm(t *testing.T) {
	gw := &fakeGateway{}
	a, out := newTestApp(gw)

	stubAnswers(t, []string{"Соль", "5", "grams", "1,5", ""}, nil)
	require.NoError(t, a.AddIngredient(context.Background()))

	assert.Equal(t, "Соль", gw.lastForm.Get("name"))
	assert.Equal(t, string(models.CategorySpices), gw.lastForm.Get("category"))
	assert.Equal(t, string(models.UnitGrams), gw.lastForm.Get("unit"))
	assert.Equal(t, "1,5", gw.lastForm.Get("pricePerUnit"))
	assert.False(t, gw.lastForm.Has("description"))

	assert.Contains(t, out.String(), "✔ Ингредиент добавлен")
	assert.Len(t, a.session.Ingredients.State().Ingredients, 1)
}

func TestDeleteIngredient_ByRowNumber(t *testing.T) {
	gw := &fakeGateway{ingredients: []models.Ingredient{{ID: "i1", Name: "Соль"}, {ID: "i2", Name: "Перец"}}}
	a, _ := newTestApp(gw)
	ctx := context.Background()
	require.NoError(t, a.Ingredients(ctx))

	require.NoError(t, a.DeleteIngredient(ctx, "2"))
	assert.Equal(t, "i2", gw.lastID)
	assert.Len(t, a.session.Ingredients.State().Ingredients, 1)

	require.NoError(t, a.DeleteIngredient(ctx, "i1"))
	assert.Equal(t, "i1", gw.lastID)
}
