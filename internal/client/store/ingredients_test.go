package store

import (
	"context"
	"net/url"
	"sync"
	"testing"

	"github.com/dmitrijs2005/recipebook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saltForm() url.Values {
	return url.Values{"name": {"Соль"}, "category": {"SPICES"}, "unit": {"GRAMS"}, "pricePerUnit": {"1.5"}}
}

func TestIngredientStore_LoadReplacesCollection(t *testing.T) {
	gw := &fakeGateway{ingredients: []models.Ingredient{{ID: "i1", Name: "Соль"}, {ID: "i2", Name: "Перец"}}}
	s := NewIngredientStore(gw)
	ctx := context.Background()

	res := s.Load(ctx)
	require.True(t, res.Success)
	first := s.State()
	assert.Len(t, first.Ingredients, 2)
	assert.False(t, first.IsLoading)
	assert.Nil(t, first.Error)

	s.Load(ctx)
	assert.Equal(t, first.Ingredients, s.State().Ingredients, "loading twice yields the same collection")
}

func TestIngredientStore_LoadFailureKeepsCollection(t *testing.T) {
	gw := &fakeGateway{ingredients: []models.Ingredient{{ID: "i1", Name: "Соль"}}}
	s := NewIngredientStore(gw)
	ctx := context.Background()
	s.Load(ctx)

	gw.failWith = "Ошибка базы"
	res := s.Load(ctx)
	assert.False(t, res.Success)

	st := s.State()
	require.NotNil(t, st.Error)
	assert.Equal(t, "Ошибка базы", *st.Error)
	assert.Len(t, st.Ingredients, 1)
	assert.False(t, st.IsLoading)

	gw.failWith = ""
	s.Load(ctx)
	assert.Nil(t, s.State().Error, "a new load clears the error")
}

func TestIngredientStore_TransportFaultUsesFallback(t *testing.T) {
	gw := &fakeGateway{down: true}
	s := NewIngredientStore(gw)

	res := s.Load(context.Background())
	assert.False(t, res.Success)
	assert.Equal(t, msgIngredientsLoadFailed, res.Error)

	st := s.State()
	require.NotNil(t, st.Error)
	assert.Equal(t, msgIngredientsLoadFailed, *st.Error)
	assert.False(t, st.IsLoading)
}

func TestIngredientStore_AddAppendsGatewayRecord(t *testing.T) {
	gw := &fakeGateway{ingredients: []models.Ingredient{{ID: "i0", Name: "Перец"}}}
	s := NewIngredientStore(gw)
	ctx := context.Background()
	s.Load(ctx)

	res := s.Add(ctx, saltForm())
	require.True(t, res.Success)

	st := s.State()
	require.Len(t, st.Ingredients, 2)
	assert.Equal(t, res.Data.ID, st.Ingredients[1].ID)
	assert.Equal(t, "Соль", st.Ingredients[1].Name)
}

func TestIngredientStore_AddFailureLeavesCollection(t *testing.T) {
	gw := &fakeGateway{}
	s := NewIngredientStore(gw)

	res := s.Add(context.Background(), url.Values{"category": {"SPICES"}})
	assert.False(t, res.Success)

	st := s.State()
	assert.Empty(t, st.Ingredients)
	require.NotNil(t, st.Error)
	assert.Equal(t, "Название обязательно", *st.Error)
}

func TestIngredientStore_Remove(t *testing.T) {
	gw := &fakeGateway{ingredients: []models.Ingredient{{ID: "i1", Name: "Соль"}, {ID: "i2", Name: "Перец"}}}
	s := NewIngredientStore(gw)
	ctx := context.Background()
	s.Load(ctx)

	require.True(t, s.Remove(ctx, "i1").Success)
	st := s.State()
	require.Len(t, st.Ingredients, 1)
	assert.Equal(t, "i2", st.Ingredients[0].ID)

	res := s.Remove(ctx, "i1")
	assert.False(t, res.Success, "a repeated delete surfaces not found")
	st = s.State()
	assert.Len(t, st.Ingredients, 1)
	require.NotNil(t, st.Error)
	assert.Equal(t, "Ингредиент не найден", *st.Error)
}

func TestIngredientStore_RemoveFailureKeepsCardinality(t *testing.T) {
	gw := &fakeGateway{ingredients: []models.Ingredient{{ID: "i1"}, {ID: "i2"}}}
	s := NewIngredientStore(gw)
	ctx := context.Background()
	s.Load(ctx)

	gw.setDown(true)
	res := s.Remove(ctx, "i1")
	assert.False(t, res.Success)
	assert.Equal(t, msgIngredientDeleteFailed, res.Error)
	assert.Len(t, s.State().Ingredients, 2)
}

func TestIngredientStore_Filter(t *testing.T) {
	gw := &fakeGateway{ingredients: []models.Ingredient{
		{ID: "i1", Name: "Соль морская"},
		{ID: "i2", Name: "Перец"},
		{ID: "i3", Name: "Соль"},
	}}
	s := NewIngredientStore(gw)
	s.Load(context.Background())

	got := s.Filter("  СОЛЬ ")
	require.Len(t, got, 2)
	assert.Equal(t, "i1", got[0].ID)
	assert.Equal(t, "i3", got[1].ID)
	assert.Len(t, s.Filter(""), 3)
	assert.Empty(t, s.Filter("сахар"))
}

func TestIngredientStore_SearchLeavesCollection(t *testing.T) {
	gw := &fakeGateway{ingredients: []models.Ingredient{{ID: "i1", Name: "Соль"}, {ID: "i2", Name: "Перец"}}}
	s := NewIngredientStore(gw)
	ctx := context.Background()
	s.Load(ctx)

	res := s.Search(ctx, "соль")
	require.True(t, res.Success)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "i1", res.Data[0].ID)
	assert.Len(t, s.State().Ingredients, 2)

	gw.down = true
	res = s.Search(ctx, "соль")
	assert.False(t, res.Success)
	assert.Equal(t, msgIngredientSearchFailed, res.Error)
	assert.Nil(t, s.State().Error, "a failed search is not a store error")
	assert.Len(t, s.State().Ingredients, 2)
}

func TestIngredientStore_CanceledCallerStillCompletes(t *testing.T) {
	gw := &fakeGateway{}
	s := NewIngredientStore(gw)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := s.Add(ctx, saltForm())
	require.True(t, res.Success)
	assert.Len(t, s.State().Ingredients, 1)
	assert.Equal(t, []error{nil}, gw.ctxErrs)
}

func TestIngredientStore_ConcurrentAdds(t *testing.T) {
	gw := &fakeGateway{}
	s := NewIngredientStore(gw)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(context.Background(), saltForm())
		}()
	}
	wg.Wait()

	assert.Len(t, s.State().Ingredients, 20)
}

func TestIngredientStore_SnapshotIsACopy(t *testing.T) {
	gw := &fakeGateway{ingredients: []models.Ingredient{{ID: "i1", Name: "Соль"}}}
	s := NewIngredientStore(gw)
	s.Load(context.Background())

	st := s.State()
	st.Ingredients[0].Name = "changed"
	assert.Equal(t, "Соль", s.State().Ingredients[0].Name)
}
