package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/dbx"
	"github.com/dmitrijs2005/recipebook/internal/models"
	servermodels "github.com/dmitrijs2005/recipebook/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s
}

func addIngredient(t *testing.T, s *Store, name string, unit models.Unit) string {
	t.Helper()
	ing, err := s.Ingredients(s.Conn()).Create(context.Background(), &models.Ingredient{Name: name, Category: models.CategoryOther, Unit: unit})
	require.NoError(t, err)
	return ing.ID
}

func TestUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	repo := s.Users(s.Conn())

	u, err := repo.Create(ctx, &servermodels.User{Email: "a@b.c", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Equal(t, "id-1", u.ID)

	_, err = repo.Create(ctx, &servermodels.User{Email: "a@b.c", PasswordHash: "h2"})
	assert.ErrorIs(t, err, common.ErrorConflict)

	got, err := repo.GetByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "h", got.PasswordHash)

	_, err = repo.GetByEmail(ctx, "x@b.c")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", got.Email)

	_, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRefreshTokens(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()
	s.now = func() time.Time { return now }

	u, err := s.Users(s.Conn()).Create(ctx, &servermodels.User{Email: "a@b.c"})
	require.NoError(t, err)

	repo := s.RefreshTokens(s.Conn())
	require.NoError(t, repo.Create(ctx, u.ID, "t1", time.Minute))
	require.NoError(t, repo.Create(ctx, u.ID, "t2", -time.Minute))
	assert.ErrorIs(t, repo.Create(ctx, u.ID, "t1", time.Minute), common.ErrorConflict)
	assert.ErrorIs(t, repo.Create(ctx, "ghost", "t3", time.Minute), common.ErrorConflict)

	tok, err := repo.Find(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, tok.UserID)
	assert.Equal(t, now.Add(time.Minute), tok.Expires)

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, repo.Delete(ctx, "t1"))
	require.NoError(t, repo.Delete(ctx, "t1"))
	_, err = repo.Find(ctx, "t1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestIngredients(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	repo := s.Ingredients(s.Conn())

	price := 1.5
	salt, err := repo.Create(ctx, &models.Ingredient{Name: "соль", Category: models.CategorySpices, Unit: models.UnitGrams, PricePerUnit: &price})
	require.NoError(t, err)
	addIngredient(t, s, "Морковь", models.UnitPieces)
	addIngredient(t, s, "Базилик", models.UnitGrams)

	price = 99
	got, err := repo.Get(ctx, salt.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.5, *got.PricePerUnit, "stored copy is independent of the caller")

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Базилик", "Морковь", "соль"}, []string{list[0].Name, list[1].Name, list[2].Name})

	assert.ErrorIs(t, repo.Delete(ctx, "nope"), common.ErrorNotFound)
	require.NoError(t, repo.Delete(ctx, salt.ID))
	_, err = repo.Get(ctx, salt.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestIngredients_DeleteReferencedIsRestricted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	x := addIngredient(t, s, "X", models.UnitPieces)

	rec, err := s.Recipes(s.Conn()).Create(ctx, &models.Recipe{Name: "Soup"})
	require.NoError(t, err)
	require.NoError(t, s.Recipes(s.Conn()).ReplaceIngredients(ctx, rec.ID, []models.RecipeLine{{IngredientID: x, Quantity: 2}}))

	assert.ErrorIs(t, s.Ingredients(s.Conn()).Delete(ctx, x), common.ErrorConflict)

	require.NoError(t, s.Recipes(s.Conn()).Delete(ctx, rec.ID))
	require.NoError(t, s.Ingredients(s.Conn()).Delete(ctx, x))
}

func TestRecipes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	repo := s.Recipes(s.Conn())
	salt := addIngredient(t, s, "Salt", models.UnitGrams)

	first, err := repo.Create(ctx, &models.Recipe{Name: "Soup"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &models.Recipe{Name: "Stew"})
	require.NoError(t, err)

	require.NoError(t, repo.ReplaceIngredients(ctx, second.ID, []models.RecipeLine{
		{IngredientID: salt, Quantity: 10},
		{IngredientID: salt, Quantity: 5},
	}))
	assert.ErrorIs(t, repo.ReplaceIngredients(ctx, second.ID, []models.RecipeLine{{IngredientID: "nope", Quantity: 1}}), common.ErrorConflict)
	assert.ErrorIs(t, repo.ReplaceIngredients(ctx, "nope", nil), common.ErrorConflict)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, first.ID, list[1].ID)
	assert.NotNil(t, list[1].Ingredients)

	got, err := repo.Get(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, got.Ingredients, 2)
	assert.Equal(t, "г", got.Ingredients[0].Ingredient.Unit.Abbreviation())
	assert.Equal(t, 10.0, got.Ingredients[0].Quantity)
	assert.Equal(t, 5.0, got.Ingredients[1].Quantity)

	desc := "thick"
	require.NoError(t, repo.Update(ctx, &models.Recipe{ID: second.ID, Name: "Beef stew", Description: &desc}))
	assert.ErrorIs(t, repo.Update(ctx, &models.Recipe{ID: "nope", Name: "x"}), common.ErrorNotFound)
	got, err = repo.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beef stew", got.Name)
	assert.Equal(t, "thick", *got.Description)
	assert.Len(t, got.Ingredients, 2, "update keeps lines")

	require.NoError(t, repo.Delete(ctx, second.ID))
	assert.ErrorIs(t, repo.Delete(ctx, second.ID), common.ErrorNotFound)
	_, err = repo.Get(ctx, second.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestInTx_RollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	var _ dbx.Transactor = s

	err := s.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := s.Recipes(tx).Create(ctx, &models.Recipe{Name: "Soup"})
		require.NoError(t, err)
		return errors.New("boom")
	})
	require.Error(t, err)

	list, err := s.Recipes(s.Conn()).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = s.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := s.Recipes(tx).Create(ctx, &models.Recipe{Name: "Soup"})
		return err
	})
	require.NoError(t, err)
	list, err = s.Recipes(s.Conn()).List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestInTx_RollsBackOnPanic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = s.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
			_, err := s.Ingredients(tx).Create(ctx, &models.Ingredient{Name: "X", Category: models.CategoryOther, Unit: models.UnitGrams})
			require.NoError(t, err)
			panic("kaput")
		})
	})

	list, err := s.Ingredients(s.Conn()).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Nil(t, s.Conn())
}

func TestInTx_RollbackKeepsConcurrentAutocommitWrites(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- s.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
			if _, err := s.Recipes(tx).Create(ctx, &models.Recipe{Name: "Soup"}); err != nil {
				return err
			}
			close(entered)
			<-release
			return errors.New("unknown ingredient")
		})
	}()
	<-entered

	regDone := make(chan error, 1)
	go func() {
		_, err := s.Users(s.Conn()).Create(ctx, &servermodels.User{Email: "cook@example.com", PasswordHash: "h"})
		regDone <- err
	}()

	select {
	case <-regDone:
		t.Fatal("autocommit write finished while a unit of work was open")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.Error(t, <-txDone)
	require.NoError(t, <-regDone)

	u, err := s.Users(s.Conn()).GetByEmail(ctx, "cook@example.com")
	require.NoError(t, err)
	assert.Equal(t, "h", u.PasswordHash)

	list, err := s.Recipes(s.Conn()).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInTx_ReadsStayAvailable(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, err := s.Ingredients(s.Conn()).Create(ctx, &models.Ingredient{Name: "Соль", Category: models.CategorySpices, Unit: models.UnitGrams})
	require.NoError(t, err)

	err = s.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		list, err := s.Ingredients(s.Conn()).List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestRefreshTokens_DeleteForUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner, err := s.Users(s.Conn()).Create(ctx, &servermodels.User{Email: "a@b.c"})
	require.NoError(t, err)
	other, err := s.Users(s.Conn()).Create(ctx, &servermodels.User{Email: "x@y.z"})
	require.NoError(t, err)

	repo := s.RefreshTokens(s.Conn())
	require.NoError(t, repo.Create(ctx, owner.ID, "t1", time.Minute))

	require.NoError(t, repo.DeleteForUser(ctx, other.ID, "t1"))
	_, err = repo.Find(ctx, "t1")
	require.NoError(t, err, "a foreign user cannot drop the token")

	require.NoError(t, repo.DeleteForUser(ctx, owner.ID, "t1"))
	_, err = repo.Find(ctx, "t1")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, repo.DeleteForUser(ctx, owner.ID, "t1"))
}
