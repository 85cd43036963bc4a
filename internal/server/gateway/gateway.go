// Package gateway is the server action layer: every operation validates its
// input, calls the domain services and folds the outcome into a
// models.Result carrying either data or a display message. Operations never
// return errors or panic to the caller.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/logging"
	"github.com/dmitrijs2005/recipebook/internal/models"
	"github.com/dmitrijs2005/recipebook/internal/server/auth"
	servermodels "github.com/dmitrijs2005/recipebook/internal/server/models"
	"github.com/dmitrijs2005/recipebook/internal/server/services"
)

// Accounts is the account and session backend.
type Accounts interface {
	Register(ctx context.Context, email, password string) (*servermodels.User, error)
	Login(ctx context.Context, email, password string) (*servermodels.User, *services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string, claims *auth.Claims) error
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	GetUser(ctx context.Context, id string) (*servermodels.User, error)
}

// Catalog is the ingredient catalog backend.
type Catalog interface {
	List(ctx context.Context) ([]models.Ingredient, error)
	Search(ctx context.Context, query string) ([]models.Ingredient, error)
	Create(ctx context.Context, d models.IngredientDraft) (*models.Ingredient, error)
	Delete(ctx context.Context, id string) error
}

// Cookbook is the recipe backend.
type Cookbook interface {
	List(ctx context.Context) ([]models.Recipe, error)
	Get(ctx context.Context, id string) (*models.Recipe, error)
	Create(ctx context.Context, d models.RecipeDraft) (*models.Recipe, error)
	Update(ctx context.Context, id string, d models.RecipeDraft) (*models.Recipe, error)
	Delete(ctx context.Context, id string) error
}

// Images issues upload targets for recipe pictures.
type Images interface {
	UploadURL(ctx context.Context) (*models.UploadTarget, error)
}

type Gateway struct {
	accounts Accounts
	catalog  Catalog
	cookbook Cookbook
	images   Images
	log      logging.Logger
}

func New(accounts Accounts, catalog Catalog, cookbook Cookbook, images Images, log logging.Logger) *Gateway {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &Gateway{
		accounts: accounts,
		catalog:  catalog,
		cookbook: cookbook,
		images:   images,
		log:      log.With("module", "gateway"),
	}
}

// known pairs an error with the message shown when it matches.
type known struct {
	err error
	msg string
}

// fail converts err into a failed Result. Matches in table win; validation
// errors carry their own message; anything else gets fallback.
func fail[T any](ctx context.Context, g *Gateway, op string, err error, fallback string, table ...known) models.Result[T] {
	kind := common.KindOf(err)

	msg := fallback
	matched := false
	for _, k := range table {
		if errors.Is(err, k.err) {
			msg, matched = k.msg, true
			break
		}
	}
	if !matched {
		var ve *common.ValidationError
		if errors.As(err, &ve) {
			msg = ve.Message
		}
	}

	if kind == common.KindUnknown {
		g.log.Error(ctx, "operation failed", "op", op, "error", err)
	} else {
		g.log.Debug(ctx, "operation rejected", "op", op, "kind", kind, "error", err)
	}
	return models.Fail[T](kind, msg)
}

// guard turns a panic inside an operation into an unknown-kind failure.
// It must be deferred directly.
func guard[T any](ctx context.Context, g *Gateway, op string, res *models.Result[T], fallback string) {
	if p := recover(); p != nil {
		*res = fail[T](ctx, g, op, fmt.Errorf("panic: %v", p), fallback)
	}
}

// requireUser returns a failed Result when ctx carries no authenticated
// user, nil otherwise.
func requireUser[T any](ctx context.Context, g *Gateway, op string) *models.Result[T] {
	if _, ok := auth.UserIDFromContext(ctx); ok {
		return nil
	}
	res := fail[T](ctx, g, op, common.ErrorUnauthorized, msgAuthRequired)
	return &res
}

func publicUser(u *servermodels.User) *models.User {
	if u == nil {
		return nil
	}
	return &models.User{ID: u.ID, Email: u.Email}
}

// AuthFailure is the Result sent when a request's access token is missing
// or rejected. Expired tokens get a message asking to sign in again.
func AuthFailure(err error) models.Result[models.Empty] {
	if errors.Is(err, common.ErrTokenExpired) {
		return models.Fail[models.Empty](common.KindAuth, msgSessionExpired)
	}
	return models.Fail[models.Empty](common.KindAuth, msgAuthRequired)
}

// TooManyRequests is the Result sent to rate-limited callers.
func TooManyRequests() models.Result[models.Empty] {
	return models.Fail[models.Empty](common.KindUnknown, msgTooManyRequests)
}

// MalformedRequest is the Result sent when a request body cannot be decoded.
func MalformedRequest() models.Result[models.Empty] {
	return models.Fail[models.Empty](common.KindValidation, msgMalformedRequest)
}
