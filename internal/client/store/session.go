package store

import (
	"context"

	"github.com/dmitrijs2005/recipebook/internal/client/client"
	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/models"
)

const (
	msgSignInFailed   = "Ошибка авторизации"
	msgSignOutFailed  = "Ошибка при выходе"
	msgRegisterFailed = "Ошибка при регистрации"
)

// Session owns the client state for one user session. It is created once at
// startup and passed to the UI.
type Session struct {
	Gateway     client.Gateway
	Auth        *AuthStore
	Ingredients *IngredientStore
	Recipes     *RecipeStore
}

func NewSession(gw client.Gateway) *Session {
	return &Session{
		Gateway:     gw,
		Auth:        NewAuthStore(),
		Ingredients: NewIngredientStore(gw),
		Recipes:     NewRecipeStore(gw),
	}
}

// Init resolves the initial auth state. Any failure, including an
// unreachable server, settles on unauthenticated.
func (s *Session) Init(ctx context.Context) AuthState {
	res, err := s.Gateway.Session(ctx)
	if err == nil && res.Success && res.Data.Status == models.AuthAuthenticated && res.Data.User != nil {
		_ = s.Auth.SetAuthState(models.AuthAuthenticated, res.Data.User)
	} else {
		_ = s.Auth.SetAuthState(models.AuthUnauthenticated, nil)
	}
	return s.Auth.State()
}

// Register creates an account. It does not sign the user in.
func (s *Session) Register(ctx context.Context, email, password, confirmPassword string) models.Result[*models.User] {
	res, err := s.Gateway.Register(ctx, email, password, confirmPassword)
	if err != nil {
		return models.Fail[*models.User](common.KindUnknown, msgRegisterFailed)
	}
	return res
}

func (s *Session) SignIn(ctx context.Context, email, password string) models.Result[*models.AuthResult] {
	res, err := s.Gateway.SignIn(ctx, email, password)
	if err != nil {
		return models.Fail[*models.AuthResult](common.KindUnknown, msgSignInFailed)
	}
	if res.Success && res.Data != nil {
		_ = s.Auth.SetAuthState(models.AuthAuthenticated, res.Data.User)
	}
	return res
}

// SignOut ends the session on the server and clears local state. The local
// state is cleared even if the server call fails.
func (s *Session) SignOut(ctx context.Context) models.Result[models.Empty] {
	res, err := s.Gateway.SignOut(ctx)
	if err != nil {
		res = models.Fail[models.Empty](common.KindUnknown, msgSignOutFailed)
	}
	_ = s.Auth.SetAuthState(models.AuthUnauthenticated, nil)
	s.Reset()
	return res
}

// Reset clears the cached collections and their errors.
func (s *Session) Reset() {
	s.Ingredients.Reset()
	s.Recipes.Reset()
}
