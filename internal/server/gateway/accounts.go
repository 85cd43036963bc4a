package gateway

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/models"
	"github.com/dmitrijs2005/recipebook/internal/server/auth"
	"github.com/dmitrijs2005/recipebook/internal/server/services"
)

const minPasswordLen = 6

type RegisterInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. The password confirmation is checked before
// the password length, and both before the email.
func (g *Gateway) Register(ctx context.Context, in RegisterInput) (res models.Result[*models.User]) {
	const op = "register"
	defer guard(ctx, g, op, &res, msgRegisterFailed)

	if in.Password != in.ConfirmPassword {
		return fail[*models.User](ctx, g, op, common.NewValidationError("confirmPassword", msgPasswordMismatch), msgRegisterFailed)
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLen {
		return fail[*models.User](ctx, g, op, common.NewValidationError("password", msgPasswordTooShort), msgRegisterFailed)
	}

	email := normalizeEmail(in.Email)
	if err := check(registerForm{Email: email}, fieldMessages{"email": msgEmailInvalid}); err != nil {
		return fail[*models.User](ctx, g, op, err, msgRegisterFailed)
	}

	u, err := g.accounts.Register(ctx, email, in.Password)
	if err != nil {
		return fail[*models.User](ctx, g, op, err, msgRegisterFailed,
			known{services.ErrEmailTaken, msgEmailTaken})
	}

	g.log.Info(ctx, "user registered", "user_id", u.ID)
	return models.Ok(publicUser(u))
}

// SignIn verifies credentials and issues a token pair.
func (g *Gateway) SignIn(ctx context.Context, in SignInInput) (res models.Result[*models.AuthResult]) {
	const op = "signin"
	defer guard(ctx, g, op, &res, msgSignInFailed)

	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return fail[*models.AuthResult](ctx, g, op, services.ErrInvalidCredentials, msgSignInFailed,
			known{services.ErrInvalidCredentials, msgBadCredentials})
	}

	u, pair, err := g.accounts.Login(ctx, email, in.Password)
	if err != nil {
		return fail[*models.AuthResult](ctx, g, op, err, msgSignInFailed,
			known{services.ErrInvalidCredentials, msgBadCredentials})
	}

	return models.Ok(&models.AuthResult{
		User:         publicUser(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// SignOut forgets refreshToken and revokes the caller's access token.
// Unknown tokens are not an error.
func (g *Gateway) SignOut(ctx context.Context, refreshToken string) (res models.Result[models.Empty]) {
	const op = "signout"
	defer guard(ctx, g, op, &res, msgSignOutFailed)

	claims, _ := auth.ClaimsFromContext(ctx)
	if err := g.accounts.Logout(ctx, refreshToken, claims); err != nil {
		return fail[models.Empty](ctx, g, op, err, msgSignOutFailed)
	}
	return models.Ok(models.Empty{})
}

// Refresh rotates refreshToken into a new token pair.
func (g *Gateway) Refresh(ctx context.Context, refreshToken string) (res models.Result[*models.AuthResult]) {
	const op = "refresh"
	defer guard(ctx, g, op, &res, msgSignInFailed)

	if refreshToken == "" {
		return fail[*models.AuthResult](ctx, g, op, common.ErrorUnauthorized, msgSessionExpired)
	}

	pair, err := g.accounts.RefreshToken(ctx, refreshToken)
	if err != nil {
		return fail[*models.AuthResult](ctx, g, op, err, msgSignInFailed,
			known{common.ErrorUnauthorized, msgSessionExpired},
			known{common.ErrRefreshTokenExpired, msgSessionExpired})
	}
	return models.Ok(&models.AuthResult{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// Session reports who the caller is. It always succeeds; callers without a
// usable identity are unauthenticated.
func (g *Gateway) Session(ctx context.Context) (res models.Result[models.Session]) {
	anonymous := models.Session{Status: models.AuthUnauthenticated}
	defer func() {
		if p := recover(); p != nil {
			g.log.Error(ctx, "session lookup panicked", "panic", p)
			res = models.Ok(anonymous)
		}
	}()

	id, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return models.Ok(anonymous)
	}

	u, err := g.accounts.GetUser(ctx, id)
	if err != nil {
		g.log.Warn(ctx, "session user lookup failed", "user_id", id, "error", err)
		return models.Ok(anonymous)
	}
	return models.Ok(models.Session{Status: models.AuthAuthenticated, User: publicUser(u)})
}
