package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/logging"
	"github.com/dmitrijs2005/recipebook/internal/server/auth"
	"github.com/dmitrijs2005/recipebook/internal/server/gateway"
	"github.com/go-chi/chi/v5/middleware"
)

// Authenticator verifies access tokens.
type Authenticator interface {
	Authenticate(accessToken string) (*auth.Claims, error)
}

// accessToken extracts the token from "Authorization: Bearer" or the
// access_token header.
func accessToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return r.Header.Get(common.AccessTokenHeaderName)
}

func rejectToken(w http.ResponseWriter, err error) {
	if errors.Is(err, common.ErrTokenExpired) {
		w.Header().Set(common.AuthErrorHeaderName, common.AuthErrorTokenExpired)
	}
	writeResult(w, gateway.AuthFailure(err))
}

// requireAuth rejects requests without a valid access token and stores the
// claims of valid ones in the request context.
func requireAuth(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := accessToken(r)
			if token == "" {
				rejectToken(w, common.ErrorUnauthorized)
				return
			}
			claims, err := a.Authenticate(token)
			if err != nil {
				rejectToken(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

// optionalAuth attaches claims when a valid token is present and lets
// anonymous requests through. Expired tokens are still rejected so clients
// refresh instead of silently losing their session.
func optionalAuth(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := accessToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := a.Authenticate(token)
			switch {
			case err == nil:
				r = r.WithContext(auth.WithClaims(r.Context(), claims))
			case errors.Is(err, common.ErrTokenExpired):
				rejectToken(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger logs one line per request.
func requestLogger(l logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			l.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
