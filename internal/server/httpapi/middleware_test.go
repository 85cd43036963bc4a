package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthenticator struct {
	claims *auth.Claims
	err    error
	got    string
}

func (f *fakeAuthenticator) Authenticate(token string) (*auth.Claims, error) {
	f.got = token
	return f.claims, f.err
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.UserIDFromContext(r.Context())
	_, _ = w.Write([]byte(id))
}

func TestAccessToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		value  string
		want   string
	}{
		{"bearer", "Authorization", "Bearer abc", "abc"},
		{"bearer lower case", "Authorization", "bearer abc", "abc"},
		{"basic is ignored", "Authorization", "Basic abc", ""},
		{"legacy header", common.AccessTokenHeaderName, "xyz", "xyz"},
		{"none", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set(tt.header, tt.value)
			}
			assert.Equal(t, tt.want, accessToken(r))
		})
	}
}

func TestRequireAuth(t *testing.T) {
	fa := &fakeAuthenticator{claims: &auth.Claims{UserID: "u1"}}
	h := requireAuth(fa)(http.HandlerFunc(echoUser))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer t1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())
	assert.Equal(t, "t1", fa.got)

	fa.err = common.ErrTokenExpired
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, common.AuthErrorTokenExpired, rec.Header().Get(common.AuthErrorHeaderName))
}

func TestOptionalAuth(t *testing.T) {
	fa := &fakeAuthenticator{err: common.ErrInvalidToken}
	h := optionalAuth(fa)(http.HandlerFunc(echoUser))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer bad")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	fa.err, fa.claims = nil, &auth.Claims{UserID: "u2"}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, "u2", rec.Body.String())
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusOK, statusFor(""))
	assert.Equal(t, http.StatusBadRequest, statusFor(common.KindValidation))
	assert.Equal(t, http.StatusUnauthorized, statusFor(common.KindAuth))
	assert.Equal(t, http.StatusNotFound, statusFor(common.KindNotFound))
	assert.Equal(t, http.StatusConflict, statusFor(common.KindConflict))
	assert.Equal(t, http.StatusInternalServerError, statusFor(common.KindUnknown))
}
