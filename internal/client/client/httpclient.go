package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/models"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"

	maxResponseBytes = 4 << 20
)

// HTTPClient implements Gateway over the recipebook JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore

	// refreshMu serialises token refreshes so concurrent 401s spend the
	// refresh token once.
	refreshMu sync.Mutex
}

func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenStore) *HTTPClient {
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

type request struct {
	method      string
	path        string
	body        []byte
	contentType string
}

func jsonRequest(method, path string, v any) (request, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return request{}, err
	}
	return request{method: method, path: path, body: b, contentType: contentTypeJSON}, nil
}

func formRequest(method, path string, form url.Values) request {
	return request{method: method, path: path, body: []byte(form.Encode()), contentType: contentTypeForm}
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (r response) tokenExpired() bool {
	return r.status == http.StatusUnauthorized &&
		r.header.Get(common.AuthErrorHeaderName) == common.AuthErrorTokenExpired
}

// send performs one round trip with the given access token.
func (c *HTTPClient) send(ctx context.Context, req request, accessToken string) (response, error) {
	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return response{}, err
	}
	httpReq.Header.Set("Accept", contentTypeJSON)
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if accessToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return response{}, mapError(ctx, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return response{}, mapError(ctx, err)
	}
	return response{status: resp.StatusCode, header: resp.Header, body: b}, nil
}

func mapError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// exchange sends req and, if the access token has expired, refreshes the
// pair once and replays req with the new token.
func (c *HTTPClient) exchange(ctx context.Context, req request) (response, error) {
	tokens, err := c.tokens.Load(ctx)
	if err != nil {
		return response{}, err
	}

	resp, err := c.send(ctx, req, tokens.Access)
	if err != nil || !resp.tokenExpired() || tokens.Refresh == "" {
		return resp, err
	}

	fresh, ok, err := c.refresh(ctx, tokens.Access)
	if err != nil || !ok {
		return resp, err
	}
	return c.send(ctx, req, fresh)
}

// refresh trades the stored refresh token for a new pair. stale is the
// access token that was rejected; if another caller already replaced it the
// stored token is reused. ok is false when the server refused the refresh
// as an auth failure, in which case the stored tokens are dropped. Any other
// failure keeps the tokens and is returned as ErrUnavailable.
func (c *HTTPClient) refresh(ctx context.Context, stale string) (string, bool, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	tokens, err := c.tokens.Load(ctx)
	if err != nil {
		return "", false, err
	}
	if tokens.Access != "" && tokens.Access != stale {
		return tokens.Access, true, nil
	}
	if tokens.Refresh == "" {
		return "", false, nil
	}

	res, err := c.callRefresh(ctx, tokens.Refresh)
	if err != nil {
		return "", false, err
	}
	if !res.Success && res.Kind == common.KindAuth {
		return "", false, c.tokens.Clear(ctx)
	}
	if !res.Success || res.Data == nil {
		return "", false, fmt.Errorf("%w: token refresh: %s", ErrUnavailable, res.Error)
	}

	if err := c.tokens.Save(ctx, Tokens{Access: res.Data.AccessToken, Refresh: res.Data.RefreshToken}); err != nil {
		return "", false, err
	}
	return res.Data.AccessToken, true, nil
}

type refreshBody struct {
	RefreshToken string `json:"refreshToken"`
}

func (c *HTTPClient) callRefresh(ctx context.Context, refreshToken string) (models.Result[*models.AuthResult], error) {
	req, err := jsonRequest(http.MethodPost, "/api/auth/refresh", refreshBody{RefreshToken: refreshToken})
	if err != nil {
		return models.Result[*models.AuthResult]{}, err
	}
	resp, err := c.send(ctx, req, "")
	if err != nil {
		return models.Result[*models.AuthResult]{}, err
	}
	return decode[*models.AuthResult](resp)
}

func decode[T any](resp response) (models.Result[T], error) {
	var res models.Result[T]
	if err := json.Unmarshal(resp.body, &res); err != nil {
		return res, fmt.Errorf("%w: status %d: %v", ErrUnexpectedResponse, resp.status, err)
	}
	if !res.Success && res.Error == "" {
		return res, fmt.Errorf("%w: status %d without error message", ErrUnexpectedResponse, resp.status)
	}
	return res, nil
}

func call[T any](ctx context.Context, c *HTTPClient, req request) (models.Result[T], error) {
	resp, err := c.exchange(ctx, req)
	if err != nil {
		return models.Result[T]{}, err
	}
	return decode[T](resp)
}

func (c *HTTPClient) Register(ctx context.Context, email, password, confirmPassword string) (models.Result[*models.User], error) {
	req, err := jsonRequest(http.MethodPost, "/api/auth/register", map[string]string{
		"email":           email,
		"password":        password,
		"confirmPassword": confirmPassword,
	})
	if err != nil {
		return models.Result[*models.User]{}, err
	}
	return call[*models.User](ctx, c, req)
}

// SignIn stores the issued tokens on success.
func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (models.Result[*models.AuthResult], error) {
	req, err := jsonRequest(http.MethodPost, "/api/auth/signin", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return models.Result[*models.AuthResult]{}, err
	}

	res, err := call[*models.AuthResult](ctx, c, req)
	if err != nil {
		return res, err
	}
	if res.Success && res.Data != nil {
		if err := c.tokens.Save(ctx, Tokens{Access: res.Data.AccessToken, Refresh: res.Data.RefreshToken}); err != nil {
			return res, err
		}
	}
	return res, nil
}

// SignOut revokes the session on the server. Local tokens are dropped
// whatever the server answers.
func (c *HTTPClient) SignOut(ctx context.Context) (models.Result[models.Empty], error) {
	tokens, err := c.tokens.Load(ctx)
	if err != nil {
		return models.Result[models.Empty]{}, err
	}

	req, err := jsonRequest(http.MethodPost, "/api/auth/signout", refreshBody{RefreshToken: tokens.Refresh})
	if err != nil {
		return models.Result[models.Empty]{}, err
	}
	res, callErr := call[models.Empty](ctx, c, req)

	if err := c.tokens.Clear(ctx); err != nil {
		return res, errors.Join(callErr, err)
	}
	return res, callErr
}

func (c *HTTPClient) Session(ctx context.Context) (models.Result[models.Session], error) {
	return call[models.Session](ctx, c, request{method: http.MethodGet, path: "/api/auth/session"})
}

func (c *HTTPClient) ListIngredients(ctx context.Context) (models.Result[[]models.Ingredient], error) {
	return call[[]models.Ingredient](ctx, c, request{method: http.MethodGet, path: "/api/ingredients"})
}

func (c *HTTPClient) SearchIngredients(ctx context.Context, query string) (models.Result[[]models.Ingredient], error) {
	path := "/api/ingredients?" + url.Values{"q": {query}}.Encode()
	return call[[]models.Ingredient](ctx, c, request{method: http.MethodGet, path: path})
}

func (c *HTTPClient) CreateIngredient(ctx context.Context, form url.Values) (models.Result[*models.Ingredient], error) {
	return call[*models.Ingredient](ctx, c, formRequest(http.MethodPost, "/api/ingredients", form))
}

func (c *HTTPClient) DeleteIngredient(ctx context.Context, id string) (models.Result[models.Empty], error) {
	return call[models.Empty](ctx, c, request{method: http.MethodDelete, path: "/api/ingredients/" + url.PathEscape(id)})
}

func (c *HTTPClient) ListRecipes(ctx context.Context) (models.Result[[]models.Recipe], error) {
	return call[[]models.Recipe](ctx, c, request{method: http.MethodGet, path: "/api/recipes"})
}

func (c *HTTPClient) GetRecipe(ctx context.Context, id string) (models.Result[*models.Recipe], error) {
	return call[*models.Recipe](ctx, c, request{method: http.MethodGet, path: "/api/recipes/" + url.PathEscape(id)})
}

func (c *HTTPClient) CreateRecipe(ctx context.Context, form url.Values) (models.Result[*models.Recipe], error) {
	return call[*models.Recipe](ctx, c, formRequest(http.MethodPost, "/api/recipes", form))
}

func (c *HTTPClient) UpdateRecipe(ctx context.Context, id string, form url.Values) (models.Result[*models.Recipe], error) {
	return call[*models.Recipe](ctx, c, formRequest(http.MethodPut, "/api/recipes/"+url.PathEscape(id), form))
}

func (c *HTTPClient) DeleteRecipe(ctx context.Context, id string) (models.Result[models.Empty], error) {
	return call[models.Empty](ctx, c, request{method: http.MethodDelete, path: "/api/recipes/" + url.PathEscape(id)})
}

func (c *HTTPClient) ImageUploadURL(ctx context.Context) (models.Result[*models.UploadTarget], error) {
	return call[*models.UploadTarget](ctx, c, request{method: http.MethodPost, path: "/api/images/upload-url"})
}

// Ping checks that the server answers its health probe.
func (c *HTTPClient) Ping(ctx context.Context) error {
	resp, err := c.send(ctx, request{method: http.MethodGet, path: "/healthz"}, "")
	if err != nil {
		return err
	}
	if resp.status != http.StatusOK {
		return fmt.Errorf("%w: health status %d", ErrUnavailable, resp.status)
	}
	return nil
}
