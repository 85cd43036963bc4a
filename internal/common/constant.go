package common

// AccessTokenHeaderName is the HTTP header that carries the access token on
// outbound requests when the Authorization header is not used.
const AccessTokenHeaderName = "access_token"

// AuthErrorHeaderName tells the client why a request was rejected with 401.
const AuthErrorHeaderName = "X-Auth-Error"

// AuthErrorTokenExpired is the AuthErrorHeaderName value for an expired token.
const AuthErrorTokenExpired = "token_expired"

// MaxRecipeLines caps the number of ingredient lines accepted per recipe.
const MaxRecipeLines = 10
