package models

// User is the public view of an account. The password hash never leaves the
// server.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthStatus is the client-side authentication state.
type AuthStatus string

const (
	AuthLoading         AuthStatus = "loading"
	AuthAuthenticated   AuthStatus = "authenticated"
	AuthUnauthenticated AuthStatus = "unauthenticated"
)

// Session describes who, if anyone, the caller is.
type Session struct {
	Status AuthStatus `json:"status"`
	User   *User      `json:"user,omitempty"`
}

// AuthResult is returned by a successful sign-in or token refresh.
type AuthResult struct {
	User         *User  `json:"user,omitempty"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UploadTarget is a presigned location for a recipe image.
type UploadTarget struct {
	UploadURL string `json:"uploadUrl"`
	ObjectURL string `json:"objectUrl"`
}
