package models

// User is the authenticated account as reported by the community backend.
type User struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

// AuthTokens holds the access/refresh token pair.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// Tokens returns the token pair of the login response.
func (r LoginResponse) Tokens() AuthTokens {
	return AuthTokens{AccessToken: r.AccessToken, RefreshToken: r.RefreshToken}
}
