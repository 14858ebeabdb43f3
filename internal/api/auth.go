package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tealinux/teasite/pkg/models"
)

// Register creates an account.
func (c *Client) Register(ctx context.Context, name, email, password string) (models.User, error) {
	var user models.User
	in := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &user); err != nil {
		return models.User{}, fmt.Errorf("failed to register: %w", err)
	}
	if user.ID == 0 {
		return models.User{}, malformed("user id")
	}
	return user, nil
}

// Login exchanges credentials for a token pair and the user profile.
func (c *Client) Login(ctx context.Context, email, password string) (models.LoginResponse, error) {
	var resp models.LoginResponse
	in := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", in, &resp); err != nil {
		return models.LoginResponse{}, fmt.Errorf("failed to login: %w", err)
	}
	if resp.AccessToken == "" {
		return models.LoginResponse{}, malformed("access_token")
	}
	if resp.User.ID == 0 {
		return models.LoginResponse{}, malformed("user")
	}
	return resp, nil
}

// Logout revokes the refresh token of the authenticated user.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/logout", nil, nil); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// Refresh rotates the token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (models.AuthTokens, error) {
	var tokens models.AuthTokens
	in := map[string]string{"refresh_token": refreshToken}
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", in, &tokens); err != nil {
		return models.AuthTokens{}, fmt.Errorf("failed to refresh token: %w", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		return models.AuthTokens{}, malformed("tokens")
	}
	return tokens, nil
}

// Me returns the profile of the authenticated user.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, &user); err != nil {
		return models.User{}, fmt.Errorf("failed to get profile: %w", err)
	}
	if user.ID == 0 {
		return models.User{}, malformed("user id")
	}
	return user, nil
}
