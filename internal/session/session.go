// Package session keeps the community login between CLI invocations.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tealinux/teasite/pkg/models"
)

// ErrNoSession is returned by a Store that holds no session.
var ErrNoSession = errors.New("no session")

// Session is a stored login.
type Session struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

// Claims is the subset of access token claims the backend issues.
type Claims struct {
	UserID    uint
	Role      string
	ExpiresAt time.Time
}

// Authenticated reports whether the session carries an access token.
func (s *Session) Authenticated() bool {
	return s != nil && s.AccessToken != ""
}

// Claims decodes the access token without verifying its signature. The
// signing secret lives on the backend; the client only reads expiry and role.
func (s *Session) Claims() (Claims, error) {
	if !s.Authenticated() {
		return Claims{}, ErrNoSession
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, claims); err != nil {
		return Claims{}, fmt.Errorf("failed to decode access token: %w", err)
	}

	var c Claims
	if id, ok := claims["id"].(float64); ok {
		c.UserID = uint(id)
	}
	if role, ok := claims["role"].(string); ok {
		c.Role = role
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return Claims{}, fmt.Errorf("failed to read expiry: %w", err)
	}
	if exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}

// Expired reports whether the access token has expired at now. Tokens
// without an expiry never expire; undecodable tokens count as expired.
func (s *Session) Expired(now time.Time) bool {
	c, err := s.Claims()
	if err != nil {
		return true
	}
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Store persists a session.
type Store interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
}
