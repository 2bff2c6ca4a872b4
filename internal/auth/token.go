// Package auth provides the delegated-authorization token source consumed by
// the sheet exporter. There is deliberately no process-wide token cache: the
// TokenSource is the single source of truth and callers pass tokens through
// the request chain explicitly.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/wishgrab/wishgrab/internal/config"
	"github.com/wishgrab/wishgrab/internal/types"
)

// TokenSource yields access tokens for the persistence API.
type TokenSource interface {
	// Token returns a usable access token. interactive indicates the
	// caller may prompt the user; non-interactive failures surface
	// types.ErrAuthRequired.
	Token(ctx context.Context, interactive bool) (string, error)

	// Invalidate discards a token the API rejected, forcing the next
	// Token call to mint a fresh one.
	Invalidate(token string)
}

// StaticTokenSource returns a fixed token. Used in tests and for
// short-lived tokens supplied out of band.
type StaticTokenSource struct {
	AccessToken string
}

// Token implements TokenSource.
func (s *StaticTokenSource) Token(ctx context.Context, interactive bool) (string, error) {
	if s.AccessToken == "" {
		return "", types.ErrAuthRequired
	}
	return s.AccessToken, nil
}

// Invalidate implements TokenSource. A static token cannot be refreshed.
func (s *StaticTokenSource) Invalidate(token string) {}

// RefreshTokenSource exchanges a long-lived refresh token for access tokens
// against the OAuth token endpoint.
type RefreshTokenSource struct {
	client *resty.Client
	cfg    *config.Auth
	logger *slog.Logger

	mu     sync.Mutex
	cached string
}

// NewRefreshTokenSource creates a refresh-token-backed source.
func NewRefreshTokenSource(cfg *config.Config, logger *slog.Logger) *RefreshTokenSource {
	return &RefreshTokenSource{
		client: resty.New().SetBaseURL(cfg.Auth.TokenURL),
		cfg:    &cfg.Auth,
		logger: logger.With("component", "token_source"),
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// Token implements TokenSource.
func (s *RefreshTokenSource) Token(ctx context.Context, interactive bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != "" {
		return s.cached, nil
	}
	if s.cfg.RefreshToken == "" {
		return "", types.ErrAuthRequired
	}

	var tok tokenResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "refresh_token",
			"refresh_token": s.cfg.RefreshToken,
			"client_id":     s.cfg.ClientID,
			"client_secret": s.cfg.ClientSecret,
		}).
		SetResult(&tok).
		Post("")
	if err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	if resp.IsError() {
		s.logger.Warn("token exchange rejected",
			"status", resp.StatusCode(), "interactive", interactive)
		return "", types.ErrAuthRequired
	}
	if tok.AccessToken == "" {
		return "", types.ErrAuthRequired
	}

	s.cached = tok.AccessToken
	s.logger.Debug("access token refreshed", "expires_in", tok.ExpiresIn)
	return tok.AccessToken, nil
}

// Invalidate implements TokenSource.
func (s *RefreshTokenSource) Invalidate(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached == token {
		s.cached = ""
	}
}

// FromConfig picks the token source implied by the configuration.
func FromConfig(cfg *config.Config, logger *slog.Logger) TokenSource {
	if cfg.Auth.StaticToken != "" {
		return &StaticTokenSource{AccessToken: cfg.Auth.StaticToken}
	}
	return NewRefreshTokenSource(cfg, logger)
}
