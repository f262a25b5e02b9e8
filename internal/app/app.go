// Package app wires the per-process dependencies every surface shares.
package app

import (
	"fmt"
	"log/slog"

	"github.com/starford/folio/internal/auth"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/query"
	"github.com/starford/folio/internal/state"
)

// Context carries the repository, session auth, state containers and
// logger. It is built once at startup and passed explicitly.
type Context struct {
	Repo   query.Repository
	Auth   *auth.Service
	State  *state.Root
	Logger *slog.Logger
}

// New builds a Context. The auth state starts from the stored token.
func New(repo query.Repository, authSvc *auth.Service, logger *slog.Logger) (*Context, error) {
	if logger == nil {
		logger = slog.Default()
	}
	token, err := authSvc.Token()
	if err != nil {
		return nil, fmt.Errorf("app: read token: %w", err)
	}
	return &Context{
		Repo:   repo,
		Auth:   authSvc,
		State:  state.NewRoot(token),
		Logger: logger,
	}, nil
}

// Login stores token and records the signed-in user.
func (c *Context) Login(user models.User, token string) error {
	if err := c.Auth.SetToken(token); err != nil {
		return fmt.Errorf("app: store token: %w", err)
	}
	c.State.Auth.Dispatch(state.LoginSuccess{User: user, Token: token})
	return nil
}

// Logout forgets the token and resets the auth state.
func (c *Context) Logout() error {
	c.State.Auth.Dispatch(state.Logout{})
	if err := c.Auth.Clear(); err != nil {
		return fmt.Errorf("app: clear token: %w", err)
	}
	return nil
}

// Unauthorized is the hook for a rejected token: the token is already gone,
// so only the state is reset and the redirect target logged.
func (c *Context) Unauthorized(loginPath string) {
	c.State.Auth.Dispatch(state.Logout{})
	c.Logger.Warn("session expired", slog.String("redirect", loginPath))
}
