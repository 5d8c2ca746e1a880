package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"garminexport/pkg/connect"
)

// Store is the persistence surface the authenticator needs.
type Store interface {
	Load() (*connect.Session, error)
	Save(*connect.Session) error
}

// Client is the connect surface the authenticator needs.
type Client interface {
	SetSession(*connect.Session)
	Verify(ctx context.Context) error
	Login(ctx context.Context, email, password string) (*connect.Session, error)
}

// Authenticator restores a stored session when the service still accepts
// it and falls back to exactly one fresh login otherwise.
type Authenticator struct {
	store  Store
	client Client
	logger zerolog.Logger
}

// New creates an authenticator.
func New(store Store, client Client) (*Authenticator, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if client == nil {
		return nil, fmt.Errorf("connect client is required")
	}

	return &Authenticator{
		store:  store,
		client: client,
		logger: log.With().Str("component", "authenticator").Logger(),
	}, nil
}

// Authenticate returns a session the service accepts, preferring the
// stored one. Credentials are only touched when restore fails, and a
// fresh login happens at most once per call. A failed login is fatal;
// a failed session save is not.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*connect.Session, error) {
	session, err := a.store.Load()
	if err == nil {
		a.client.SetSession(session)
		verr := a.client.Verify(ctx)
		if verr == nil {
			a.logger.Info().Msg("Session restored")
			return session, nil
		}
		a.logger.Info().
			Str("error_class", string(connect.Classify(verr))).
			Msg("Stored session rejected, performing fresh login")
	} else {
		a.logger.Debug().Msg("No stored session, performing fresh login")
	}

	fresh, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := a.store.Save(fresh); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to persist session")
	} else {
		a.logger.Info().Msg("Fresh session persisted")
	}

	return fresh, nil
}
