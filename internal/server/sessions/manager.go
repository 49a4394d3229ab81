package sessions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/dmitrijs2005/launcher/internal/server/models"
)

const (
	// tokenBytes of entropy back every token (hex encoded on the wire).
	tokenBytes = 32
	// issueAttempts bounds retries when a generated token is already taken.
	issueAttempts = 5
)

// Manager issues, resolves and revokes bearer tokens.
type Manager struct {
	store Store
	rand  io.Reader
	ttl   time.Duration
	now   func() time.Time
}

// NewManager returns a Manager drawing tokens from rand. A zero ttl issues
// sessions that live until revoked.
func NewManager(store Store, rand io.Reader, ttl time.Duration) *Manager {
	return &Manager{store: store, rand: rand, ttl: ttl, now: time.Now}
}

// Issue stores a new session and returns it with its token.
func (m *Manager) Issue(ctx context.Context, accountID string, app models.AppInfo, permissions []string,
	key *[32]byte, nonce *[24]byte) (*models.Session, error) {

	now := m.now()
	s := &models.Session{
		SymmetricKey:   *key,
		SymmetricNonce: *nonce,
		AccountID:      accountID,
		App:            app,
		Permissions:    permissions,
		CreatedAt:      now,
	}
	if m.ttl > 0 {
		s.ExpiresAt = now.Add(m.ttl)
	}

	for range issueAttempts {
		token, err := common.ReadRandHexString(m.rand, tokenBytes)
		if err != nil {
			return nil, fmt.Errorf("token: %w", common.ErrCryptoFailure)
		}
		s.Token = token

		err = m.store.Create(ctx, s)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, common.ErrTokenExists) {
			return nil, fmt.Errorf("store session: %w", err)
		}
	}
	return nil, fmt.Errorf("token space exhausted: %w", common.ErrCryptoFailure)
}

// Resolve returns the live session behind token. Unknown, revoked and
// expired tokens all yield common.ErrUnauthorized.
func (m *Manager) Resolve(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, common.ErrUnauthorized
	}

	s, err := m.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	if s.Expired(m.now()) {
		if err := m.store.Delete(ctx, token); err != nil && !errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("drop expired session: %w", err)
		}
		return nil, common.ErrUnauthorized
	}
	return s, nil
}

// Revoke ends the session. Revoking an unknown or already revoked token is
// an error.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return common.ErrUnauthorized
	}
	if err := m.store.Delete(ctx, token); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrUnauthorized
		}
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// Clear drops all sessions.
func (m *Manager) Clear(ctx context.Context) error {
	return m.store.Clear(ctx)
}
