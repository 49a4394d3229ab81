// Package sessions is the token manager: it issues bearer tokens, maps them
// to sessions and revokes them. Sessions live in a Store, either process
// memory or Redis.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/launcher/internal/server/models"
)

// Store holds sessions by token. Implementations must be safe for
// concurrent use.
//
//   - Create fails with common.ErrTokenExists if the token is already stored.
//   - Get and Delete fail with common.ErrorNotFound for unknown tokens.
type Store interface {
	Create(ctx context.Context, s *models.Session) error
	Get(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
