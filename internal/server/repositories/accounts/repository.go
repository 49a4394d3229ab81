// Package accounts stores launcher accounts keyed by their locator.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/launcher/internal/server/models"
)

// Repository persists accounts.
//
// Create returns common.ErrDuplicateAccount when the locator is taken;
// GetByLocator returns common.ErrorNotFound when nothing matches.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByLocator(ctx context.Context, locator string) (*models.Account, error)
}
