package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/dmitrijs2005/launcher/internal/dbx"
	"github.com/dmitrijs2005/launcher/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts account. The unique locator makes concurrent registrations
// of the same pin+keyword race-free: the loser gets no row back.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query := `
		INSERT INTO accounts (id, locator, salt, verifier)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (locator) DO NOTHING
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, account.ID, account.Locator, account.Salt, account.Verifier).
		Scan(&account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}

// GetByLocator loads the account stored under locator.
func (r *PostgresRepository) GetByLocator(ctx context.Context, locator string) (*models.Account, error) {
	query := `
		SELECT id, locator, salt, verifier, created_at
		FROM accounts
		WHERE locator = $1
	`
	a := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, locator).Scan(&a.ID, &a.Locator, &a.Salt, &a.Verifier, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}
