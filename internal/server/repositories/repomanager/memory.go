package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/launcher/internal/dbx"
	"github.com/dmitrijs2005/launcher/internal/server/repositories/accounts"
)

// InMemoryRepositoryManager serves process-local repositories. The db
// arguments are ignored; every call returns the same underlying store.
type InMemoryRepositoryManager struct {
	accounts *accounts.MemoryRepository
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{accounts: accounts.NewMemoryRepository()}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Accounts(dbx.DBTX) accounts.Repository {
	return m.accounts
}
