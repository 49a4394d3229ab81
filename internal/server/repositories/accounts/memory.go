package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/dmitrijs2005/launcher/internal/server/models"
)

// MemoryRepository keeps accounts for the lifetime of the process.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{accounts: make(map[string]models.Account)}
}

func (r *MemoryRepository) Create(_ context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.Locator]; ok {
		return nil, common.ErrDuplicateAccount
	}
	account.CreatedAt = time.Now()
	r.accounts[account.Locator] = *account
	return account, nil
}

func (r *MemoryRepository) GetByLocator(_ context.Context, locator string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[locator]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}
