// Package services contains the launcher's business logic: accounts, app
// authorization and the encrypted directory pipeline. Handlers in httpapi
// stay thin and call into these services.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/dmitrijs2005/launcher/internal/cryptox"
	"github.com/dmitrijs2005/launcher/internal/logging"
	"github.com/dmitrijs2005/launcher/internal/server/models"
	"github.com/dmitrijs2005/launcher/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	maxPinLength    = 16
	maxSecretLength = 256
)

// AccountService registers accounts and tracks the launcher's active
// account. Only one account is logged in at a time; apps are authorized on
// its behalf.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger

	mu     sync.RWMutex
	active *models.Account
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "accounts"),
	}
}

func validCredentials(pin, keyword, password string) bool {
	if len(pin) == 0 || len(pin) > maxPinLength {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(keyword) > 0 && len(keyword) <= maxSecretLength &&
		len(password) > 0 && len(password) <= maxSecretLength
}

// Register creates an account and logs it in.
func (s *AccountService) Register(ctx context.Context, pin, keyword, password string) (*models.Account, error) {
	if !validCredentials(pin, keyword, password) {
		return nil, fmt.Errorf("credentials: %w", common.ErrMalformedPayload)
	}

	salt := common.GenerateRandByteArray(cryptox.SaltSize)
	account := &models.Account{
		ID:       uuid.NewString(),
		Locator:  cryptox.Locator(pin, keyword),
		Salt:     salt,
		Verifier: cryptox.DeriveVerifier([]byte(password), salt),
	}

	repo := s.repomanager.Accounts(s.db)
	created, err := repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateAccount) {
			return nil, common.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	s.setActive(created)
	s.logger.Info(ctx, "account registered", "account_id", created.ID)
	return created, nil
}

// Login checks the credentials and makes the account active. Every failure
// is reported as common.ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, pin, keyword, password string) (*models.Account, error) {
	if !validCredentials(pin, keyword, password) {
		return nil, common.ErrInvalidCredentials
	}

	repo := s.repomanager.Accounts(s.db)
	account, err := repo.GetByLocator(ctx, cryptox.Locator(pin, keyword))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Spend the same work as a real check.
			cryptox.DeriveVerifier([]byte(password), common.GenerateRandByteArray(cryptox.SaltSize))
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading account: %w", err)
	}

	if !cryptox.CheckVerifier(account.Verifier, cryptox.DeriveVerifier([]byte(password), account.Salt)) {
		s.logger.Warn(ctx, "login rejected", "account_id", account.ID)
		return nil, common.ErrInvalidCredentials
	}

	s.setActive(account)
	s.logger.Info(ctx, "account logged in", "account_id", account.ID)
	return account, nil
}

// Logout clears the active account. Issued sessions stay valid until revoked.
func (s *AccountService) Logout() {
	s.setActive(nil)
}

// Active returns the logged in account.
func (s *AccountService) Active() (*models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active, s.active != nil
}

func (s *AccountService) setActive(a *models.Account) {
	s.mu.Lock()
	s.active = a
	s.mu.Unlock()
}
