package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/dmitrijs2005/launcher/internal/cryptox"
	"github.com/dmitrijs2005/launcher/internal/logging"
	"github.com/dmitrijs2005/launcher/internal/server/approval"
	"github.com/dmitrijs2005/launcher/internal/server/models"
	"github.com/dmitrijs2005/launcher/internal/server/sessions"
)

var knownPermissions = map[string]struct{}{
	common.PermissionSafeDriveAccess: {},
}

// ActiveAccount reports the account apps are authorized for.
type ActiveAccount interface {
	Active() (*models.Account, bool)
}

// AuthorizeResult is returned to the app. EncryptedKey is the session key
// followed by the session nonce, boxed to the app's public key; PublicKey
// is the server's one-off box key needed to open it.
type AuthorizeResult struct {
	Token        string
	EncryptedKey string
	PublicKey    string
	Permissions  []string
}

// AuthService runs app authorization: approval, key exchange and token
// issue.
type AuthService struct {
	accounts ActiveAccount
	gate     *approval.Gate
	kx       *cryptox.KeyExchange
	sessions *sessions.Manager
	logger   logging.Logger
}

func NewAuthService(accounts ActiveAccount, gate *approval.Gate, kx *cryptox.KeyExchange,
	sm *sessions.Manager, logger logging.Logger) *AuthService {
	return &AuthService{
		accounts: accounts,
		gate:     gate,
		kx:       kx,
		sessions: sm,
		logger:   logger.With("module", "auth"),
	}
}

func validateAuthRequest(req *models.AppAuthRequest) error {
	if req.App.Name == "" || req.App.ID == "" || req.App.Vendor == "" || req.App.Version == "" {
		return fmt.Errorf("app info: %w", common.ErrMalformedPayload)
	}
	if strings.ContainsAny(req.App.ID, `/\`) || strings.Trim(req.App.ID, ".") == "" {
		return fmt.Errorf("app id %q: %w", req.App.ID, common.ErrMalformedPayload)
	}
	if req.PublicKey == nil || req.Nonce == nil {
		return fmt.Errorf("key material: %w", common.ErrMalformedPayload)
	}
	for _, p := range req.Permissions {
		if _, ok := knownPermissions[p]; !ok {
			return fmt.Errorf("permission %q: %w", p, common.ErrMalformedPayload)
		}
	}
	return nil
}

// Authorize asks the approval gate about the app and, once approved, hands
// it a fresh session key and a bearer token.
func (s *AuthService) Authorize(ctx context.Context, req *models.AppAuthRequest) (*AuthorizeResult, error) {
	if err := validateAuthRequest(req); err != nil {
		return nil, err
	}

	account, ok := s.accounts.Active()
	if !ok {
		return nil, common.ErrNotLoggedIn
	}

	decision, err := s.gate.Submit(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("approval: %w", err)
	}
	if decision != approval.Approved {
		s.logger.Info(ctx, "app denied", "app_id", req.App.ID)
		return nil, common.ErrAuthDenied
	}

	key, nonce, err := s.kx.NewSessionKeys()
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(key[:])
	defer common.WipeByteArray(nonce[:])

	plaintext := make([]byte, 0, cryptox.KeySize+cryptox.NonceSize)
	plaintext = append(plaintext, key[:]...)
	plaintext = append(plaintext, nonce[:]...)
	sealed, serverPub, err := s.kx.SealFor(req.PublicKey, req.Nonce, plaintext)
	common.WipeByteArray(plaintext)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Issue(ctx, account.ID, req.App, req.Permissions, key, nonce)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "app authorized", "app_id", req.App.ID, "account_id", account.ID)
	return &AuthorizeResult{
		Token:        session.Token,
		EncryptedKey: base64.StdEncoding.EncodeToString(sealed),
		PublicKey:    base64.StdEncoding.EncodeToString(serverPub[:]),
		Permissions:  session.Permissions,
	}, nil
}

// Session resolves a bearer token.
func (s *AuthService) Session(ctx context.Context, token string) (*models.Session, error) {
	return s.sessions.Resolve(ctx, token)
}

// Revoke ends the session behind token.
func (s *AuthService) Revoke(ctx context.Context, token string) error {
	if err := s.sessions.Revoke(ctx, token); err != nil {
		return err
	}
	s.logger.Info(ctx, "session revoked")
	return nil
}
