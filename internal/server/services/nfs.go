package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/dmitrijs2005/launcher/internal/cryptox"
	"github.com/dmitrijs2005/launcher/internal/logging"
	"github.com/dmitrijs2005/launcher/internal/server/models"
	"github.com/dmitrijs2005/launcher/internal/server/storage"
)

var payloadFields = []string{"dirPath", "isPrivate", "userMetadata", "isVersioned", "isPathShared"}

// NFSService runs directory calls for an authorized session: payloads are
// opened with the session key, checked, scoped to the app and handed to the
// directory store.
type NFSService struct {
	store  storage.DirectoryStore
	logger logging.Logger
	now    func() time.Time
}

func NewNFSService(store storage.DirectoryStore, logger logging.Logger) *NFSService {
	return &NFSService{store: store, logger: logger.With("module", "nfs"), now: time.Now}
}

// OpenPayload decrypts a base64 request body with the session key and
// decodes the directory payload inside.
func OpenPayload(s *models.Session, body []byte) (*models.DirectoryPayload, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(body)))
	if err != nil {
		return nil, fmt.Errorf("body encoding: %w", common.ErrDecryptionFailure)
	}

	plaintext, err := cryptox.Open(&s.SymmetricKey, &s.SymmetricNonce, ciphertext)
	if err != nil {
		return nil, err
	}
	return decodePayload(plaintext)
}

// decodePayload requires every field to be present with its JSON type and
// rejects unknown ones.
func decodePayload(data []byte) (*models.DirectoryPayload, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("payload: %w", common.ErrMalformedPayload)
	}
	for _, f := range payloadFields {
		v, ok := raw[f]
		if !ok || bytes.Equal(v, []byte("null")) {
			return nil, fmt.Errorf("payload field %s missing: %w", f, common.ErrMalformedPayload)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	p := new(models.DirectoryPayload)
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("payload: %w", common.ErrMalformedPayload)
	}
	if p.DirPath == "" {
		return nil, fmt.Errorf("empty dirPath: %w", common.ErrMalformedPayload)
	}
	return p, nil
}

func (n *NFSService) scope(s *models.Session, shared bool) (string, error) {
	if shared && !s.HasPermission(common.PermissionSafeDriveAccess) {
		return "", common.ErrForbidden
	}
	return storage.Scope(s.App.ID, shared), nil
}

// CreateDirectory handles an encrypted create request body.
func (n *NFSService) CreateDirectory(ctx context.Context, s *models.Session, body []byte) error {
	p, err := OpenPayload(s, body)
	if err != nil {
		return err
	}

	dirPath, err := storage.CleanPath(p.DirPath)
	if err != nil {
		return err
	}
	scope, err := n.scope(s, p.IsPathShared)
	if err != nil {
		return err
	}

	err = n.store.CreateDirectory(ctx, scope, &models.Directory{
		Path:         dirPath,
		IsPrivate:    p.IsPrivate,
		IsVersioned:  p.IsVersioned,
		IsPathShared: p.IsPathShared,
		UserMetadata: p.UserMetadata,
		CreatedAt:    n.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	n.logger.Debug(ctx, "directory created", "app_id", s.App.ID, "shared", p.IsPathShared)
	return nil
}

// GetDirectory returns the directory sealed with the session key, base64
// encoded.
func (n *NFSService) GetDirectory(ctx context.Context, s *models.Session, rawPath string, shared bool) (string, error) {
	dirPath, err := storage.CleanPath(rawPath)
	if err != nil {
		return "", err
	}
	scope, err := n.scope(s, shared)
	if err != nil {
		return "", err
	}

	d, err := n.store.GetDirectory(ctx, scope, dirPath)
	if err != nil {
		return "", fmt.Errorf("get directory: %w", err)
	}
	if d.SubDirectories == nil {
		d.SubDirectories = []string{}
	}

	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encode directory: %w", err)
	}
	return base64.StdEncoding.EncodeToString(cryptox.Seal(&s.SymmetricKey, &s.SymmetricNonce, data)), nil
}

func (n *NFSService) DeleteDirectory(ctx context.Context, s *models.Session, rawPath string, shared bool) error {
	dirPath, err := storage.CleanPath(rawPath)
	if err != nil {
		return err
	}
	scope, err := n.scope(s, shared)
	if err != nil {
		return err
	}

	if err := n.store.DeleteDirectory(ctx, scope, dirPath); err != nil {
		return fmt.Errorf("delete directory: %w", err)
	}
	n.logger.Debug(ctx, "directory deleted", "app_id", s.App.ID, "shared", shared)
	return nil
}
