// Package storage is the directory backend the NFS endpoints delegate to.
//
// Directories live in scopes: one per app for private paths and a single
// drive scope for shared ones. Paths inside a scope are slash separated
// without leading or trailing slashes. A directory can only be created when
// its parent exists; top-level directories need no parent.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/dmitrijs2005/launcher/internal/server/models"
)

const driveScope = "drive"

// DirectoryStore is implemented by every backend.
//
//   - CreateDirectory fails with common.ErrAlreadyExists for an existing
//     path and common.ErrorNotFound for a missing parent.
//   - GetDirectory and DeleteDirectory fail with common.ErrorNotFound.
//   - DeleteDirectory removes the whole subtree.
type DirectoryStore interface {
	CreateDirectory(ctx context.Context, scope string, dir *models.Directory) error
	GetDirectory(ctx context.Context, scope, dirPath string) (*models.Directory, error)
	DeleteDirectory(ctx context.Context, scope, dirPath string) error
}

// Scope returns the scope an app's request lands in. The app ID is escaped
// into a single key segment so no two apps share a prefix.
func Scope(appID string, shared bool) string {
	if shared {
		return driveScope
	}
	seg := url.PathEscape(appID)
	if strings.Trim(seg, ".") == "" {
		seg = strings.ReplaceAll(seg, ".", "%2E")
	}
	return "apps/" + seg
}

// CleanPath normalises a client supplied path. Empty paths and paths that
// climb out of the scope are malformed.
func CleanPath(p string) (string, error) {
	p = strings.Trim(p, "/")
	if p == "" {
		return "", fmt.Errorf("empty path: %w", common.ErrMalformedPayload)
	}
	for _, part := range strings.Split(p, "/") {
		if part == ".." || part == "." {
			return "", fmt.Errorf("relative path element: %w", common.ErrMalformedPayload)
		}
	}
	return path.Clean(p), nil
}

// parent returns the parent path, or "" for top-level directories.
func parent(p string) string {
	dir := path.Dir(p)
	if dir == "." {
		return ""
	}
	return dir
}
