package models

import (
	"slices"
	"time"
)

// AppInfo identifies the app that asked for authorization.
type AppInfo struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	Version string `json:"version"`
	Vendor  string `json:"vendor"`
}

// AppAuthRequest is one POST /auth after its keys have been decoded.
type AppAuthRequest struct {
	App         AppInfo
	Permissions []string
	PublicKey   *[32]byte
	Nonce       *[24]byte
}

// Session is the state behind an issued bearer token.
type Session struct {
	Token          string    `json:"token"`
	SymmetricKey   [32]byte  `json:"symmetric_key"`
	SymmetricNonce [24]byte  `json:"symmetric_nonce"`
	AccountID      string    `json:"account_id"`
	App            AppInfo   `json:"app"`
	Permissions    []string  `json:"permissions"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at,omitzero"`
}

// Expired reports whether the session has a deadline that passed before now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// HasPermission reports whether p was granted to the session.
func (s *Session) HasPermission(p string) bool {
	return slices.Contains(s.Permissions, p)
}
