package models

import "time"

// Account is a registered launcher user. Pin, keyword and password are never
// stored: Locator is derived from pin+keyword and Verifier from password.
type Account struct {
	ID        string
	Locator   string
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}
