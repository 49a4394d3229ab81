package httpapi

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/launcher/internal/server/models"
)

// credential accepts a JSON string or number, since clients send pins as
// either.
type credential string

func (c *credential) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = credential(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("credential must be a string or number")
	}
	*c = credential(n.String())
	return nil
}

type accountRequest struct {
	Pin      credential `json:"pin"`
	Keyword  credential `json:"keyword"`
	Password credential `json:"password"`
}

type accountResponse struct {
	AccountID string `json:"accountId"`
}

type authRequest struct {
	App         models.AppInfo `json:"app"`
	Permissions []string       `json:"permissions"`
	PublicKey   string         `json:"publicKey"`
	Nonce       string         `json:"nonce"`
}

type authResponse struct {
	Token        string   `json:"token"`
	EncryptedKey string   `json:"encryptedKey"`
	PublicKey    string   `json:"publicKey"`
	Permissions  []string `json:"permissions"`
}

type sessionResponse struct {
	App         models.AppInfo `json:"app"`
	Permissions []string       `json:"permissions"`
}

type decisionRequest struct {
	Allow *bool `json:"allow"`
}
