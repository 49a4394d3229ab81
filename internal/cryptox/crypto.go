// Package cryptox holds the launcher's cryptographic primitives: the
// public-key handshake that hands an app its session key, the symmetric
// cipher used for every payload under that session, and credential
// derivation for accounts.
//
// Public-key and symmetric sealing use NaCl box and secretbox so that
// libsodium clients (crypto_box_easy / crypto_secretbox_easy) interoperate
// without framing changes.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/dmitrijs2005/launcher/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/box"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	// KeySize is the length of box public/private keys and secretbox keys.
	KeySize = 32
	// NonceSize is the nonce length of both box and secretbox.
	NonceSize = 24
	// SaltSize is the per-account salt used for the password verifier.
	SaltSize = 16
)

// KeyExchange negotiates session keys. All randomness comes from its reader
// so entropy failures surface as common.ErrCryptoFailure.
type KeyExchange struct {
	rand io.Reader
}

// NewKeyExchange returns an engine reading from r, or from crypto/rand when
// r is nil.
func NewKeyExchange(r io.Reader) *KeyExchange {
	if r == nil {
		r = rand.Reader
	}
	return &KeyExchange{rand: r}
}

// Rand exposes the entropy source so token generation shares it.
func (k *KeyExchange) Rand() io.Reader {
	return k.rand
}

// NewSessionKeys draws a fresh symmetric key and nonce for one session.
func (k *KeyExchange) NewSessionKeys() (*[KeySize]byte, *[NonceSize]byte, error) {
	key := new([KeySize]byte)
	nonce := new([NonceSize]byte)
	if _, err := io.ReadFull(k.rand, key[:]); err != nil {
		return nil, nil, fmt.Errorf("session key: %w", common.ErrCryptoFailure)
	}
	if _, err := io.ReadFull(k.rand, nonce[:]); err != nil {
		return nil, nil, fmt.Errorf("session nonce: %w", common.ErrCryptoFailure)
	}
	return key, nonce, nil
}

// SealFor encrypts plaintext to the client's public key under a server
// keypair generated for this call only. The client opens the result with its
// private key and the returned server public key.
func (k *KeyExchange) SealFor(clientPub *[KeySize]byte, clientNonce *[NonceSize]byte, plaintext []byte) ([]byte, *[KeySize]byte, error) {
	serverPub, serverPriv, err := box.GenerateKey(k.rand)
	if err != nil {
		return nil, nil, fmt.Errorf("server keypair: %w", common.ErrCryptoFailure)
	}
	defer common.WipeByteArray(serverPriv[:])

	sealed := box.Seal(nil, plaintext, clientNonce, clientPub, serverPriv)
	return sealed, serverPub, nil
}

// Seal encrypts plaintext with a session key and nonce.
func Seal(key *[KeySize]byte, nonce *[NonceSize]byte, plaintext []byte) []byte {
	return secretbox.Seal(nil, plaintext, nonce, key)
}

// Open authenticates and decrypts ciphertext. Any tampering, or the wrong
// key, yields common.ErrDecryptionFailure and no plaintext.
func Open(key *[KeySize]byte, nonce *[NonceSize]byte, ciphertext []byte) ([]byte, error) {
	plaintext, ok := secretbox.Open(nil, ciphertext, nonce, key)
	if !ok {
		return nil, common.ErrDecryptionFailure
	}
	return plaintext, nil
}

// DecodeKey parses a base64 (std encoding) 32-byte key.
func DecodeKey(s string) (*[KeySize]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil || len(b) != KeySize {
		return nil, fmt.Errorf("public key: %w", common.ErrMalformedPayload)
	}
	key := new([KeySize]byte)
	copy(key[:], b)
	return key, nil
}

// DecodeNonce parses a base64 (std encoding) 24-byte nonce.
func DecodeNonce(s string) (*[NonceSize]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil || len(b) != NonceSize {
		return nil, fmt.Errorf("nonce: %w", common.ErrMalformedPayload)
	}
	nonce := new([NonceSize]byte)
	copy(nonce[:], b)
	return nonce, nil
}

// Locator derives the deterministic lookup key of an account from its pin
// and keyword. The password never takes part, so it can be verified
// separately against a salted verifier.
func Locator(pin, keyword string) string {
	h := sha256.New()
	fmt.Fprintf(h, "pin:%d:%s|keyword:%d:%s", len(pin), pin, len(keyword), keyword)
	return hex.EncodeToString(h.Sum(nil))
}

// DeriveVerifier stretches the password with Argon2id.
func DeriveVerifier(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// CheckVerifier compares in constant time.
func CheckVerifier(verifier, candidate []byte) bool {
	return subtle.ConstantTimeCompare(verifier, candidate) == 1
}
