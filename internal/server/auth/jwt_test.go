package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateOperatorToken("alice", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateOperatorToken error: %v", err)
	}

	got, err := ParseOperatorToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseOperatorToken error: %v", err)
	}
	if got != "alice" {
		t.Fatalf("operator mismatch: got %q want %q", got, "alice")
	}
}

func TestParseOperatorToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateOperatorToken("bob", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateOperatorToken error: %v", err)
	}

	_, err = ParseOperatorToken(tok, secret)
	if !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestParseOperatorToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateOperatorToken("carol", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateOperatorToken error: %v", err)
	}

	if _, err := ParseOperatorToken(tok, []byte("wrong-secret")); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestParseOperatorToken_Garbage(t *testing.T) {
	t.Parallel()

	if _, err := ParseOperatorToken("not-a-jwt", []byte("s")); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestParseOperatorToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    operatorIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Operator: "mallory",
	})
	s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseOperatorToken(s, []byte("s")); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestParseOperatorToken_MissingOperator(t *testing.T) {
	t.Parallel()

	secret := []byte("s")
	tok, err := GenerateOperatorToken("", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateOperatorToken error: %v", err)
	}
	if _, err := ParseOperatorToken(tok, secret); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
