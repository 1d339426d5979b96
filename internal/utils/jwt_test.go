package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParseToken(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateToken(7, "admin", 1)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.KeyID != 7 || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Issuer != "hpcadmin" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > time.Hour {
		t.Errorf("expiry = %v", claims.ExpiresAt)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	SetJWTSecret("secret-one")
	token, err := GenerateToken(1, "user", 1)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	SetJWTSecret("secret-two")
	if _, err := ParseToken(token); err == nil {
		t.Error("ParseToken() should reject a token signed with another secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	SetJWTSecret("test-secret")

	now := time.Now()
	claims := Claims{
		KeyID: 1,
		Role:  "user",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseToken(expired); err == nil {
		t.Error("ParseToken() should reject an expired token")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	SetJWTSecret("test-secret")
	if _, err := ParseToken("not.a.token"); err == nil {
		t.Error("ParseToken() should reject malformed input")
	}
}
