package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	pwd := "s3cr3t-password"
	hash, err := HashPassword(pwd)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if err := CheckPassword(hash, pwd); err != nil {
		t.Fatalf("CheckPassword failed when password should match: %v", err)
	}

	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("CheckPassword succeeded when it should have failed")
	}
}

func TestPassphrase(t *testing.T) {
	p, err := NewPassphrase("letmein")
	if err != nil {
		t.Fatalf("NewPassphrase failed: %v", err)
	}
	if err := p.Check("letmein"); err != nil {
		t.Fatalf("Check rejected the right password: %v", err)
	}
	if err := p.Check("LETMEIN"); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}

	fromHash, err := NewPassphraseFromHash(p.hash)
	if err != nil {
		t.Fatalf("NewPassphraseFromHash failed: %v", err)
	}
	if err := fromHash.Check("letmein"); err != nil {
		t.Fatalf("hash-built passphrase rejected password: %v", err)
	}
	if _, err := NewPassphraseFromHash("plaintext"); err == nil {
		t.Fatal("expected error for a non-bcrypt hash")
	}
}

func TestJWTManager_GenerateAndVerify(t *testing.T) {
	m := NewJWTManager("test-secret", 5*time.Minute)

	token, expiresAt, err := m.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if time.Until(expiresAt) > 5*time.Minute || time.Until(expiresAt) < 4*time.Minute {
		t.Fatalf("unexpected expiry %v", expiresAt)
	}

	claims, err := m.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if !claims.Admin {
		t.Fatal("token should carry the admin claim")
	}
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("test-secret", 24*time.Hour)
	issued := time.Now().Add(-25 * time.Hour)
	m.now = func() time.Time { return issued }

	token, _, err := m.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	m.now = time.Now
	if _, err := m.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestJWTManager_WrongSecretAndGarbage(t *testing.T) {
	token, _, err := NewJWTManager("one", time.Hour).GenerateToken()
	if err != nil {
		t.Fatal(err)
	}
	other := NewJWTManager("two", time.Hour)
	if _, err := other.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("token signed by another secret accepted: %v", err)
	}
	if _, err := other.VerifyToken("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage accepted: %v", err)
	}
	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))
	if _, err := NewJWTManager("one", time.Hour).VerifyToken(tampered); err == nil {
		t.Fatal("tampered token accepted")
	}
}

func TestJWTManager_Rotation(t *testing.T) {
	// create a manager with two keys and active kid "k2"
	keys := map[string]string{"k1": "secret-one", "k2": "secret-two"}
	m := NewJWTManagerFromKeys(keys, "k2", 5*time.Minute)

	tkn2, _, err := m.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken (k2) failed: %v", err)
	}
	if _, err := m.VerifyToken(tkn2); err != nil {
		t.Fatalf("VerifyToken (k2) failed: %v", err)
	}

	// a token signed while k1 was active must still verify after rotation
	mOld := NewJWTManagerFromKeys(keys, "k1", 5*time.Minute)
	tkn1, _, err := mOld.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken (k1) failed: %v", err)
	}
	if _, err := m.VerifyToken(tkn1); err != nil {
		t.Fatalf("VerifyToken (old k1) failed: %v", err)
	}

	// once k1 is retired its tokens are rejected
	retired := NewJWTManagerFromKeys(map[string]string{"k2": "secret-two"}, "k2", 5*time.Minute)
	if _, err := retired.VerifyToken(tkn1); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("token from retired key accepted: %v", err)
	}
}
