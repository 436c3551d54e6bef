package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"book_catalog/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	testSecret = "test-signing-secret"
	testTTL    = 30 * time.Minute
)

func newTestAuthService(users *mockUserRepo) *AuthService {
	if users == nil {
		users = &mockUserRepo{}
	}
	return NewAuthService(users, testSecret, testTTL)
}

// --- Login tests ---

func TestAuthService_Login_Success(t *testing.T) {
	hash, err := hashPassword("letmein")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	user := &models.User{ID: 7, Username: "diana", Email: "d@example.com", PasswordHash: hash}

	mock := &mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			if email != "d@example.com" {
				t.Fatalf("expected email 'd@example.com', got %q", email)
			}
			return user, nil
		},
	}
	svc := newTestAuthService(mock)

	token, err := svc.Login(context.Background(), "d@example.com", "letmein")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	// Validate the token parses and returns the correct user id.
	uid, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if uid != 7 {
		t.Fatalf("expected user id 7 from token, got %d", uid)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{}) // GetByEmail returns (nil, nil)

	_, err := svc.Login(context.Background(), "ghost@example.com", "pw")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	correctHash, err := hashPassword("correct")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	mock := &mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email, PasswordHash: correctHash}, nil
		},
	}
	svc := newTestAuthService(mock)

	_, err = svc.Login(context.Background(), "eve@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		// Same error as unknown email: the response must not leak which part failed.
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestAuthService_Login_RepoError(t *testing.T) {
	mock := &mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			return nil, errors.New("query failed")
		},
	}
	svc := newTestAuthService(mock)

	_, err := svc.Login(context.Background(), "john@example.com", "pw")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected raw repo error, got: %v", err)
	}
}

// --- ParseToken tests ---

func TestAuthService_ParseToken_Success(t *testing.T) {
	svc := newTestAuthService(nil)
	token, err := svc.issueToken(99)
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	uid, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if uid != 99 {
		t.Fatalf("expected user id 99, got %d", uid)
	}
}

func TestAuthService_ParseToken_Malformed(t *testing.T) {
	svc := newTestAuthService(nil)
	if _, err := svc.ParseToken("not-a-jwt"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}

func TestAuthService_ParseToken_InvalidSignature(t *testing.T) {
	svc := newTestAuthService(nil)

	// Create a token signed with a different key.
	now := time.Now()
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: 5,
	})
	badToken, err := tk.SignedString([]byte("different-key"))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err := svc.ParseToken(badToken); err == nil {
		t.Fatalf("expected signature verification error")
	}
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	svc := newTestAuthService(nil)

	// Issue an already expired token using the same signing key.
	past := time.Now().Add(-2 * time.Hour)
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past),
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Minute)),
		},
		UserID: 11,
	})
	expiredToken, err := tk.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err := svc.ParseToken(expiredToken); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestAuthService_ParseToken_ZeroTTLExpiresImmediately(t *testing.T) {
	// Expiry is exclusive: with TTL=0 the token is already past its instant.
	svc := NewAuthService(&mockUserRepo{}, testSecret, 0)
	token, err := svc.issueToken(3)
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}
	if _, err := svc.ParseToken(token); err == nil {
		t.Fatalf("expected TTL=0 token to be rejected")
	}
}

func TestAuthService_ParseToken_MissingIdentityClaim(t *testing.T) {
	svc := newTestAuthService(nil)

	now := time.Now()
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		// UserID left zero
	})
	token, err := tk.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err := svc.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing identity claim, got: %v", err)
	}
}

func TestAuthService_ParseToken_UnexpectedAlg(t *testing.T) {
	svc := newTestAuthService(nil)

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey failed: %v", err)
	}

	now := time.Now()
	tk := jwt.NewWithClaims(jwt.SigningMethodRS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: 12,
	})
	tokenStr, err := tk.SignedString(privateKey)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err := svc.ParseToken(tokenStr); err == nil {
		t.Fatalf("expected error due to unexpected signing method")
	}
}

// --- ResolveUser tests ---

func TestAuthService_ResolveUser_Success(t *testing.T) {
	user := &models.User{ID: 42, Username: "alice"}
	mock := &mockUserRepo{
		GetByIDFn: func(id int) (*models.User, error) {
			if id != 42 {
				t.Fatalf("expected lookup of id 42, got %d", id)
			}
			return user, nil
		},
	}
	svc := newTestAuthService(mock)

	token, err := svc.issueToken(42)
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	got, err := svc.ResolveUser(context.Background(), token)
	if err != nil {
		t.Fatalf("ResolveUser returned error: %v", err)
	}
	if got.ID != 42 {
		t.Fatalf("expected user 42, got %+v", got)
	}
}

func TestAuthService_ResolveUser_InvalidToken(t *testing.T) {
	svc := newTestAuthService(nil)
	_, err := svc.ResolveUser(context.Background(), "garbage")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got: %v", err)
	}
}

func TestAuthService_ResolveUser_DeletedUserFailsClosed(t *testing.T) {
	// GetByID returns (nil, nil): valid token, user deleted after issuance.
	svc := newTestAuthService(&mockUserRepo{})
	token, err := svc.issueToken(7)
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	_, err = svc.ResolveUser(context.Background(), token)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for deleted user, got: %v", err)
	}
}

// --- password helper tests ---

func TestHashPassword_EmptyRejected(t *testing.T) {
	if _, err := hashPassword("   "); err == nil {
		t.Fatalf("expected error for blank password")
	}
}

func TestHashPassword_RoundTripAndSalting(t *testing.T) {
	h1, err := hashPassword("s3cr3t")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	h2, err := hashPassword("s3cr3t")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same input must differ (salt)")
	}
	if err := verifyPassword(h1, "s3cr3t"); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
	if err := verifyPassword(h1, "wrong"); err == nil {
		t.Fatalf("expected verification failure for wrong password")
	}
}
