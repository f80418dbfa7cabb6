package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"expense_tracker/internal/models"
)

// mockUserRepo is a lightweight in-test mock for repository.Users.
type mockUserRepo struct {
	CreateFn     func(username, email, hash string) (int, error)
	GetByEmailFn func(email string) (*models.User, error)
	GetByIDFn    func(id int) (*models.User, error)

	createCalls []struct {
		username string
		email    string
		hash     string
	}
}

func (m *mockUserRepo) Create(_ context.Context, username, email, hash string) (int, error) {
	m.createCalls = append(m.createCalls, struct {
		username string
		email    string
		hash     string
	}{username, email, hash})
	return m.CreateFn(username, email, hash)
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return m.GetByEmailFn(email)
}

func (m *mockUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	return m.GetByIDFn(id)
}

func newTestAuthService(repo *mockUserRepo, ttl time.Duration) *AuthService {
	return NewAuthService(repo, AuthConfig{SigningKey: "test-signing-key", TokenTTL: ttl})
}

// --- Register tests ---

func TestAuthService_Register_HashesPasswordAndIssuesToken(t *testing.T) {
	repo := &mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) { return nil, nil },
		CreateFn:     func(username, email, hash string) (int, error) { return 42, nil },
	}
	svc := newTestAuthService(repo, time.Hour)

	token, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cr3t")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	if len(repo.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(repo.createCalls))
	}
	call := repo.createCalls[0]
	if call.username != "alice" || call.email != "alice@example.com" {
		t.Errorf("unexpected Create args: %+v", call)
	}
	if call.hash == "s3cr3t" {
		t.Error("expected hashed password not equal to raw password")
	}
	if err := verifyPassword(call.hash, "s3cr3t"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}

	uid, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken on fresh token: %v", err)
	}
	if uid != 42 {
		t.Fatalf("expected user id 42 in token, got %d", uid)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email}, nil
		},
		CreateFn: func(username, email, hash string) (int, error) {
			t.Fatal("Create should not be called for duplicate email")
			return 0, nil
		},
	}
	svc := newTestAuthService(repo, time.Hour)

	_, err := svc.Register(context.Background(), "bob", "taken@example.com", "pw")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_EmptyPassword(t *testing.T) {
	repo := &mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) { return nil, nil },
		CreateFn: func(username, email, hash string) (int, error) {
			t.Fatal("Create should not be called for empty password")
			return 0, nil
		},
	}
	svc := newTestAuthService(repo, time.Hour)

	if _, err := svc.Register(context.Background(), "bob", "bob@example.com", "   "); err == nil {
		t.Fatal("expected error for blank password")
	}
}

// --- Login tests ---

func TestAuthService_Login(t *testing.T) {
	hash, err := hashPassword("right-password")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	stored := &models.User{ID: 7, Email: "carol@example.com", Username: "carol", PasswordHash: hash}

	tests := []struct {
		name    string
		email   string
		pass    string
		user    *models.User
		wantErr error
	}{
		{name: "success", email: "carol@example.com", pass: "right-password", user: stored},
		{name: "wrong password", email: "carol@example.com", pass: "wrong", user: stored, wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "nobody@example.com", pass: "whatever", user: nil, wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepo{
				GetByEmailFn: func(email string) (*models.User, error) { return tt.user, nil },
			}
			svc := newTestAuthService(repo, time.Hour)

			token, err := svc.Login(context.Background(), tt.email, tt.pass)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			uid, err := svc.ParseToken(token)
			if err != nil {
				t.Fatalf("ParseToken: %v", err)
			}
			if uid != 7 {
				t.Fatalf("expected user id 7, got %d", uid)
			}
		})
	}
}

// --- Password hashing properties ---

func TestHashPassword_SaltedAndVerifiable(t *testing.T) {
	h1, err := hashPassword("password-P")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	h2, err := hashPassword("password-P")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	if h1 == h2 {
		t.Error("expected distinct hashes for the same password (salted)")
	}
	if err := verifyPassword(h1, "password-P"); err != nil {
		t.Errorf("verify with correct password failed: %v", err)
	}
	if err := verifyPassword(h1, "password-Q"); err == nil {
		t.Error("verify with wrong password unexpectedly succeeded")
	}
	// Malformed hash must fail verification, never panic.
	if err := verifyPassword("not-a-bcrypt-hash", "password-P"); err == nil {
		t.Error("verify with malformed hash unexpectedly succeeded")
	}
}

// --- Token tests ---

func TestAuthService_ParseToken_Tampered(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newTestAuthService(repo, time.Hour)

	token, err := svc.issueToken(11)
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}

	// Flip one character in the payload segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := svc.ParseToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newTestAuthService(repo, -time.Minute)

	token, err := svc.issueToken(11)
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}
	if _, err := svc.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestAuthService_ParseToken_WrongKey(t *testing.T) {
	issuer := NewAuthService(&mockUserRepo{}, AuthConfig{SigningKey: "key-one", TokenTTL: time.Hour})
	verifier := NewAuthService(&mockUserRepo{}, AuthConfig{SigningKey: "key-two", TokenTTL: time.Hour})

	token, err := issuer.issueToken(3)
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}
	if _, err := verifier.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong key, got %v", err)
	}
}

func TestAuthService_ParseToken_Garbage(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{}, time.Hour)
	for _, tok := range []string{"", "abc", "a.b.c"} {
		if _, err := svc.ParseToken(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("token %q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

// --- UserByID tests ---

func TestAuthService_UserByID(t *testing.T) {
	stored := &models.User{ID: 5, Email: "dan@example.com", Username: "dan"}
	repo := &mockUserRepo{
		GetByIDFn: func(id int) (*models.User, error) {
			if id == 5 {
				return stored, nil
			}
			return nil, nil
		},
	}
	svc := newTestAuthService(repo, time.Hour)

	u, err := svc.UserByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email != "dan@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := svc.UserByID(context.Background(), 99); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
