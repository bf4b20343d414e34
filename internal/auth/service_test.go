package auth

import (
	"context"
	"errors"
	"testing"
)

type inMemoryUserRepository struct {
	users map[string]*User
}

func newInMemoryUserRepository() *inMemoryUserRepository {
	return &inMemoryUserRepository{users: make(map[string]*User)}
}

func (r *inMemoryUserRepository) Save(ctx context.Context, user *User) error {
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	r.users[user.Email] = user
	return nil
}

func (r *inMemoryUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.users[email], nil
}

func (r *inMemoryUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *inMemoryUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func newTestService(t *testing.T) (*Service, *inMemoryUserRepository) {
	t.Helper()
	tokens, err := NewTokenManager("test-secret")
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}
	repo := newInMemoryUserRepository()
	return NewService(repo, tokens), repo
}

func TestPasswordIsHashedBeforeSaving(t *testing.T) {
	service, repo := newTestService(t)

	password := "Password@123"
	_, err := service.Register(context.Background(), "test@example.com", password, "Test User")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user := repo.users["test@example.com"]
	if user == nil {
		t.Fatalf("user not found")
	}
	if user.PasswordHash == password {
		t.Fatalf("password was stored in plain text")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, "test@example.com", "pw1", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.Register(ctx, "Test@Example.com", "pw2", ""); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, "test@example.com", "Password@123", "Test User")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		user, token, err := service.Login(ctx, "test@example.com", "Password@123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != registered.ID {
			t.Errorf("expected user %s, got %s", registered.ID, user.ID)
		}
		if token == "" {
			t.Error("expected a signed token")
		}

		userID, email, err := service.ValidateToken(token)
		if err != nil {
			t.Fatalf("token should validate: %v", err)
		}
		if userID != registered.ID || email != "test@example.com" {
			t.Errorf("unexpected claims: %s / %s", userID, email)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, _, err := service.Login(ctx, "test@example.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, _, err := service.Login(ctx, "nobody@example.com", "pw"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	service, _ := newTestService(t)
	if _, _, err := service.ValidateToken("not-a-token"); err == nil {
		t.Error("expected an error for a malformed token")
	}
}
