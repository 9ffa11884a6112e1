package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"jmt-archery-backend/models"
	"jmt-archery-backend/store/memstore"
)

func newUserService(s *memstore.Store) *UserService {
	u := NewUserService(s, time.Second)
	u.cost = bcrypt.MinCost
	return u
}

func TestRegisterAndAuthenticate(t *testing.T) {
	users := newUserService(memstore.New())
	ctx := context.Background()

	u, err := users.Register(ctx, models.RegisterRequest{Name: "Putu", Email: "  Putu@Example.COM ", Password: "rahasia123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Email != "putu@example.com" || !u.IsActive || u.IsAdmin {
		t.Fatalf("unexpected user %+v", u)
	}
	if u.Password == "rahasia123" {
		t.Fatal("password stored in plain text")
	}

	if _, err := users.Register(ctx, models.RegisterRequest{Name: "Putu", Email: "putu@example.com", Password: "rahasia123"}); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("duplicate: err = %v", err)
	}
	if _, err := users.Register(ctx, models.RegisterRequest{Name: "Kadek", Email: "kadek@example.com", Password: "short"}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("short password: err = %v", err)
	}
	if _, err := users.Register(ctx, models.RegisterRequest{Name: "Kadek", Email: "not-an-email", Password: "rahasia123"}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("bad email: err = %v", err)
	}

	got, err := users.Authenticate(ctx, "PUTU@example.com", "rahasia123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("authenticated as %d, want %d", got.ID, u.ID)
	}
	for _, tc := range []struct{ email, password string }{
		{"putu@example.com", "wrong-password"},
		{"nobody@example.com", "rahasia123"},
		{"", ""},
	} {
		if _, err := users.Authenticate(ctx, tc.email, tc.password); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("%s: err = %v, want ErrUnauthorized", tc.email, err)
		}
	}
}

func TestAuthenticateRejectsInactive(t *testing.T) {
	s := memstore.New()
	users := newUserService(s)
	ctx := context.Background()

	u, _ := users.Register(ctx, models.RegisterRequest{Name: "Nyoman", Email: "nyoman@example.com", Password: "rahasia123"})
	u.IsActive = false
	if err := s.UpdateUser(ctx, u); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if _, err := users.Authenticate(ctx, "nyoman@example.com", "rahasia123"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	s := memstore.New()
	users := newUserService(s)
	ctx := context.Background()

	first, err := users.EnsureAdmin(ctx, "admin@jmtarchery.com", "admin12345")
	if err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	if !first.IsAdmin || !first.IsActive {
		t.Fatalf("seeded admin flags %+v", first)
	}
	second, err := users.EnsureAdmin(ctx, "admin@jmtarchery.com", "admin12345")
	if err != nil {
		t.Fatalf("EnsureAdmin again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("second call created a new admin: %d vs %d", second.ID, first.ID)
	}

	// Akun biasa dengan email yang sama dipromosikan.
	plain, _ := users.Register(ctx, models.RegisterRequest{Name: "Owner", Email: "owner@jmtarchery.com", Password: "owner12345"})
	promoted, err := users.EnsureAdmin(ctx, "owner@jmtarchery.com", "newsecret99")
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if promoted.ID != plain.ID || !promoted.IsAdmin {
		t.Fatalf("unexpected promotion %+v", promoted)
	}
	if _, err := users.Authenticate(ctx, "owner@jmtarchery.com", "newsecret99"); err != nil {
		t.Fatalf("new admin password rejected: %v", err)
	}
}
