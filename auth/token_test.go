package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"jmt-archery-backend/models"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestIssueVerify(t *testing.T) {
	m, err := NewTokenMaker(testKey, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenMaker: %v", err)
	}
	token, err := m.Issue(&models.User{ID: 42, IsAdmin: true})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !strings.HasPrefix(token, "v2.local.") {
		t.Fatalf("unexpected token %q", token)
	}

	p, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if p.UserID != 42 || !p.IsAdmin {
		t.Fatalf("principal = %+v", p)
	}
}

func TestVerifyRejects(t *testing.T) {
	m, _ := NewTokenMaker(testKey, time.Hour)
	token, _ := m.Issue(&models.User{ID: 7})

	other, _ := NewTokenMaker([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)
	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong key: err = %v", err)
	}
	if _, err := m.Verify("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage: err = %v", err)
	}

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := m.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired: err = %v", err)
	}
}

func TestNewTokenMakerKeyLength(t *testing.T) {
	if _, err := NewTokenMaker([]byte("short"), 0); err == nil {
		t.Fatal("expected key length error")
	}
}
