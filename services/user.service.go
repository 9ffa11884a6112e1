package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"jmt-archery-backend/models"
	"jmt-archery-backend/store"
)

const MinPasswordLength = 8

// UserService mengelola akun pengguna dan admin.
type UserService struct {
	base
	cost int
}

func NewUserService(s store.Store, timeout time.Duration) *UserService {
	return &UserService{base: newBase(s, timeout), cost: bcrypt.DefaultCost}
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", invalid("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalid("email is not valid")
	}
	return email, nil
}

func (u *UserService) hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", invalid("password must be at least %d characters", MinPasswordLength)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), u.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Register membuat pengguna biasa yang aktif.
func (u *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	hashed, err := u.hash(req.Password)
	if err != nil {
		return nil, err
	}

	ctx, cancel := u.writeCtx(ctx)
	defer cancel()

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		IsActive: true,
	}
	if err := u.store.CreateUser(ctx, user); err != nil {
		return nil, storeError(err, "email")
	}
	return user, nil
}

// Authenticate mencocokkan email dan password. Semua kegagalan, termasuk
// akun nonaktif, menghasilkan ErrUnauthorized yang sama.
func (u *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	ctx, cancel := u.readCtx(ctx)
	defer cancel()

	user, err := u.store.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err != nil {
		return nil, storeError(err, "user")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil || !user.IsActive {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	return user, nil
}

func (u *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := u.readCtx(ctx)
	defer cancel()

	user, err := u.store.GetUser(ctx, id)
	if err != nil {
		return nil, storeError(err, "user")
	}
	return user, nil
}

// EnsureAdmin memastikan ada admin aktif dengan email dan password ini.
// Aman dipanggil berulang kali saat start.
func (u *UserService) EnsureAdmin(ctx context.Context, email, password string) (*models.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLength {
		return nil, invalid("password must be at least %d characters", MinPasswordLength)
	}

	ctx, cancel := u.writeCtx(ctx)
	defer cancel()

	existing, err := u.store.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		hashed, err := u.hash(password)
		if err != nil {
			return nil, err
		}
		admin := &models.User{
			Name:     "Administrator",
			Email:    email,
			Password: hashed,
			IsAdmin:  true,
			IsActive: true,
		}
		if err := u.store.CreateUser(ctx, admin); err != nil {
			return nil, storeError(err, "email")
		}
		return admin, nil
	case err != nil:
		return nil, storeError(err, "user")
	}

	changed := false
	if !existing.IsAdmin || !existing.IsActive {
		existing.IsAdmin, existing.IsActive = true, true
		changed = true
	}
	if bcrypt.CompareHashAndPassword([]byte(existing.Password), []byte(password)) != nil {
		if existing.Password, err = u.hash(password); err != nil {
			return nil, err
		}
		changed = true
	}
	if changed {
		if err := u.store.UpdateUser(ctx, existing); err != nil {
			return nil, storeError(err, "user")
		}
	}
	return existing, nil
}
