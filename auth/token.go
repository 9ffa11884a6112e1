// Package auth menerbitkan dan memverifikasi token sesi PASETO v2.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/o1egl/paseto"

	"jmt-archery-backend/models"
)

const (
	TokenTTL    = 24 * time.Hour
	tokenFooter = "jmt-archery"
	claimAdmin  = "admin"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Principal adalah pengguna yang sudah terautentikasi.
type Principal struct {
	UserID  int64
	IsAdmin bool
}

// TokenMaker membuat token lokal (terenkripsi) dengan kunci 32 byte.
type TokenMaker struct {
	key []byte
	ttl time.Duration
	v2  *paseto.V2
	now func() time.Time
}

func NewTokenMaker(key []byte, ttl time.Duration) (*TokenMaker, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("paseto key must be 32 bytes, got %d", len(key))
	}
	if ttl <= 0 {
		ttl = TokenTTL
	}
	return &TokenMaker{key: key, ttl: ttl, v2: paseto.NewV2(), now: time.Now}, nil
}

func (m *TokenMaker) TTL() time.Duration { return m.ttl }

// Issue membuat token untuk user.
func (m *TokenMaker) Issue(u *models.User) (string, error) {
	now := m.now()
	jsonToken := paseto.JSONToken{
		Subject:    strconv.FormatInt(u.ID, 10),
		IssuedAt:   now,
		NotBefore:  now,
		Expiration: now.Add(m.ttl),
	}
	jsonToken.Set(claimAdmin, strconv.FormatBool(u.IsAdmin))

	token, err := m.v2.Encrypt(m.key, jsonToken, tokenFooter)
	if err != nil {
		return "", fmt.Errorf("encrypt token: %w", err)
	}
	return token, nil
}

// Verify membuka token dan mengembalikan principal-nya.
func (m *TokenMaker) Verify(token string) (*Principal, error) {
	var (
		jsonToken paseto.JSONToken
		footer    string
	)
	if err := m.v2.Decrypt(token, m.key, &jsonToken, &footer); err != nil {
		return nil, ErrInvalidToken
	}
	if footer != tokenFooter {
		return nil, ErrInvalidToken
	}
	if err := jsonToken.Validate(paseto.ValidAt(m.now())); err != nil {
		return nil, ErrInvalidToken
	}
	id, err := strconv.ParseInt(jsonToken.Subject, 10, 64)
	if err != nil || id <= 0 {
		return nil, ErrInvalidToken
	}
	return &Principal{UserID: id, IsAdmin: jsonToken.Get(claimAdmin) == "true"}, nil
}
