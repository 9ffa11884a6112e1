package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"jmt-archery-backend/media"
)

const (
	DefaultMaxUploadBytes = 2 * 1024 * 1024 // 2MB
	DefaultUploadTimeout  = 30 * time.Second
)

var DefaultAllowedExtensions = []string{"jpg", "jpeg", "png", "webp"}

type MediaConfig struct {
	MaxBytes          int64
	AllowedExtensions []string
	Timeout           time.Duration
}

// MediaService memvalidasi file gambar lalu meneruskannya ke media host.
type MediaService struct {
	host     media.Host
	maxBytes int64
	allowed  map[string]bool
	exts     []string
	timeout  time.Duration
}

// NewMediaService membuat service upload. host boleh nil; setiap upload
// kemudian gagal dengan ErrUpstream.
func NewMediaService(host media.Host, cfg MediaConfig) *MediaService {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxUploadBytes
	}
	if len(cfg.AllowedExtensions) == 0 {
		cfg.AllowedExtensions = DefaultAllowedExtensions
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultUploadTimeout
	}
	m := &MediaService{host: host, maxBytes: cfg.MaxBytes, allowed: map[string]bool{}, timeout: cfg.Timeout}
	for _, ext := range cfg.AllowedExtensions {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		if !m.allowed[ext] {
			m.allowed[ext] = true
			m.exts = append(m.exts, ext)
		}
	}
	return m
}

func (m *MediaService) MaxBytes() int64 { return m.maxBytes }

// Ingest memeriksa ukuran dan ekstensi file, mengunggahnya, lalu
// mengembalikan URL https.
func (m *MediaService) Ingest(ctx context.Context, data []byte, filename string) (string, error) {
	if len(data) == 0 {
		return "", invalid("file is empty")
	}
	if int64(len(data)) > m.maxBytes {
		return "", fmt.Errorf("%w: file is %.1fMB, limit is %.1fMB",
			ErrPayloadTooLarge, float64(len(data))/(1024*1024), float64(m.maxBytes)/(1024*1024))
	}
	parts := strings.Split(filename, ".")
	ext := strings.ToLower(parts[len(parts)-1])
	if len(parts) < 2 || !m.allowed[ext] {
		return "", fmt.Errorf("%w: allowed formats are %s",
			ErrUnsupportedMediaType, strings.Join(m.exts, ", "))
	}
	if m.host == nil {
		return "", fmt.Errorf("%w: media host is not configured", ErrUpstream)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	url, err := m.host.Upload(ctx, bytes.NewReader(data), filename)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if url == "" {
		return "", fmt.Errorf("%w: media host returned no URL", ErrUpstream)
	}
	return secureURL(url), nil
}

func secureURL(u string) string {
	if len(u) >= len("http://") && strings.EqualFold(u[:len("http://")], "http://") {
		return "https://" + u[len("http://"):]
	}
	return u
}
