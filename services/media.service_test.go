package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"
)

type fakeHost struct {
	url      string
	err      error
	block    bool
	received int
}

func (f *fakeHost) Upload(ctx context.Context, r io.Reader, filename string) (string, error) {
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	b, _ := io.ReadAll(r)
	f.received = len(b)
	return f.url, f.err
}

func TestIngestLimits(t *testing.T) {
	host := &fakeHost{url: "https://cdn.example.com/a.png"}
	m := NewMediaService(host, MediaConfig{})
	ctx := context.Background()

	big := bytes.Repeat([]byte{1}, 3*1024*1024)
	if _, err := m.Ingest(ctx, big, "big.png"); !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("3MB: err = %v, want ErrPayloadTooLarge", err)
	}
	for _, name := range []string{"anim.gif", "noext", "script.png.exe", ""} {
		if _, err := m.Ingest(ctx, []byte("x"), name); !errors.Is(err, ErrUnsupportedMediaType) {
			t.Errorf("%q: err = %v, want ErrUnsupportedMediaType", name, err)
		}
	}
	if _, err := m.Ingest(ctx, nil, "empty.png"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("empty: err = %v", err)
	}
	if host.received != 0 {
		t.Fatal("rejected files must not reach the host")
	}
}

func TestIngestRewritesInsecureURL(t *testing.T) {
	host := &fakeHost{url: "http://res.cloudinary.com/jmt/image/upload/v1/bow.png"}
	m := NewMediaService(host, MediaConfig{})

	oneMB := bytes.Repeat([]byte{7}, 1024*1024)
	url, err := m.Ingest(context.Background(), oneMB, "Bow.PNG")
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if url != "https://res.cloudinary.com/jmt/image/upload/v1/bow.png" {
		t.Fatalf("url = %q", url)
	}
	if host.received != len(oneMB) {
		t.Fatalf("host received %d bytes", host.received)
	}
}

func TestIngestUpstreamFailures(t *testing.T) {
	ctx := context.Background()
	data := []byte("png-bytes")

	cases := []struct {
		name string
		m    *MediaService
	}{
		{"no host", NewMediaService(nil, MediaConfig{})},
		{"host error", NewMediaService(&fakeHost{err: errors.New("boom")}, MediaConfig{})},
		{"empty url", NewMediaService(&fakeHost{}, MediaConfig{})},
		{"timeout", NewMediaService(&fakeHost{block: true}, MediaConfig{Timeout: 20 * time.Millisecond})},
	}
	for _, tc := range cases {
		if _, err := tc.m.Ingest(ctx, data, "photo.webp"); !errors.Is(err, ErrUpstream) {
			t.Errorf("%s: err = %v, want ErrUpstream", tc.name, err)
		}
	}
}
