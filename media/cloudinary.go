// Package media forwards validated image bytes to an external host.
package media

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Host menyimpan file gambar dan mengembalikan URL publiknya.
type Host interface {
	Upload(ctx context.Context, r io.Reader, filename string) (string, error)
}

// Cloudinary adalah Host yang mengunggah ke Cloudinary.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinary membuat host dari CLOUDINARY_URL
// (cloudinary://<key>:<secret>@<cloud>).
func NewCloudinary(url, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config: %w", err)
	}
	return &Cloudinary{cld: cld, folder: folder}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, r io.Reader, filename string) (string, error) {
	result, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{Folder: c.folder})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload %s: %w", filename, err)
	}
	if result == nil {
		return "", fmt.Errorf("cloudinary upload %s: empty response", filename)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload %s: %s", filename, result.Error.Message)
	}
	if result.SecureURL != "" {
		return result.SecureURL, nil
	}
	return result.URL, nil
}
