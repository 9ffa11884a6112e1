package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"jmt-archery-backend/models"
	"jmt-archery-backend/store"
)

// CatalogService mengelola data produk.
type CatalogService struct {
	base
}

func NewCatalogService(s store.Store, timeout time.Duration) *CatalogService {
	return &CatalogService{base: newBase(s, timeout)}
}

func (c *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := c.readCtx(ctx)
	defer cancel()

	products, err := c.store.ListProducts(ctx)
	if err != nil {
		return nil, storeError(err, "product")
	}
	return products, nil
}

func (c *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if id <= 0 {
		return nil, invalid("product id must be a positive integer")
	}
	ctx, cancel := c.readCtx(ctx)
	defer cancel()

	p, err := c.store.GetProduct(ctx, id)
	if err != nil {
		return nil, storeError(err, "product")
	}
	return p, nil
}

func (c *CatalogService) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	p, err := productFromInput(in)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.writeCtx(ctx)
	defer cancel()

	if err := c.store.CreateProduct(ctx, p); err != nil {
		return nil, storeError(err, "product")
	}
	return p, nil
}

func (c *CatalogService) UpdateProduct(ctx context.Context, id int64, in models.ProductInput) (*models.Product, error) {
	if id <= 0 {
		return nil, invalid("product id must be a positive integer")
	}
	p, err := productFromInput(in)
	if err != nil {
		return nil, err
	}
	p.ID = id

	ctx, cancel := c.writeCtx(ctx)
	defer cancel()

	if err := c.store.UpdateProduct(ctx, p); err != nil {
		return nil, storeError(err, "product")
	}
	return p, nil
}

func (c *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return invalid("product id must be a positive integer")
	}
	ctx, cancel := c.writeCtx(ctx)
	defer cancel()

	return storeError(c.store.DeleteProduct(ctx, id), "product")
}

// productFromInput memvalidasi input: nama dan gambar wajib diisi setelah
// di-trim, harga dan stok wajib berupa angka tidak negatif.
func productFromInput(in models.ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(in.Name)
	image := strings.TrimSpace(in.Image)
	switch {
	case name == "":
		return nil, invalid("name is required")
	case in.Price == nil:
		return nil, invalid("price is required")
	case *in.Price < 0:
		return nil, invalid("price must not be negative")
	case in.Stock == nil:
		return nil, invalid("stock is required")
	case *in.Stock < 0:
		return nil, invalid("stock must not be negative")
	case *in.Stock > models.MaxStock:
		return nil, invalid("stock must not exceed %d", models.MaxStock)
	case image == "":
		return nil, invalid("image is required")
	}
	return &models.Product{
		Name:        name,
		Price:       decimal.NewFromFloat(*in.Price).Round(2),
		Stock:       *in.Stock,
		Image:       image,
		Description: strings.TrimSpace(in.Description),
	}, nil
}
