package services

import (
	"context"
	"time"

	"jmt-archery-backend/models"
	"jmt-archery-backend/store"
)

// InventoryService menambah dan mengurangi stok produk. Pengurangan stok
// selalu berupa satu update bersyarat di store sehingga stok tidak pernah
// negatif walaupun ada request bersamaan.
type InventoryService struct {
	base
}

func NewInventoryService(s store.Store, timeout time.Duration) *InventoryService {
	return &InventoryService{base: newBase(s, timeout)}
}

// IncreaseStock menambah stok dan mengembalikan stok baru.
func (i *InventoryService) IncreaseStock(ctx context.Context, productID int64, amount int) (int, error) {
	if productID <= 0 {
		return 0, invalid("product id must be a positive integer")
	}
	if amount < 1 {
		return 0, invalid("amount must be at least 1")
	}
	if amount > models.MaxStock {
		return 0, invalid("amount must not exceed %d", models.MaxStock)
	}
	ctx, cancel := i.writeCtx(ctx)
	defer cancel()

	p, err := i.store.IncrementStock(ctx, productID, amount)
	if err != nil {
		return 0, storeError(err, "product")
	}
	return p.Stock, nil
}

// DecreaseStock mengurangi stok jika stok masih cukup.
func (i *InventoryService) DecreaseStock(ctx context.Context, productID int64, amount int) (*models.Product, error) {
	if productID <= 0 {
		return nil, invalid("product id must be a positive integer")
	}
	if amount <= 0 {
		return nil, invalid("quantity must be greater than 0")
	}
	ctx, cancel := i.writeCtx(ctx)
	defer cancel()

	p, err := i.store.DecrementStock(ctx, productID, amount)
	if err != nil {
		return nil, storeError(err, "product")
	}
	return p, nil
}
