package models

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Harga dikirim sebagai angka JSON, bukan string.
	decimal.MarshalJSONWithoutQuotes = true
}

// MaxStock adalah batas atas stok satu produk. Nilainya muat di kolom
// integer 32-bit pada semua backend.
const MaxStock = math.MaxInt32

// Product mendefinisikan struktur untuk produk.
type Product struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"size:191;not null;uniqueIndex"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Stock       int             `json:"stock" gorm:"not null;check:stock >= 0"`
	Image       string          `json:"image" gorm:"size:512;not null"`
	Description string          `json:"description" gorm:"type:text"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductInput adalah field yang boleh diisi saat membuat atau mengubah produk.
// Price dan Stock berupa pointer agar nilai yang hilang bisa dibedakan dari nol.
type ProductInput struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
}
