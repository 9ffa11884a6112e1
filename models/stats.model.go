package models

import "github.com/shopspring/decimal"

// Stats mendefinisikan struktur untuk statistik dashboard admin.
type Stats struct {
	TotalProducts    int64                   `json:"totalProducts"`
	TotalUsers       int64                   `json:"totalUsers"`
	TotalOrders      int64                   `json:"totalOrders"`
	InventoryValue   decimal.Decimal         `json:"inventoryValue"`
	PaymentsByStatus map[PaymentStatus]int64 `json:"paymentsByStatus"`
}
