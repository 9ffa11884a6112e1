package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusSuccess    PaymentStatus = "success"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusExpired    PaymentStatus = "expired"
)

// PaymentStatuses berisi semua status yang dikenal, urut sesuai alur.
var PaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusProcessing,
	PaymentStatusSuccess,
	PaymentStatusFailed,
	PaymentStatusExpired,
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:    {PaymentStatusProcessing, PaymentStatusExpired},
	PaymentStatusProcessing: {PaymentStatusSuccess, PaymentStatusFailed},
}

// Valid melaporkan apakah s adalah status pembayaran yang dikenal.
func (s PaymentStatus) Valid() bool {
	for _, known := range PaymentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// CanTransitionTo melaporkan apakah perpindahan s -> next diizinkan.
// Status success, failed dan expired adalah status akhir.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Payment adalah satu percobaan pembayaran untuk sebuah order.
type Payment struct {
	ID               int64           `json:"id" gorm:"primaryKey"`
	OrderID          int64           `json:"orderId" gorm:"index;not null"`
	Order            *Order          `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Method           string          `json:"method" gorm:"size:50;not null"`
	Bank             *string         `json:"bank" gorm:"size:50"`
	Status           PaymentStatus   `json:"status" gorm:"size:20;not null;index"`
	TransactionID    *string         `json:"transactionId" gorm:"size:191;uniqueIndex"`
	VerificationCode *string         `json:"verificationCode" gorm:"size:64"`
	PaidAt           *time.Time      `json:"paidAt"`
	ExpiresAt        *time.Time      `json:"expiresAt" gorm:"index"`
	GatewayResponse  GatewayPayload  `json:"gatewayResponse" gorm:"type:text"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// PaymentAttempt adalah data dari klien untuk memulai pembayaran.
type PaymentAttempt struct {
	Method string  `json:"method"`
	Bank   *string `json:"bank"`
}

// PaymentMeta adalah data tambahan dari payment gateway saat status berubah.
type PaymentMeta struct {
	TransactionID    *string        `json:"transactionId"`
	VerificationCode *string        `json:"verificationCode"`
	GatewayResponse  GatewayPayload `json:"gatewayResponse"`
}

// GatewayPayload adalah respons mentah payment gateway. Di database disimpan
// sebagai teks JSON dan selalu diurai kembali saat dibaca.
type GatewayPayload map[string]any

// Value mengubah payload menjadi teks JSON untuk disimpan.
func (p GatewayPayload) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode gateway response: %w", err)
	}
	return string(b), nil
}

// Scan mengurai teks JSON dari database.
func (p *GatewayPayload) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("gateway response: unsupported column type %T", src)
	}
	return p.Decode(string(raw))
}

// Decode mengurai bentuk tersimpan payload. String kosong menghasilkan nil.
func (p *GatewayPayload) Decode(raw string) error {
	if raw == "" {
		*p = nil
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return fmt.Errorf("decode gateway response: %w", err)
	}
	*p = out
	return nil
}

// Encode mengembalikan bentuk tersimpan payload, string kosong untuk nil.
func (p GatewayPayload) Encode() (string, error) {
	v, err := p.Value()
	if err != nil || v == nil {
		return "", err
	}
	return v.(string), nil
}

// GormDataType memberi tahu gorm tipe kolom untuk payload.
func (GatewayPayload) GormDataType() string { return "text" }
