// Package reports membuat file Excel untuk dashboard admin.
package reports

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tealeg/xlsx"

	"jmt-archery-backend/models"
)

const timeLayout = "2006-01-02 15:04:05"

var paymentHeaders = []string{
	"ID", "OrderID", "Customer", "Email", "Items", "Amount", "Method", "Bank",
	"Status", "TransactionID", "PaidAt", "ExpiresAt", "CreatedAt",
}

// WritePayments menulis satu baris per pembayaran ke w dalam format xlsx.
func WritePayments(w io.Writer, payments []models.Payment) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Payments")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range paymentHeaders {
		header.AddCell().SetValue(h)
	}

	for _, p := range payments {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.OrderID)

		var customer, email, items string
		if p.Order != nil {
			if p.Order.User != nil {
				customer, email = p.Order.User.Name, p.Order.User.Email
			}
			items = describeItems(p.Order.Items)
		}
		row.AddCell().SetValue(customer)
		row.AddCell().SetValue(email)
		row.AddCell().SetValue(items)
		row.AddCell().SetValue(p.Amount.StringFixed(2))
		row.AddCell().SetValue(p.Method)
		row.AddCell().SetValue(deref(p.Bank))
		row.AddCell().SetValue(string(p.Status))
		row.AddCell().SetValue(deref(p.TransactionID))
		row.AddCell().SetValue(formatTime(p.PaidAt))
		row.AddCell().SetValue(formatTime(p.ExpiresAt))
		row.AddCell().SetValue(p.CreatedAt.Format(timeLayout))
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func describeItems(items []models.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		name := fmt.Sprintf("#%d", it.ProductID)
		if it.Product != nil {
			name = it.Product.Name
		}
		parts = append(parts, fmt.Sprintf("%s x%d", name, it.Quantity))
	}
	return strings.Join(parts, ", ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}
