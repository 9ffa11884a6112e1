package reports

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"

	"jmt-archery-backend/models"
)

func TestWritePayments(t *testing.T) {
	paid := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	tx := "JMT-abc"
	payments := []models.Payment{
		{
			ID:            3,
			OrderID:       2,
			Amount:        decimal.RequireFromString("1300000"),
			Method:        "bank_transfer",
			Status:        models.PaymentStatusSuccess,
			TransactionID: &tx,
			PaidAt:        &paid,
			CreatedAt:     paid,
			Order: &models.Order{
				ID:   2,
				User: &models.UserPublic{Name: "Rina", Email: "rina@example.com"},
				Items: []models.OrderItem{
					{ProductID: 1, Quantity: 2, Product: &models.Product{Name: "Youth Bow"}},
					{ProductID: 5, Quantity: 1},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := WritePayments(&buf, payments); err != nil {
		t.Fatalf("WritePayments: %v", err)
	}

	file, err := xlsx.OpenBinary(buf.Bytes())
	if err != nil {
		t.Fatalf("OpenBinary: %v", err)
	}
	if len(file.Sheets) != 1 {
		t.Fatalf("sheets = %d, want 1", len(file.Sheets))
	}
	sheet := file.Sheets[0]
	if sheet.MaxRow != 2 {
		t.Fatalf("rows = %d, want 2", sheet.MaxRow)
	}
	row := sheet.Rows[1]
	want := map[int]string{
		2:  "Rina",
		3:  "rina@example.com",
		4:  "Youth Bow x2, #5 x1",
		5:  "1300000.00",
		8:  "success",
		9:  "JMT-abc",
		10: "2024-05-01 10:30:00",
		11: "",
	}
	for idx, v := range want {
		if got := row.Cells[idx].String(); got != v {
			t.Errorf("cell %d = %q, want %q", idx, got, v)
		}
	}
}
