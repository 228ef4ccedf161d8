package tabular

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"vitrine/domain/sales"
)

func exportTable(enriched bool) *sales.Table {
	table := &sales.Table{
		BuildID:  "b1",
		Enriched: enriched,
		Rows: []sales.FactRow{
			{
				OrderID: "O1", CustomerID: "C1", CustomerState: "SP", CustomerCity: "sao paulo",
				PurchasedAt: time.Date(2017, 5, 10, 14, 22, 31, 0, time.UTC),
				OrderYear:   2017, OrderMonth: "2017-05",
				HasItem: true, OrderItemID: "1", ProductID: "P1", SellerID: "S1",
				Price: 10.5, FreightValue: 2.25, CategoryEnglish: "toys",
				SellerState: "SP", SellerCity: "campinas",
				PaymentValue: 17, HasPayment: true,
				ReviewScore: 4, HasReview: true,
				SentimentLabel: "positive",
			},
			{
				OrderID: "O2", CustomerID: "C2", CustomerState: "MG", CustomerCity: "belo horizonte",
				PurchasedAt: time.Date(2018, 1, 15, 10, 30, 0, 0, time.UTC),
				OrderYear:   2018, OrderMonth: "2018-01",
				CategoryEnglish: sales.UnknownCategory,
			},
		},
	}
	return table
}

// TestWriteFactXLSX tests the workbook export by reading it back through
// the extract reader
func TestWriteFactXLSX(t *testing.T) {
	table := exportTable(false)
	path := filepath.Join(t.TempDir(), "exports", "facts.xlsx")

	if err := NewXLSXSink(path).Store(context.Background(), table); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	e, err := NewReader().Read(path, []string{"order_id", "customer_state", "price", "payment_value", "order_month"})
	if err != nil {
		t.Fatalf("Read-back failed: %v", err)
	}
	if len(e.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(e.Rows))
	}

	first := e.Rows[0]
	if first[0] != "O1" || first[1] != "SP" {
		t.Errorf("Expected O1/SP, got %q/%q", first[0], first[1])
	}
	if first[2] != "10.5" {
		t.Errorf("Expected price 10.5, got %q", first[2])
	}
	if first[3] != "17" {
		t.Errorf("Expected payment 17, got %q", first[3])
	}
	if first[4] != "2017-05" {
		t.Errorf("Expected month 2017-05, got %q", first[4])
	}

	second := e.Rows[1]
	if second[2] != "" || second[3] != "" {
		t.Errorf("Expected null measures as empty cells, got %q and %q", second[2], second[3])
	}

	// A raw export must not carry the sentiment column.
	if _, err := NewReader().Read(path, []string{"sentiment_label"}); err == nil {
		t.Error("Expected no sentiment_label column on a raw export")
	}
}

// TestWriteFactXLSXEnriched tests that enriched exports append the label
// column
func TestWriteFactXLSXEnriched(t *testing.T) {
	table := exportTable(true)
	path := filepath.Join(t.TempDir(), "facts.xlsx")

	if err := WriteFactXLSX(table, path); err != nil {
		t.Fatalf("WriteFactXLSX failed: %v", err)
	}

	e, err := NewReader().Read(path, []string{"order_id", "sentiment_label"})
	if err != nil {
		t.Fatalf("Read-back failed: %v", err)
	}
	if e.Rows[0][1] != "positive" {
		t.Errorf("Expected label positive, got %q", e.Rows[0][1])
	}
	if e.Rows[1][1] != "" {
		t.Errorf("Expected an empty label on the unlabeled row, got %q", e.Rows[1][1])
	}
}
