package sales

import (
	"testing"
	"time"
)

// TestMonthKey tests the zero-padded YYYY-MM key
func TestMonthKey(t *testing.T) {
	tests := []struct {
		ts       time.Time
		expected string
	}{
		{time.Date(2017, 5, 3, 10, 0, 0, 0, time.UTC), "2017-05"},
		{time.Date(2018, 12, 31, 23, 59, 59, 0, time.UTC), "2018-12"},
	}
	for _, test := range tests {
		if got := MonthKey(test.ts); got != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, got)
		}
	}
}

// TestTableLen tests the nil-safe length accessor
func TestTableLen(t *testing.T) {
	var nilTable *Table
	if nilTable.Len() != 0 {
		t.Error("Expected nil table length 0")
	}
	if nilTable.HasSentiment() {
		t.Error("Expected nil table to have no sentiment")
	}

	table := &Table{Rows: make([]FactRow, 3)}
	if table.Len() != 3 {
		t.Errorf("Expected length 3, got %d", table.Len())
	}
	if table.HasSentiment() {
		t.Error("Expected non-enriched table to have no sentiment")
	}
	table.Enriched = true
	if !table.HasSentiment() {
		t.Error("Expected enriched table to report sentiment")
	}
}

// TestFactColumnNames tests the export column order and the enriched suffix
func TestFactColumnNames(t *testing.T) {
	cols := FactColumnNames(false)
	if cols[0] != "order_id" {
		t.Errorf("Expected order_id first, got %s", cols[0])
	}
	if cols[len(cols)-1] != "order_month" {
		t.Errorf("Expected order_month last, got %s", cols[len(cols)-1])
	}

	enriched := FactColumnNames(true)
	if len(enriched) != len(cols)+1 {
		t.Errorf("Expected one extra enriched column, got %d vs %d", len(enriched), len(cols))
	}
	if enriched[len(enriched)-1] != "sentiment_label" {
		t.Errorf("Expected sentiment_label last, got %s", enriched[len(enriched)-1])
	}
}

// TestFactRowValues tests null measure handling in the export view
func TestFactRowValues(t *testing.T) {
	row := FactRow{
		OrderID:         "o1",
		CategoryEnglish: UnknownCategory,
		Price:           10,
		FreightValue:    2,
		PaymentValue:    12,
		ReviewScore:     4,
	}

	// No Has* flags set: every measure must export as NULL
	vals := row.Values(false)
	if len(vals) != len(FactColumnNames(false)) {
		t.Fatalf("Expected %d values, got %d", len(FactColumnNames(false)), len(vals))
	}
	for i, name := range FactColumnNames(false) {
		switch name {
		case "price", "freight_value", "payment_value", "review_score":
			if vals[i] != nil {
				t.Errorf("Expected %s to be nil without its flag, got %v", name, vals[i])
			}
		}
	}

	row.HasItem = true
	row.HasPayment = true
	row.HasReview = true
	vals = row.Values(true)
	if vals[len(vals)-1] != row.SentimentLabel {
		t.Error("Expected sentiment label appended on enriched export")
	}
	byName := make(map[string]interface{})
	for i, name := range FactColumnNames(true) {
		byName[name] = vals[i]
	}
	if byName["price"] != 10.0 || byName["payment_value"] != 12.0 {
		t.Error("Expected measures present once their flags are set")
	}
}
