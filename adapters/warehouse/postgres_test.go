package warehouse

import (
	"strings"
	"testing"
	"time"

	"vitrine/domain/sales"
	"vitrine/internal/errors"
)

// TestInsertStatement tests the generated multi-row insert text
func TestInsertStatement(t *testing.T) {
	one := insertStatement(1)
	if !strings.HasPrefix(one, "INSERT INTO fact_orders (build_id, order_id") {
		t.Errorf("Unexpected statement prefix: %s", one)
	}
	if strings.Count(one, "$") != len(factColumns) {
		t.Errorf("Expected %d placeholders, got %d", len(factColumns), strings.Count(one, "$"))
	}

	two := insertStatement(2)
	if strings.Count(two, "$") != 2*len(factColumns) {
		t.Errorf("Expected %d placeholders for 2 rows, got %d", 2*len(factColumns), strings.Count(two, "$"))
	}
	if !strings.Contains(two, "($20, $21") {
		t.Errorf("Expected the second tuple to continue numbering, got %s", two)
	}
}

// TestRowArgs tests flattening with NULLs for absent measures
func TestRowArgs(t *testing.T) {
	bare := &sales.FactRow{
		OrderID:         "O1",
		CustomerID:      "C1",
		PurchasedAt:     time.Date(2018, 1, 15, 10, 30, 0, 0, time.UTC),
		CategoryEnglish: sales.UnknownCategory,
		OrderYear:       2018,
		OrderMonth:      "2018-01",
	}

	args := rowArgs("b1", bare)
	if len(args) != len(factColumns) {
		t.Fatalf("Expected %d args, got %d", len(factColumns), len(args))
	}
	if args[0] != "b1" || args[1] != "O1" {
		t.Errorf("Expected build and order ids first, got %v and %v", args[0], args[1])
	}
	for _, i := range []int{9, 10, 14, 15, 18} {
		if args[i] != nil {
			t.Errorf("Expected NULL for %s, got %v", factColumns[i], args[i])
		}
	}
	if args[16] != 2018 || args[17] != "2018-01" {
		t.Errorf("Expected year/month args, got %v and %v", args[16], args[17])
	}

	full := &sales.FactRow{
		OrderID: "O2", HasItem: true, Price: 10.5, FreightValue: 2.25,
		PaymentValue: 17, HasPayment: true,
		ReviewScore: 4, HasReview: true,
		SentimentLabel: "positive",
	}
	args = rowArgs("b1", full)
	if args[9] != 10.5 || args[10] != 2.25 {
		t.Errorf("Expected item measures, got %v and %v", args[9], args[10])
	}
	if args[14] != 17.0 || args[15] != 4.0 {
		t.Errorf("Expected payment and review, got %v and %v", args[14], args[15])
	}
	if args[18] != "positive" {
		t.Errorf("Expected the sentiment label, got %v", args[18])
	}
}

// TestConnectRequiresURL tests the configuration guard
func TestConnectRequiresURL(t *testing.T) {
	_, err := Connect("")
	if err == nil {
		t.Fatal("Expected an error for an empty database URL")
	}
	if !errors.HasCode(err, errors.CodeConfigInvalid) {
		t.Errorf("Expected code %s, got %s", errors.CodeConfigInvalid, errors.GetCode(err))
	}
}
