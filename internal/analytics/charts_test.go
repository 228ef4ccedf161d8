package analytics

import (
	"fmt"
	"testing"

	"vitrine/domain/sales"
)

// TestCustomerStateTree tests distinct-customer counting and the descending
// order with alphabetical ties
func TestCustomerStateTree(t *testing.T) {
	rows := []sales.FactRow{
		{CustomerID: "c1", CustomerState: "SP"},
		{CustomerID: "c1", CustomerState: "SP"}, // same customer, two items
		{CustomerID: "c2", CustomerState: "SP"},
		{CustomerID: "c3", CustomerState: "RJ"},
		{CustomerID: "c4", CustomerState: "BA"},
		{CustomerID: "c5", CustomerState: ""}, // unmatched join, skipped
	}

	got := CustomerStateTree(rows)
	if len(got) != 3 {
		t.Fatalf("Expected 3 states, got %d", len(got))
	}
	if got[0].State != "SP" || got[0].Count != 2 {
		t.Errorf("Expected SP with 2 customers first, got %s=%d", got[0].State, got[0].Count)
	}
	// RJ and BA tie at one customer each; alphabetical order breaks the tie
	if got[1].State != "BA" || got[2].State != "RJ" {
		t.Errorf("Expected tie broken alphabetically, got %s then %s", got[1].State, got[2].State)
	}
}

// TestSellerStateTree tests that rows without a seller are skipped
func TestSellerStateTree(t *testing.T) {
	rows := []sales.FactRow{
		{SellerID: "s1", SellerState: "SP"},
		{SellerID: "s2", SellerState: "SP"},
		{SellerID: "", SellerState: ""}, // itemless order row
	}

	got := SellerStateTree(rows)
	if len(got) != 1 || got[0].State != "SP" || got[0].Count != 2 {
		t.Errorf("Expected SP with 2 sellers, got %v", got)
	}
}

// TestTopCategories tests distinct-order counting and the cap
func TestTopCategories(t *testing.T) {
	rows := []sales.FactRow{
		{OrderID: "O1", CategoryEnglish: "toys"},
		{OrderID: "O1", CategoryEnglish: "toys"}, // same order twice
		{OrderID: "O2", CategoryEnglish: "toys"},
		{OrderID: "O3", CategoryEnglish: "auto"},
		{OrderID: "O4", CategoryEnglish: "housewares"},
		{OrderID: "O5", CategoryEnglish: "housewares"},
	}

	got := TopCategories(rows, 2)
	if len(got) != 2 {
		t.Fatalf("Expected cap at 2 categories, got %d", len(got))
	}
	if got[0].Category != "housewares" || got[0].Orders != 2 {
		t.Errorf("Expected housewares=2 first (alphabetical tie with toys), got %s=%d", got[0].Category, got[0].Orders)
	}
	if got[1].Category != "toys" || got[1].Orders != 2 {
		t.Errorf("Expected toys=2 second, got %s=%d", got[1].Category, got[1].Orders)
	}
}

// TestOrdersPerMonth tests chronological ordering of month buckets
func TestOrdersPerMonth(t *testing.T) {
	rows := []sales.FactRow{
		{OrderID: "O1", OrderMonth: "2017-11"},
		{OrderID: "O2", OrderMonth: "2017-02"},
		{OrderID: "O3", OrderMonth: "2017-02"},
		{OrderID: "O3", OrderMonth: "2017-02"}, // second item of O3
	}

	got := OrdersPerMonth(rows)
	if len(got) != 2 {
		t.Fatalf("Expected 2 months, got %d", len(got))
	}
	if got[0].Month != "2017-02" || got[0].Orders != 2 {
		t.Errorf("Expected 2017-02 with 2 orders first, got %s=%d", got[0].Month, got[0].Orders)
	}
	if got[1].Month != "2017-11" || got[1].Orders != 1 {
		t.Errorf("Expected 2017-11 with 1 order, got %s=%d", got[1].Month, got[1].Orders)
	}
}

// TestMonthlyRevenue tests the broadcast row sum per month, including months
// whose rows carry no payment
func TestMonthlyRevenue(t *testing.T) {
	rows := []sales.FactRow{
		{OrderID: "O1", OrderMonth: "2017-01", PaymentValue: 17, HasPayment: true},
		{OrderID: "O1", OrderMonth: "2017-01", PaymentValue: 17, HasPayment: true},
		{OrderID: "O2", OrderMonth: "2017-03"},
	}

	got := MonthlyRevenue(rows)
	if len(got) != 2 {
		t.Fatalf("Expected 2 months, got %d", len(got))
	}
	if got[0].Month != "2017-01" || got[0].Revenue != 34 {
		t.Errorf("Expected 2017-01 revenue 34, got %s=%v", got[0].Month, got[0].Revenue)
	}
	if got[1].Month != "2017-03" || got[1].Revenue != 0 {
		t.Errorf("Expected 2017-03 revenue 0, got %s=%v", got[1].Month, got[1].Revenue)
	}
}

// TestRevenueByState tests the top-n truncation
func TestRevenueByState(t *testing.T) {
	var rows []sales.FactRow
	for i := 0; i < 12; i++ {
		rows = append(rows, sales.FactRow{
			OrderID:       fmt.Sprintf("O%d", i),
			CustomerState: fmt.Sprintf("S%02d", i),
			PaymentValue:  float64(100 - i),
			HasPayment:    true,
		})
	}

	got := RevenueByState(rows, 10)
	if len(got) != 10 {
		t.Fatalf("Expected 10 states, got %d", len(got))
	}
	if got[0].State != "S00" || got[0].Revenue != 100 {
		t.Errorf("Expected S00=100 first, got %s=%v", got[0].State, got[0].Revenue)
	}
	for _, sv := range got {
		if sv.State == "S11" {
			t.Error("Expected the lowest-revenue state to be cut")
		}
	}
}

// TestFreightByReview tests the five number summary per review score
func TestFreightByReview(t *testing.T) {
	rows := []sales.FactRow{
		{HasItem: true, HasReview: true, ReviewScore: 5, FreightValue: 1},
		{HasItem: true, HasReview: true, ReviewScore: 5, FreightValue: 2},
		{HasItem: true, HasReview: true, ReviewScore: 5, FreightValue: 3},
		{HasItem: true, HasReview: true, ReviewScore: 5, FreightValue: 4},
		{HasItem: true, HasReview: true, ReviewScore: 1, FreightValue: 10},
		{HasItem: true, HasReview: true, ReviewScore: 1, FreightValue: 10},
		{HasItem: true, HasReview: true, ReviewScore: 1, FreightValue: 10},
		{HasItem: true, HasReview: true, ReviewScore: 1, FreightValue: 10},
		{HasItem: false, HasReview: true, ReviewScore: 1, FreightValue: 99}, // no item, skipped
		{HasItem: true, HasReview: false, FreightValue: 99},                 // no review, skipped
	}

	got := FreightByReview(rows)
	if len(got) != 2 {
		t.Fatalf("Expected 2 score buckets, got %d", len(got))
	}
	if got[0].Score != 1 || got[1].Score != 5 {
		t.Errorf("Expected scores ascending [1 5], got [%v %v]", got[0].Score, got[1].Score)
	}

	flat := got[0]
	if flat.Count != 4 || flat.Min != 10 || flat.Median != 10 || flat.Max != 10 {
		t.Errorf("Expected a flat box at 10, got %+v", flat)
	}

	spread := got[1]
	if spread.Count != 4 {
		t.Errorf("Expected 4 freights for score 5, got %d", spread.Count)
	}
	if spread.Min != 1 || spread.Max != 4 {
		t.Errorf("Expected min 1 max 4, got %v and %v", spread.Min, spread.Max)
	}
	if spread.Median != 2.5 {
		t.Errorf("Expected median 2.5, got %v", spread.Median)
	}
	if spread.Q1 > spread.Median || spread.Median > spread.Q3 {
		t.Errorf("Expected quartiles around the median, got q1=%v q3=%v", spread.Q1, spread.Q3)
	}
}

// TestTopSellers tests distinct-order counting per seller with the cap
func TestTopSellers(t *testing.T) {
	rows := []sales.FactRow{
		{OrderID: "O1", SellerID: "s1", SellerState: "SP", SellerCity: "sao paulo"},
		{OrderID: "O1", SellerID: "s1", SellerState: "SP", SellerCity: "sao paulo"},
		{OrderID: "O2", SellerID: "s1", SellerState: "SP", SellerCity: "sao paulo"},
		{OrderID: "O3", SellerID: "s2", SellerState: "RJ", SellerCity: "niteroi"},
		{OrderID: "O4", SellerID: ""}, // itemless rows never count
	}

	got := TopSellers(rows, 100)
	if len(got) != 2 {
		t.Fatalf("Expected 2 sellers, got %d", len(got))
	}
	if got[0].SellerID != "s1" || got[0].Orders != 2 {
		t.Errorf("Expected s1 with 2 orders first, got %s=%d", got[0].SellerID, got[0].Orders)
	}
	if got[0].State != "SP" || got[0].City != "sao paulo" {
		t.Errorf("Expected seller location carried through, got %s/%s", got[0].State, got[0].City)
	}

	capped := TopSellers(rows, 1)
	if len(capped) != 1 {
		t.Errorf("Expected cap at 1 seller, got %d", len(capped))
	}
}
