package ui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"vitrine/app"
	"vitrine/domain/report"
	"vitrine/domain/sales"
	"vitrine/ports"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestAPI(t *testing.T, source ports.FactSource) http.Handler {
	t.Helper()
	return NewAPI(source, app.NewReportService(nil), nil).Handler()
}

// TestAPIHealth tests the health endpoint payload
func TestAPIHealth(t *testing.T) {
	h := newTestAPI(t, &stubSource{table: dashTable()})

	w := doGet(t, h, "/api/health")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", got["status"])
	}
	if got["build_id"] != "test-build" {
		t.Errorf("Expected the build id, got %v", got["build_id"])
	}
	if got["row_count"] != float64(3) {
		t.Errorf("Expected 3 rows, got %v", got["row_count"])
	}
}

// TestAPIOptions tests the filter options payload
func TestAPIOptions(t *testing.T) {
	h := newTestAPI(t, &stubSource{table: dashTable()})

	w := doGet(t, h, "/api/options")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var got sales.FilterOptions
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(got.Years) != 2 || got.YearMin != 2017 || got.YearMax != 2018 {
		t.Errorf("Expected years 2017-2018, got %v", got.Years)
	}
	if got.PaymentMin != 17 || got.PaymentMax != 20 {
		t.Errorf("Expected payment bounds 17-20, got %v-%v", got.PaymentMin, got.PaymentMax)
	}
	if got.PaymentDefaultHigh != 19.1 {
		t.Errorf("Expected default payment cap 19.1, got %v", got.PaymentDefaultHigh)
	}
}

// TestAPISummary tests the KPI payload with the payment cap widened
func TestAPISummary(t *testing.T) {
	h := newTestAPI(t, &stubSource{table: dashTable()})

	w := doGet(t, h, "/api/summary?pay_max=100")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var got struct {
		NoData   bool        `json:"no_data"`
		BuildID  string      `json:"build_id"`
		Enriched bool        `json:"enriched"`
		RowCount int         `json:"row_count"`
		KPIs     report.KPIs `json:"kpis"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got.NoData {
		t.Fatal("Expected data")
	}
	if got.BuildID != "test-build" || got.RowCount != 3 {
		t.Errorf("Expected build test-build with 3 rows, got %s with %d", got.BuildID, got.RowCount)
	}
	if got.KPIs.TotalOrders != 2 || got.KPIs.TotalRevenue != 54 {
		t.Errorf("Expected 2 orders and revenue 54, got %d and %v", got.KPIs.TotalOrders, got.KPIs.TotalRevenue)
	}
	if got.KPIs.AvgOrderValue != 18.5 {
		t.Errorf("Expected order value 18.5, got %v", got.KPIs.AvgOrderValue)
	}
}

// TestAPISummaryNoData tests the no-data marker for an empty subset
func TestAPISummaryNoData(t *testing.T) {
	h := newTestAPI(t, &stubSource{table: dashTable()})

	w := doGet(t, h, "/api/summary?filtered=1")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got["no_data"] != true {
		t.Errorf("Expected no_data true, got %v", got["no_data"])
	}
}

// TestAPICharts tests the full report payload
func TestAPICharts(t *testing.T) {
	h := newTestAPI(t, &stubSource{table: dashTable()})

	w := doGet(t, h, "/api/charts?pay_max=100")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var got report.Report
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got.RowCount != 3 {
		t.Errorf("Expected 3 rows, got %d", got.RowCount)
	}
	if len(got.OrdersPerMonth) != 2 || got.OrdersPerMonth[0].Month != "2017-05" {
		t.Errorf("Expected months [2017-05 2018-01], got %v", got.OrdersPerMonth)
	}
	if len(got.TopSellers) != 2 {
		t.Errorf("Expected 2 sellers, got %d", len(got.TopSellers))
	}
}

// TestAPISellers tests the seller listing and its limit handling
func TestAPISellers(t *testing.T) {
	h := newTestAPI(t, &stubSource{table: dashTable()})

	var got struct {
		Sellers []report.SellerRow `json:"sellers"`
		Count   int                `json:"count"`
	}

	w := doGet(t, h, "/api/sellers?pay_max=100")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got.Count != 2 || got.Sellers[0].SellerID != "seller_alpha" {
		t.Errorf("Expected seller_alpha first of 2, got %+v", got)
	}

	w = doGet(t, h, "/api/sellers?pay_max=100&limit=1")
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got.Count != 1 {
		t.Errorf("Expected the limit to apply, got %d sellers", got.Count)
	}

	// Limits beyond the cap just fall back to the cap.
	w = doGet(t, h, "/api/sellers?pay_max=100&limit=500")
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for an oversized limit, got %d", w.Code)
	}

	for _, bad := range []string{"0", "-3", "abc"} {
		w = doGet(t, h, "/api/sellers?limit="+bad)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for limit %q, got %d", bad, w.Code)
		}
	}
}

// TestAPISourceFailure tests the error response when the table cannot load
func TestAPISourceFailure(t *testing.T) {
	h := newTestAPI(t, &stubSource{err: fmt.Errorf("disk gone")})

	for _, path := range []string{"/api/options", "/api/summary", "/api/charts", "/api/sellers"} {
		w := doGet(t, h, path)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500 for %s, got %d", path, w.Code)
		}
	}
}
