package facttable

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vitrine/internal/errors"
)

// Fixed extract file names of the Olist dataset layout.
const (
	OrdersFile       = "olist_orders_dataset.csv"
	CustomersFile    = "olist_customers_dataset.csv"
	SellersFile      = "olist_sellers_dataset.csv"
	ItemsFile        = "olist_order_items_dataset.csv"
	PaymentsFile     = "olist_order_payments_dataset.csv"
	ProductsFile     = "olist_products_dataset.csv"
	ReviewsFile      = "olist_order_reviews_dataset.csv"
	TranslationsFile = "product_category_name_translation.csv"
)

// Required columns per extract. Extra columns are ignored by the reader.
var (
	OrdersColumns       = []string{"order_id", "customer_id", "order_purchase_timestamp"}
	CustomersColumns    = []string{"customer_id", "customer_state", "customer_city"}
	SellersColumns      = []string{"seller_id", "seller_state", "seller_city"}
	ItemsColumns        = []string{"order_id", "order_item_id", "product_id", "seller_id", "price", "freight_value"}
	PaymentsColumns     = []string{"order_id", "payment_value"}
	ProductsColumns     = []string{"product_id", "product_category_name"}
	ReviewsColumns      = []string{"order_id", "review_score"}
	TranslationsColumns = []string{"product_category_name", "product_category_name_english"}
)

const timestampLayout = "2006-01-02 15:04:05"

// parseTimestamp accepts the dataset's native layout with RFC3339 as a
// fallback for re-exported files.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// resolvePath prefers the CSV extract and falls back to an .xlsx workbook
// with the same base name.
func resolvePath(dir, csvName string) string {
	csvPath := filepath.Join(dir, csvName)
	if _, err := os.Stat(csvPath); err == nil {
		return csvPath
	}
	xlsxPath := strings.TrimSuffix(csvPath, ".csv") + ".xlsx"
	if _, err := os.Stat(xlsxPath); err == nil {
		return xlsxPath
	}
	return csvPath
}

// parseFloatCell parses a numeric cell, rejecting empties: the raw
// extracts are dense and a hole means a malformed file.
func parseFloatCell(file string, row int, column, cell string) (float64, error) {
	if cell == "" {
		return 0, errors.ParseFailed(file, row, fmt.Errorf("empty %s value", column))
	}
	v, err := parseFloat(cell)
	if err != nil {
		return 0, errors.ParseFailed(file, row, fmt.Errorf("bad %s value %q", column, cell))
	}
	return v, nil
}
