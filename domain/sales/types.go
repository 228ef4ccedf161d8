package sales

import (
	"time"
)

// UnknownCategory is the category assigned to items whose product has no
// English translation (or no product match at all) after the joins.
const UnknownCategory = "Unknown"

// MonthKeyLayout renders order_month keys ("2017-05").
const MonthKeyLayout = "2006-01"

// FactRow is one order-item after all joins. Text fields from unmatched
// left joins stay empty; the Has* flags track null numeric fields so that
// downstream aggregates can skip them instead of reading zeros.
type FactRow struct {
	OrderID       string    `json:"order_id"`
	CustomerID    string    `json:"customer_id"`
	PurchasedAt   time.Time `json:"order_purchase_timestamp"`
	CustomerState string    `json:"customer_state"`
	CustomerCity  string    `json:"customer_city"`
	OrderItemID   string    `json:"order_item_id"`
	ProductID     string    `json:"product_id"`
	SellerID      string    `json:"seller_id"`
	Price         float64   `json:"price"`
	FreightValue  float64   `json:"freight_value"`
	HasItem       bool      `json:"-"`

	// CategoryEnglish is never empty downstream of the builder.
	CategoryEnglish string `json:"product_category_name_english"`

	SellerState string `json:"seller_state"`
	SellerCity  string `json:"seller_city"`

	// PaymentValue is the order-level payment sum broadcast to every item
	// row of the order; ReviewScore is the order-level review mean.
	PaymentValue float64 `json:"payment_value"`
	HasPayment   bool    `json:"-"`
	ReviewScore  float64 `json:"review_score"`
	HasReview    bool    `json:"-"`

	OrderYear  int    `json:"order_year"`
	OrderMonth string `json:"order_month"`

	// SentimentLabel is only set on enriched tables.
	SentimentLabel string `json:"sentiment_label,omitempty"`
}

// MonthKey derives the "YYYY-MM" month key for a purchase timestamp.
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// Table is a built fact table. Rows are immutable after the build; BuildID
// and BuiltAt identify the build in logs, page footers and exports.
type Table struct {
	BuildID  string    `json:"build_id"`
	BuiltAt  time.Time `json:"built_at"`
	Enriched bool      `json:"enriched"`
	Rows     []FactRow `json:"rows"`
}

// Len returns the number of fact rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasSentiment reports whether sentiment aggregates can be computed.
func (t *Table) HasSentiment() bool {
	return t != nil && t.Enriched
}

// FactColumnNames is the canonical export column order for fact rows.
// Enriched tables append sentiment_label.
func FactColumnNames(enriched bool) []string {
	cols := []string{
		"order_id",
		"customer_id",
		"order_purchase_timestamp",
		"customer_state",
		"customer_city",
		"order_item_id",
		"product_id",
		"seller_id",
		"price",
		"freight_value",
		"product_category_name_english",
		"seller_state",
		"seller_city",
		"payment_value",
		"review_score",
		"order_year",
		"order_month",
	}
	if enriched {
		cols = append(cols, "sentiment_label")
	}
	return cols
}

// Values returns the row's cells in FactColumnNames order. Null numeric
// fields come out as nil so sinks can write empty cells / SQL NULLs.
func (r *FactRow) Values(enriched bool) []interface{} {
	var price, freight interface{}
	if r.HasItem {
		price, freight = r.Price, r.FreightValue
	}
	var payment interface{}
	if r.HasPayment {
		payment = r.PaymentValue
	}
	var review interface{}
	if r.HasReview {
		review = r.ReviewScore
	}
	vals := []interface{}{
		r.OrderID,
		r.CustomerID,
		r.PurchasedAt,
		r.CustomerState,
		r.CustomerCity,
		r.OrderItemID,
		r.ProductID,
		r.SellerID,
		price,
		freight,
		r.CategoryEnglish,
		r.SellerState,
		r.SellerCity,
		payment,
		review,
		r.OrderYear,
		r.OrderMonth,
	}
	if enriched {
		vals = append(vals, r.SentimentLabel)
	}
	return vals
}
