package facttable

import (
	"time"

	"vitrine/adapters/tabular"
	"vitrine/domain/sales"
	"vitrine/internal/errors"

	"github.com/google/uuid"
)

// EnrichedColumns is the required column set of a pre-joined fact file
// with sentiment labels. order_year/order_month are re-derived from the
// timestamp, so exported files need not carry them.
var EnrichedColumns = []string{
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
	"sentiment_label",
}

// LoadEnriched reads a pre-joined fact file (fact rows plus a
// sentiment_label column), bypassing the builder. Unlike the raw
// extracts, empty numeric cells here are genuine nulls: they encode the
// builder's own unmatched left joins.
func LoadEnriched(reader *tabular.Reader, path string) (*sales.Table, error) {
	e, err := reader.Read(path, EnrichedColumns)
	if err != nil {
		return nil, err
	}

	col := func(name string) int { return e.Col(name) }
	var (
		orderCol    = col("order_id")
		custCol     = col("customer_id")
		tsCol       = col("order_purchase_timestamp")
		custStaCol  = col("customer_state")
		custCityCol = col("customer_city")
		itemCol     = col("order_item_id")
		prodCol     = col("product_id")
		sellCol     = col("seller_id")
		priceCol    = col("price")
		freightCol  = col("freight_value")
		catCol      = col("product_category_name_english")
		sellStaCol  = col("seller_state")
		sellCityCol = col("seller_city")
		payCol      = col("payment_value")
		revCol      = col("review_score")
		sentCol     = col("sentiment_label")
	)

	rows := make([]sales.FactRow, 0, len(e.Rows))
	for i, src := range e.Rows {
		purchasedAt, err := parseTimestamp(src[tsCol])
		if err != nil {
			return nil, errors.ParseFailed(e.File, i+2, err)
		}

		row := sales.FactRow{
			OrderID:         src[orderCol],
			CustomerID:      src[custCol],
			PurchasedAt:     purchasedAt,
			CustomerState:   src[custStaCol],
			CustomerCity:    src[custCityCol],
			OrderItemID:     src[itemCol],
			ProductID:       src[prodCol],
			SellerID:        src[sellCol],
			CategoryEnglish: src[catCol],
			SellerState:     src[sellStaCol],
			SellerCity:      src[sellCityCol],
			OrderYear:       purchasedAt.Year(),
			OrderMonth:      sales.MonthKey(purchasedAt),
			SentimentLabel:  src[sentCol],
		}
		if row.CategoryEnglish == "" {
			row.CategoryEnglish = sales.UnknownCategory
		}
		row.HasItem = row.OrderItemID != ""
		if row.HasItem {
			if row.Price, err = nullableFloat(e.File, i+2, "price", src[priceCol]); err != nil {
				return nil, err
			}
			if row.FreightValue, err = nullableFloat(e.File, i+2, "freight_value", src[freightCol]); err != nil {
				return nil, err
			}
		}
		if src[payCol] != "" {
			if row.PaymentValue, err = nullableFloat(e.File, i+2, "payment_value", src[payCol]); err != nil {
				return nil, err
			}
			row.HasPayment = true
		}
		if src[revCol] != "" {
			if row.ReviewScore, err = nullableFloat(e.File, i+2, "review_score", src[revCol]); err != nil {
				return nil, err
			}
			row.HasReview = true
		}

		rows = append(rows, row)
	}

	return &sales.Table{
		BuildID:  uuid.NewString(),
		BuiltAt:  time.Now().UTC(),
		Enriched: true,
		Rows:     rows,
	}, nil
}

// nullableFloat parses a cell that may be empty; empty means zero here
// because callers gate on presence separately.
func nullableFloat(file string, row int, column, cell string) (float64, error) {
	if cell == "" {
		return 0, nil
	}
	v, err := parseFloat(cell)
	if err != nil {
		return 0, errors.ParseFailed(file, row, err)
	}
	return v, nil
}
