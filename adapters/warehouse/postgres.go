package warehouse

import (
	"context"
	"fmt"
	"strings"

	"vitrine/domain/sales"
	"vitrine/internal"
	"vitrine/internal/errors"
	"vitrine/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// factColumns is the column list of the fact_orders warehouse table, in
// insert order. build_id ties every row to the build that produced it.
var factColumns = []string{
	"build_id",
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
	"sentiment_label",
}

const schema = `CREATE TABLE IF NOT EXISTS fact_orders (
	build_id                      TEXT NOT NULL,
	order_id                      TEXT NOT NULL,
	customer_id                   TEXT,
	order_purchase_timestamp      TIMESTAMPTZ NOT NULL,
	customer_state                TEXT,
	customer_city                 TEXT,
	order_item_id                 TEXT,
	product_id                    TEXT,
	seller_id                     TEXT,
	price                         DOUBLE PRECISION,
	freight_value                 DOUBLE PRECISION,
	product_category_name_english TEXT,
	seller_state                  TEXT,
	seller_city                   TEXT,
	payment_value                 DOUBLE PRECISION,
	review_score                  DOUBLE PRECISION,
	order_year                    INTEGER NOT NULL,
	order_month                   TEXT NOT NULL,
	sentiment_label               TEXT
)`

// Connect opens a PostgreSQL connection pool and verifies it with a ping.
func Connect(url string) (*sqlx.DB, error) {
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required for warehouse export")
	}
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, errors.ExportFailed("could not connect to warehouse", err)
	}
	return db, nil
}

// Exporter mirrors fact tables into the fact_orders warehouse table. Each
// export replaces the previous contents in a single transaction.
type Exporter struct {
	db        *sqlx.DB
	batchSize int
	logger    *internal.Logger
}

var _ ports.FactSink = (*Exporter)(nil)

// NewExporter creates an exporter writing in batches of batchSize rows.
func NewExporter(db *sqlx.DB, batchSize int, logger *internal.Logger) *Exporter {
	if batchSize <= 0 {
		batchSize = 500
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Exporter{db: db, batchSize: batchSize, logger: logger}
}

// EnsureSchema creates the fact_orders table when it does not exist.
func (e *Exporter) EnsureSchema(ctx context.Context) error {
	if _, err := e.db.ExecContext(ctx, schema); err != nil {
		return errors.ExportFailed("could not ensure fact_orders schema", err)
	}
	return nil
}

// Store truncates fact_orders and inserts the table's rows. Either every
// row lands or none does.
func (e *Exporter) Store(ctx context.Context, table *sales.Table) error {
	tx, err := e.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.ExportFailed("could not begin export transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `TRUNCATE fact_orders`); err != nil {
		return errors.ExportFailed("could not truncate fact_orders", err)
	}

	rows := table.Rows
	batches := 0
	for start := 0; start < len(rows); start += e.batchSize {
		end := start + e.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]

		stmt := insertStatement(len(batch))
		args := make([]interface{}, 0, len(batch)*len(factColumns))
		for i := range batch {
			args = append(args, rowArgs(table.BuildID, &batch[i])...)
		}
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			return errors.ExportFailed(fmt.Sprintf("could not insert rows %d-%d", start+1, end), err)
		}
		batches++
	}

	if err := tx.Commit(); err != nil {
		return errors.ExportFailed("could not commit export transaction", err)
	}

	e.logger.Info("warehouse export complete: %d rows in %d batches (build %s)", len(rows), batches, table.BuildID)
	return nil
}

// insertStatement builds a multi-row INSERT for n rows.
func insertStatement(n int) string {
	var b strings.Builder
	b.WriteString("INSERT INTO fact_orders (")
	b.WriteString(strings.Join(factColumns, ", "))
	b.WriteString(") VALUES ")
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		base := i * len(factColumns)
		for j := range factColumns {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", base+j+1)
		}
		b.WriteByte(')')
	}
	return b.String()
}

// rowArgs flattens one fact row into insert arguments. Absent numeric
// measures become NULLs.
func rowArgs(buildID string, r *sales.FactRow) []interface{} {
	var price, freight, payment, review interface{}
	if r.HasItem {
		price, freight = r.Price, r.FreightValue
	}
	if r.HasPayment {
		payment = r.PaymentValue
	}
	if r.HasReview {
		review = r.ReviewScore
	}
	var sentiment interface{}
	if r.SentimentLabel != "" {
		sentiment = r.SentimentLabel
	}
	return []interface{}{
		buildID,
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
		sentiment,
	}
}
