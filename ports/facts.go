package ports

import (
	"context"

	"vitrine/domain/sales"
)

// FactSource yields the fact table a surface renders from. Implementations
// decide whether the table comes from the raw extracts or from a
// pre-enriched file, and whether it is cached.
type FactSource interface {
	FactTable(ctx context.Context) (*sales.Table, error)
}

// FactSink persists a built fact table outside the process, such as an
// XLSX workbook or a warehouse table.
type FactSink interface {
	Store(ctx context.Context, table *sales.Table) error
}
