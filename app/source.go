package app

import (
	"context"

	"vitrine/domain/sales"
	"vitrine/ports"
)

// boundSource fixes a fact service to one configured source so surfaces can
// ask for "the" table without knowing where it comes from.
type boundSource struct {
	facts    *FactService
	dir      string
	enriched string
}

// NewBoundSource binds facts to the configured source. A non-empty enriched
// path wins over the raw extract directory.
func NewBoundSource(facts *FactService, dir, enriched string) ports.FactSource {
	return &boundSource{facts: facts, dir: dir, enriched: enriched}
}

func (b *boundSource) FactTable(ctx context.Context) (*sales.Table, error) {
	if b.enriched != "" {
		return b.facts.Enriched(b.enriched)
	}
	return b.facts.Table(b.dir)
}
