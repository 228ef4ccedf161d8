package app

import (
	"context"

	"vitrine/domain/sales"
	"vitrine/internal"
	"vitrine/internal/errors"
	"vitrine/ports"
)

// ExportService loads the fact table once and pushes it to one or more
// sinks, so a single build backs every export target.
type ExportService struct {
	source ports.FactSource
	logger *internal.Logger
}

// NewExportService creates an export service bound to source.
func NewExportService(source ports.FactSource, logger *internal.Logger) *ExportService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ExportService{source: source, logger: logger}
}

// Export stores the source table in every sink in order, stopping at the
// first failure. It returns the exported table so callers can report on it.
func (s *ExportService) Export(ctx context.Context, sinks ...ports.FactSink) (*sales.Table, error) {
	if len(sinks) == 0 {
		return nil, errors.ConfigInvalid("export requires at least one sink")
	}

	table, err := s.source.FactTable(ctx)
	if err != nil {
		return nil, err
	}

	for i, sink := range sinks {
		if err := sink.Store(ctx, table); err != nil {
			s.logger.Error("export stopped at sink %d of %d: %v", i+1, len(sinks), err)
			return nil, err
		}
	}
	s.logger.Info("export complete: %d fact rows (build %s)", table.Len(), table.BuildID)
	return table, nil
}
