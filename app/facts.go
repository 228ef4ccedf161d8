package app

import (
	"sync"

	"vitrine/adapters/tabular"
	"vitrine/domain/sales"
	"vitrine/internal"
	"vitrine/internal/facttable"
)

// FactService builds fact tables from raw extracts or a pre-enriched file
// and memoizes the result per source. Loads are serialized per service so a
// burst of first requests does not build the same table twice.
type FactService struct {
	reader  *tabular.Reader
	caching bool
	logger  *internal.Logger

	mu    sync.RWMutex
	cache map[string]*sales.Table
}

// NewFactService creates a fact service. With caching disabled every call
// rebuilds from disk.
func NewFactService(reader *tabular.Reader, caching bool, logger *internal.Logger) *FactService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &FactService{
		reader:  reader,
		caching: caching,
		logger:  logger,
		cache:   make(map[string]*sales.Table),
	}
}

// Table returns the fact table built from the raw extracts in dir.
func (s *FactService) Table(dir string) (*sales.Table, error) {
	return s.load("dir:"+dir, func() (*sales.Table, error) {
		return facttable.BuildFromDir(s.reader, dir)
	})
}

// Enriched returns the fact table loaded from a single enriched file.
func (s *FactService) Enriched(path string) (*sales.Table, error) {
	return s.load("file:"+path, func() (*sales.Table, error) {
		return facttable.LoadEnriched(s.reader, path)
	})
}

// Invalidate drops all cached tables. The next call per source rebuilds.
func (s *FactService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*sales.Table)
}

func (s *FactService) load(key string, build func() (*sales.Table, error)) (*sales.Table, error) {
	if s.caching {
		s.mu.RLock()
		table, ok := s.cache[key]
		s.mu.RUnlock()
		if ok {
			return table, nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.caching {
		if table, ok := s.cache[key]; ok {
			return table, nil
		}
	}

	table, err := build()
	if err != nil {
		s.logger.Error("fact table load failed for %s: %v", key, err)
		return nil, err
	}
	s.logger.Info("fact table ready: %d rows (build %s)", table.Len(), table.BuildID)

	if s.caching {
		s.cache[key] = table
	}
	return table, nil
}
