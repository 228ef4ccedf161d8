package facttable

import (
	"strconv"

	"vitrine/adapters/tabular"

	"golang.org/x/sync/errgroup"
)

// Sources holds the eight raw extracts a build starts from.
type Sources struct {
	Orders       *tabular.Extract
	Customers    *tabular.Extract
	Sellers      *tabular.Extract
	Items        *tabular.Extract
	Payments     *tabular.Extract
	Products     *tabular.Extract
	Reviews      *tabular.Extract
	Translations *tabular.Extract
}

// LoadSources reads all extracts from dir concurrently. The first failure
// fails the whole load, so a build still completes or fails atomically.
func LoadSources(reader *tabular.Reader, dir string) (*Sources, error) {
	src := &Sources{}

	var g errgroup.Group
	load := func(dst **tabular.Extract, file string, columns []string) {
		g.Go(func() error {
			e, err := reader.Read(resolvePath(dir, file), columns)
			if err != nil {
				return err
			}
			*dst = e
			return nil
		})
	}

	load(&src.Orders, OrdersFile, OrdersColumns)
	load(&src.Customers, CustomersFile, CustomersColumns)
	load(&src.Sellers, SellersFile, SellersColumns)
	load(&src.Items, ItemsFile, ItemsColumns)
	load(&src.Payments, PaymentsFile, PaymentsColumns)
	load(&src.Products, ProductsFile, ProductsColumns)
	load(&src.Reviews, ReviewsFile, ReviewsColumns)
	load(&src.Translations, TranslationsFile, TranslationsColumns)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return src, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
