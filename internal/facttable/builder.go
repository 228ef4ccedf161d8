package facttable

import (
	"time"

	"vitrine/adapters/tabular"
	"vitrine/domain/sales"
	"vitrine/internal/errors"

	"github.com/google/uuid"
)

type locationRec struct {
	state string
	city  string
}

type itemRec struct {
	itemID    string
	productID string
	sellerID  string
	price     float64
	freight   float64
}

// Build runs the fixed join chain over the loaded extracts and returns the
// order-item-grain fact table:
//
//	orders ⋈ customers ⋈ items ⋈ products ⋈ translations ⋈ sellers
//	       ⋈ payment sums ⋈ review means
//
// All joins are left-outer from the orders/items side, so every order-item
// row survives with empty fields where a dimension has no match. Payment
// sums and review means are aggregated to order grain before joining.
func Build(src *Sources) (*sales.Table, error) {
	paySums, err := PaymentSums(src.Payments)
	if err != nil {
		return nil, err
	}
	revMeans, err := ReviewMeans(src.Reviews)
	if err != nil {
		return nil, err
	}

	customers := locationIndex(src.Customers, "customer_id", "customer_state", "customer_city")
	sellers := locationIndex(src.Sellers, "seller_id", "seller_state", "seller_city")
	products := pairIndex(src.Products, "product_id", "product_category_name")
	translations := pairIndex(src.Translations, "product_category_name", "product_category_name_english")

	items, err := itemsByOrder(src.Items)
	if err != nil {
		return nil, err
	}

	orderCol := src.Orders.Col("order_id")
	custCol := src.Orders.Col("customer_id")
	tsCol := src.Orders.Col("order_purchase_timestamp")

	var rows []sales.FactRow
	for i, orderRow := range src.Orders.Rows {
		purchasedAt, err := parseTimestamp(orderRow[tsCol])
		if err != nil {
			return nil, errors.ParseFailed(src.Orders.File, i+2, err)
		}

		base := sales.FactRow{
			OrderID:     orderRow[orderCol],
			CustomerID:  orderRow[custCol],
			PurchasedAt: purchasedAt,
			OrderYear:   purchasedAt.Year(),
			OrderMonth:  sales.MonthKey(purchasedAt),
		}
		if loc, ok := customers[base.CustomerID]; ok {
			base.CustomerState = loc.state
			base.CustomerCity = loc.city
		}
		if sum, ok := paySums[base.OrderID]; ok {
			base.PaymentValue = sum
			base.HasPayment = true
		}
		if mean, ok := revMeans[base.OrderID]; ok {
			base.ReviewScore = mean
			base.HasReview = true
		}

		orderItems := items[base.OrderID]
		if len(orderItems) == 0 {
			// Orders without items keep one row with null item fields.
			base.CategoryEnglish = sales.UnknownCategory
			rows = append(rows, base)
			continue
		}

		for _, item := range orderItems {
			row := base
			row.HasItem = true
			row.OrderItemID = item.itemID
			row.ProductID = item.productID
			row.SellerID = item.sellerID
			row.Price = item.price
			row.FreightValue = item.freight
			row.CategoryEnglish = englishCategory(products, translations, item.productID)
			if loc, ok := sellers[item.sellerID]; ok {
				row.SellerState = loc.state
				row.SellerCity = loc.city
			}
			rows = append(rows, row)
		}
	}

	return &sales.Table{
		BuildID: uuid.NewString(),
		BuiltAt: time.Now().UTC(),
		Rows:    rows,
	}, nil
}

// BuildFromDir loads the extracts from dir and builds the fact table.
func BuildFromDir(reader *tabular.Reader, dir string) (*sales.Table, error) {
	src, err := LoadSources(reader, dir)
	if err != nil {
		return nil, err
	}
	return Build(src)
}

// englishCategory resolves product -> category -> English name, defaulting
// to "Unknown" whenever the chain breaks.
func englishCategory(products, translations map[string]string, productID string) string {
	category, ok := products[productID]
	if !ok || category == "" {
		return sales.UnknownCategory
	}
	english, ok := translations[category]
	if !ok || english == "" {
		return sales.UnknownCategory
	}
	return english
}

// locationIndex maps a key column to its state/city pair. First occurrence
// wins so duplicate dimension keys cannot multiply fact rows.
func locationIndex(e *tabular.Extract, keyCol, stateCol, cityCol string) map[string]locationRec {
	k, s, c := e.Col(keyCol), e.Col(stateCol), e.Col(cityCol)
	index := make(map[string]locationRec, len(e.Rows))
	for _, row := range e.Rows {
		key := row[k]
		if key == "" {
			continue
		}
		if _, seen := index[key]; !seen {
			index[key] = locationRec{state: row[s], city: row[c]}
		}
	}
	return index
}

// pairIndex maps one column to another, first occurrence wins.
func pairIndex(e *tabular.Extract, keyCol, valueCol string) map[string]string {
	k, v := e.Col(keyCol), e.Col(valueCol)
	index := make(map[string]string, len(e.Rows))
	for _, row := range e.Rows {
		key := row[k]
		if key == "" {
			continue
		}
		if _, seen := index[key]; !seen {
			index[key] = row[v]
		}
	}
	return index
}

// itemsByOrder groups item rows by order_id preserving file order.
func itemsByOrder(e *tabular.Extract) (map[string][]itemRec, error) {
	orderCol := e.Col("order_id")
	itemCol := e.Col("order_item_id")
	productCol := e.Col("product_id")
	sellerCol := e.Col("seller_id")
	priceCol := e.Col("price")
	freightCol := e.Col("freight_value")

	grouped := make(map[string][]itemRec)
	for i, row := range e.Rows {
		price, err := parseFloatCell(e.File, i+2, "price", row[priceCol])
		if err != nil {
			return nil, err
		}
		freight, err := parseFloatCell(e.File, i+2, "freight_value", row[freightCol])
		if err != nil {
			return nil, err
		}
		grouped[row[orderCol]] = append(grouped[row[orderCol]], itemRec{
			itemID:    row[itemCol],
			productID: row[productCol],
			sellerID:  row[sellerCol],
			price:     price,
			freight:   freight,
		})
	}
	return grouped, nil
}
