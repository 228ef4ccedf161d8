package testkit

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"vitrine/domain/sales"
)

// extractTimestampLayout matches the timestamp format of the real extracts.
const extractTimestampLayout = "2006-01-02 15:04:05"

// OlistGeneratorConfig configures the synthetic extract generator
type OlistGeneratorConfig struct {
	CustomerCount     int       `json:"customer_count"`
	SellerCount       int       `json:"seller_count"`
	ProductCount      int       `json:"product_count"`
	OrderCount        int       `json:"order_count"`
	ItemlessOrderRate float64   `json:"itemless_order_rate"`
	NoPaymentRate     float64   `json:"no_payment_rate"`
	SplitPaymentRate  float64   `json:"split_payment_rate"`
	NoReviewRate      float64   `json:"no_review_rate"`
	SecondReviewRate  float64   `json:"second_review_rate"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	Seed              int64     `json:"seed"`
}

// DefaultOlistConfig returns sensible defaults for synthetic extracts
func DefaultOlistConfig() OlistGeneratorConfig {
	return OlistGeneratorConfig{
		CustomerCount:     400,
		SellerCount:       60,
		ProductCount:      120,
		OrderCount:        500,
		ItemlessOrderRate: 0.02,
		NoPaymentRate:     0.05,
		SplitPaymentRate:  0.20,
		NoReviewRate:      0.05,
		SecondReviewRate:  0.07,
		StartDate:         time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2018, 8, 31, 23, 59, 59, 0, time.UTC),
		Seed:              42,
	}
}

// OlistGenerator generates a consistent synthetic marketplace: the eight raw
// extracts plus the pre-joined enriched view derived from the same entities.
type OlistGenerator struct {
	config OlistGeneratorConfig
	rng    *rand.Rand
}

// NewOlistGenerator creates a new extract generator
func NewOlistGenerator(config OlistGeneratorConfig) *OlistGenerator {
	return &OlistGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// SyntheticData holds every generated table as rows of strings, header row
// first, exactly as written to disk. Tests assert against these tables
// without re-reading the files.
type SyntheticData struct {
	Orders       [][]string
	Customers    [][]string
	Sellers      [][]string
	Items        [][]string
	Payments     [][]string
	Products     [][]string
	Reviews      [][]string
	Translations [][]string
	Enriched     [][]string

	// FactRows is the row count the join chain produces from these
	// extracts: one row per order item plus one per itemless order.
	FactRows int
	// RawRevenue is the sum of the order payment total broadcast to every
	// fact row of its order, the same overcount the revenue KPI reports.
	RawRevenue float64
}

type synthParty struct {
	id    string
	state string
	city  string
	zip   string
}

type synthProduct struct {
	id       string
	category string
}

type synthItem struct {
	productID string
	seller    synthParty
	price     float64
	freight   float64
	// english is the category name the join chain resolves for this
	// product, Unknown when the product or translation is missing.
	english string
}

type synthOrder struct {
	id       string
	customer synthParty
	placedAt time.Time
	status   string
	items    []synthItem
	payments []float64
	reviews  []int
}

// Category names mirror the live marketplace. pc_gamer deliberately has no
// translation row so unmatched categories appear in the output.
var olistCategories = []struct {
	portuguese string
	english    string
	weight     float64
}{
	{"cama_mesa_banho", "bed_bath_table", 0.16},
	{"beleza_saude", "health_beauty", 0.15},
	{"esporte_lazer", "sports_leisure", 0.13},
	{"moveis_decoracao", "furniture_decor", 0.12},
	{"informatica_acessorios", "computers_accessories", 0.11},
	{"utilidades_domesticas", "housewares", 0.09},
	{"relogios_presentes", "watches_gifts", 0.08},
	{"telefonia", "telephony", 0.06},
	{"brinquedos", "toys", 0.05},
	{"automotivo", "auto", 0.03},
	{"pc_gamer", "", 0.02},
}

var (
	customerStates       = []string{"SP", "RJ", "MG", "RS", "PR", "SC", "BA", "DF", "ES", "GO"}
	customerStateWeights = []float64{0.42, 0.13, 0.12, 0.07, 0.06, 0.05, 0.05, 0.04, 0.03, 0.03}

	// Sellers cluster harder around the Sao Paulo hub than customers do.
	sellerStates       = []string{"SP", "PR", "MG", "SC", "RJ", "RS", "GO", "DF"}
	sellerStateWeights = []float64{0.60, 0.09, 0.08, 0.07, 0.06, 0.04, 0.03, 0.03}
)

var stateCities = map[string][]string{
	"SP": {"sao paulo", "campinas", "guarulhos"},
	"RJ": {"rio de janeiro", "niteroi"},
	"MG": {"belo horizonte", "uberlandia"},
	"RS": {"porto alegre", "caxias do sul"},
	"PR": {"curitiba", "londrina"},
	"SC": {"florianopolis", "joinville"},
	"BA": {"salvador", "feira de santana"},
	"DF": {"brasilia"},
	"ES": {"vitoria", "vila velha"},
	"GO": {"goiania", "anapolis"},
}

// Generate produces one synthetic marketplace. The same seed always yields
// the same tables, and the enriched view agrees with the raw extracts on
// every value.
func (g *OlistGenerator) Generate() *SyntheticData {
	g.rng = rand.New(rand.NewSource(g.config.Seed))

	customers := g.generateCustomers()
	sellers := g.generateSellers()
	products := g.generateProducts()
	orders := g.generateOrders(customers, sellers, products)

	data := &SyntheticData{
		Customers:    customerRows(customers),
		Sellers:      sellerRows(sellers),
		Products:     productRows(products),
		Translations: translationRows(),
	}
	g.fillOrderTables(data, orders)
	data.Enriched = enrichedRows(orders)

	for _, order := range orders {
		span := len(order.items)
		if span == 0 {
			span = 1
		}
		data.FactRows += span
		if len(order.payments) > 0 {
			data.RawRevenue += paymentTotal(order) * float64(span)
		}
	}

	return data
}

func (g *OlistGenerator) generateCustomers() []synthParty {
	customers := make([]synthParty, g.config.CustomerCount)
	for i := range customers {
		state := g.pickWeighted(customerStates, customerStateWeights)
		customers[i] = synthParty{
			id:    fmt.Sprintf("customer_%04d", i+1),
			state: state,
			city:  g.pickCity(state),
			zip:   fmt.Sprintf("%05d", 1000+g.rng.Intn(98999)),
		}
	}
	return customers
}

func (g *OlistGenerator) generateSellers() []synthParty {
	sellers := make([]synthParty, g.config.SellerCount)
	for i := range sellers {
		state := g.pickWeighted(sellerStates, sellerStateWeights)
		sellers[i] = synthParty{
			id:    fmt.Sprintf("seller_%04d", i+1),
			state: state,
			city:  g.pickCity(state),
			zip:   fmt.Sprintf("%05d", 1000+g.rng.Intn(98999)),
		}
	}
	return sellers
}

func (g *OlistGenerator) generateProducts() []synthProduct {
	products := make([]synthProduct, g.config.ProductCount)
	for i := range products {
		category := olistCategories[g.weightedIndex(categoryWeights())].portuguese
		if g.rng.Float64() < 0.04 { // some listings never declare a category
			category = ""
		}
		products[i] = synthProduct{
			id:       fmt.Sprintf("product_%04d", i+1),
			category: category,
		}
	}
	return products
}

func (g *OlistGenerator) generateOrders(customers, sellers []synthParty, products []synthProduct) []synthOrder {
	orders := make([]synthOrder, g.config.OrderCount)
	ghosts := 0

	for i := range orders {
		order := synthOrder{
			id:       fmt.Sprintf("order_%05d", i+1),
			customer: customers[g.rng.Intn(len(customers))],
			placedAt: g.randomTimeInRange(g.config.StartDate, g.config.EndDate),
		}

		if g.rng.Float64() < g.config.ItemlessOrderRate {
			// Orders canceled before fulfillment carry no item rows.
			order.status = "unavailable"
		} else {
			order.status = g.pickWeighted(
				[]string{"delivered", "shipped", "canceled"},
				[]float64{0.96, 0.03, 0.01},
			)
			itemCount := []int{1, 2, 3, 4}[g.weightedIndex([]float64{0.78, 0.13, 0.06, 0.03})]
			for n := 0; n < itemCount; n++ {
				product := products[g.rng.Intn(len(products))]
				if g.rng.Float64() < 0.02 {
					// Reference a product the products extract never lists.
					ghosts++
					product = synthProduct{id: fmt.Sprintf("product_ghost_%02d", ghosts)}
					order.items = append(order.items, g.makeItem(product.id, sellers, sales.UnknownCategory))
					continue
				}
				order.items = append(order.items, g.makeItem(product.id, sellers, englishFor(product.category)))
			}
		}

		if g.rng.Float64() >= g.config.NoPaymentRate {
			total := g.orderTotal(order)
			if g.rng.Float64() < g.config.SplitPaymentRate {
				first := round2(total * (0.3 + 0.4*g.rng.Float64()))
				order.payments = []float64{first, round2(total - first)}
			} else {
				order.payments = []float64{total}
			}
		}

		if g.rng.Float64() >= g.config.NoReviewRate {
			order.reviews = []int{g.pickScore()}
			if g.rng.Float64() < g.config.SecondReviewRate {
				order.reviews = append(order.reviews, g.pickScore())
			}
		}

		orders[i] = order
	}

	return orders
}

func (g *OlistGenerator) makeItem(productID string, sellers []synthParty, english string) synthItem {
	price := round2(15 + g.rng.Float64()*320)
	return synthItem{
		productID: productID,
		seller:    sellers[g.rng.Intn(len(sellers))],
		price:     price,
		freight:   round2(4 + price*0.08 + g.rng.Float64()*18),
		english:   english,
	}
}

// orderTotal is what the customer pays: items plus freight, or a flat
// amount for orders that never got item rows.
func (g *OlistGenerator) orderTotal(order synthOrder) float64 {
	if len(order.items) == 0 {
		return round2(20 + g.rng.Float64()*180)
	}
	total := 0.0
	for _, item := range order.items {
		total += item.price + item.freight
	}
	return round2(total)
}

func (g *OlistGenerator) fillOrderTables(data *SyntheticData, orders []synthOrder) {
	data.Orders = [][]string{{"order_id", "customer_id", "order_status", "order_purchase_timestamp"}}
	data.Items = [][]string{{"order_id", "order_item_id", "product_id", "seller_id", "shipping_limit_date", "price", "freight_value"}}
	data.Payments = [][]string{{"order_id", "payment_sequential", "payment_type", "payment_installments", "payment_value"}}
	data.Reviews = [][]string{{"review_id", "order_id", "review_score", "review_creation_date"}}

	reviewSeq := 0
	for _, order := range orders {
		ts := order.placedAt.Format(extractTimestampLayout)
		data.Orders = append(data.Orders, []string{order.id, order.customer.id, order.status, ts})

		for i, item := range order.items {
			limit := order.placedAt.AddDate(0, 0, 3+g.rng.Intn(8)).Format(extractTimestampLayout)
			data.Items = append(data.Items, []string{
				order.id,
				strconv.Itoa(i + 1),
				item.productID,
				item.seller.id,
				limit,
				formatAmount(item.price),
				formatAmount(item.freight),
			})
		}

		for i, value := range order.payments {
			method := g.pickWeighted(
				[]string{"credit_card", "boleto", "voucher", "debit_card"},
				[]float64{0.74, 0.19, 0.04, 0.03},
			)
			installments := 1
			if method == "credit_card" {
				installments = 1 + g.rng.Intn(10)
			}
			data.Payments = append(data.Payments, []string{
				order.id,
				strconv.Itoa(i + 1),
				method,
				strconv.Itoa(installments),
				formatAmount(value),
			})
		}

		for _, score := range order.reviews {
			reviewSeq++
			created := order.placedAt.AddDate(0, 0, 5+g.rng.Intn(16)).Format(extractTimestampLayout)
			data.Reviews = append(data.Reviews, []string{
				fmt.Sprintf("review_%05d", reviewSeq),
				order.id,
				strconv.Itoa(score),
				created,
			})
		}
	}
}

func customerRows(customers []synthParty) [][]string {
	rows := [][]string{{"customer_id", "customer_unique_id", "customer_zip_code_prefix", "customer_city", "customer_state"}}
	for i, c := range customers {
		rows = append(rows, []string{c.id, fmt.Sprintf("unique_%04d", i+1), c.zip, c.city, c.state})
	}
	return rows
}

func sellerRows(sellers []synthParty) [][]string {
	rows := [][]string{{"seller_id", "seller_zip_code_prefix", "seller_city", "seller_state"}}
	for _, s := range sellers {
		rows = append(rows, []string{s.id, s.zip, s.city, s.state})
	}
	return rows
}

func productRows(products []synthProduct) [][]string {
	rows := [][]string{{"product_id", "product_category_name"}}
	for _, p := range products {
		rows = append(rows, []string{p.id, p.category})
	}
	return rows
}

func translationRows() [][]string {
	rows := [][]string{{"product_category_name", "product_category_name_english"}}
	for _, c := range olistCategories {
		if c.english != "" {
			rows = append(rows, []string{c.portuguese, c.english})
		}
	}
	return rows
}

// enrichedRows derives the pre-joined fact view from the same entities the
// raw extracts came from, mimicking an export that went through the
// sentiment labeling step.
func enrichedRows(orders []synthOrder) [][]string {
	rows := [][]string{{
		"order_id", "customer_id", "order_purchase_timestamp",
		"customer_state", "customer_city",
		"order_item_id", "product_id", "seller_id",
		"price", "freight_value",
		"product_category_name_english",
		"seller_state", "seller_city",
		"payment_value", "review_score", "sentiment_label",
	}}

	for _, order := range orders {
		payment := ""
		if len(order.payments) > 0 {
			payment = formatAmount(paymentTotal(order))
		}
		review, sentiment := "", ""
		if len(order.reviews) > 0 {
			mean := reviewMean(order)
			review = strconv.FormatFloat(mean, 'f', -1, 64)
			sentiment = sentimentFor(mean)
		}
		ts := order.placedAt.Format(extractTimestampLayout)

		if len(order.items) == 0 {
			rows = append(rows, []string{
				order.id, order.customer.id, ts,
				order.customer.state, order.customer.city,
				"", "", "", "", "",
				sales.UnknownCategory,
				"", "",
				payment, review, sentiment,
			})
			continue
		}
		for i, item := range order.items {
			rows = append(rows, []string{
				order.id, order.customer.id, ts,
				order.customer.state, order.customer.city,
				strconv.Itoa(i + 1), item.productID, item.seller.id,
				formatAmount(item.price), formatAmount(item.freight),
				item.english,
				item.seller.state, item.seller.city,
				payment, review, sentiment,
			})
		}
	}

	return rows
}

// WriteExtracts writes the eight raw CSVs into dir under the filenames the
// loader resolves.
func (d *SyntheticData) WriteExtracts(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	files := []struct {
		name string
		rows [][]string
	}{
		{"olist_orders_dataset.csv", d.Orders},
		{"olist_customers_dataset.csv", d.Customers},
		{"olist_sellers_dataset.csv", d.Sellers},
		{"olist_order_items_dataset.csv", d.Items},
		{"olist_order_payments_dataset.csv", d.Payments},
		{"olist_products_dataset.csv", d.Products},
		{"olist_order_reviews_dataset.csv", d.Reviews},
		{"product_category_name_translation.csv", d.Translations},
	}
	for _, f := range files {
		if err := writeCSV(filepath.Join(dir, f.name), f.rows); err != nil {
			return err
		}
	}
	return nil
}

// WriteEnriched writes the pre-joined sentiment fact file to path.
func (d *SyntheticData) WriteEnriched(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return writeCSV(path, d.Enriched)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return csv.NewWriter(f).WriteAll(rows)
}

// Helper methods for random value generation

func (g *OlistGenerator) randomTimeInRange(start, end time.Time) time.Time {
	if start.After(end) {
		start, end = end, start
	}
	duration := end.Sub(start)
	if duration <= 0 {
		return start
	}
	return start.Add(time.Duration(g.rng.Int63n(int64(duration))))
}

func (g *OlistGenerator) pickWeighted(options []string, weights []float64) string {
	return options[g.weightedIndex(weights)]
}

func (g *OlistGenerator) weightedIndex(weights []float64) int {
	r := g.rng.Float64()
	cumulative := 0.0
	for i, weight := range weights {
		cumulative += weight
		if r <= cumulative {
			return i
		}
	}
	return 0
}

func (g *OlistGenerator) pickCity(state string) string {
	cities := stateCities[state]
	return cities[g.rng.Intn(len(cities))]
}

// pickScore skews toward five stars the way real marketplace reviews do.
func (g *OlistGenerator) pickScore() int {
	scores := []int{5, 4, 3, 2, 1}
	return scores[g.weightedIndex([]float64{0.57, 0.19, 0.08, 0.04, 0.12})]
}

func categoryWeights() []float64 {
	weights := make([]float64, len(olistCategories))
	for i, c := range olistCategories {
		weights[i] = c.weight
	}
	return weights
}

func englishFor(category string) string {
	if category == "" {
		return sales.UnknownCategory
	}
	for _, c := range olistCategories {
		if c.portuguese == category {
			if c.english == "" {
				return sales.UnknownCategory
			}
			return c.english
		}
	}
	return sales.UnknownCategory
}

func paymentTotal(order synthOrder) float64 {
	total := 0.0
	for _, v := range order.payments {
		total += v
	}
	return total
}

func reviewMean(order synthOrder) float64 {
	sum := 0
	for _, s := range order.reviews {
		sum += s
	}
	return float64(sum) / float64(len(order.reviews))
}

func sentimentFor(mean float64) string {
	switch {
	case mean >= 4:
		return "positive"
	case mean >= 3:
		return "neutral"
	default:
		return "negative"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
