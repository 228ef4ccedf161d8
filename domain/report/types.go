package report

// KPIs are the headline scalars of a report.
//
// TotalRevenue sums the broadcast payment_value over item rows, so orders
// with several items are counted once per item. That overcount is kept for
// the revenue tile; AvgOrderValue counts each order once instead.
type KPIs struct {
	TotalOrders   int     `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	AvgOrderValue float64 `json:"avg_order_value"`
	AvgReview     float64 `json:"avg_review"`
	HasReview     bool    `json:"has_review"`
	AvgFreight    float64 `json:"avg_freight"`
	HasFreight    bool    `json:"has_freight"`
}

// StateCount is one treemap tile: distinct entities per state.
type StateCount struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

// StateValue is one bar of the revenue-by-state chart.
type StateValue struct {
	State   string  `json:"state"`
	Revenue float64 `json:"revenue"`
}

// CategoryCount is one bar of the top-categories chart: distinct orders
// per English category name.
type CategoryCount struct {
	Category string `json:"category"`
	Orders   int    `json:"orders"`
}

// MonthCount is one point of the orders-per-month series.
type MonthCount struct {
	Month  string `json:"month"`
	Orders int    `json:"orders"`
}

// MonthValue is one point of the monthly revenue series.
type MonthValue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// BoxSummary is the five-number summary of freight values for one review
// score bucket.
type BoxSummary struct {
	Score  float64 `json:"score"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// SellerRow is one row of the top-sellers table.
type SellerRow struct {
	SellerID string `json:"seller_id"`
	State    string `json:"seller_state"`
	City     string `json:"seller_city"`
	Orders   int    `json:"orders"`
}

// LabelShare is the global share of one sentiment label, in percent.
type LabelShare struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
}

// SentimentSeries carries per-month sentiment shares. Shares[label] is
// aligned with Months and each month's shares sum to 1.
type SentimentSeries struct {
	Months []string             `json:"months"`
	Labels []string             `json:"labels"`
	Shares map[string][]float64 `json:"shares"`
}

// SentimentSummary groups the sentiment aggregates of an enriched table.
type SentimentSummary struct {
	Shares   []LabelShare    `json:"shares"`
	OverTime SentimentSeries `json:"over_time"`
}

// BaselineMetrics reports the least-squares fit of review score on freight
// value: the model-quality tile of the static dashboard.
type BaselineMetrics struct {
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
	R2   float64 `json:"r2"`
	N    int     `json:"n"`
}

// Report is everything one render needs. When NoData is set no aggregate
// was computed and every other field is zero.
type Report struct {
	NoData   bool `json:"no_data"`
	RowCount int  `json:"row_count"`

	KPIs KPIs `json:"kpis"`

	CustomerStates  []StateCount    `json:"customer_states"`
	SellerStates    []StateCount    `json:"seller_states"`
	TopCategories   []CategoryCount `json:"top_categories"`
	OrdersPerMonth  []MonthCount    `json:"orders_per_month"`
	MonthlyRevenue  []MonthValue    `json:"monthly_revenue"`
	RevenueByState  []StateValue    `json:"revenue_by_state"`
	FreightByReview []BoxSummary    `json:"freight_by_review"`
	TopSellers      []SellerRow     `json:"top_sellers"`

	Sentiment *SentimentSummary `json:"sentiment,omitempty"`
	Baseline  *BaselineMetrics  `json:"baseline,omitempty"`
}

// NoDataReport is the short-circuit result for an empty filtered subset.
func NoDataReport() *Report {
	return &Report{NoData: true}
}
