package analytics

import (
	"sort"

	"vitrine/domain/report"
	"vitrine/domain/sales"

	"github.com/montanaflynn/stats"
)

// Chart dataset builders. Each one reduces the filtered fact rows to the
// shape a single dashboard panel consumes. Rows with an empty grouping key
// are skipped, mirroring how the source extracts treat missing dimensions.

// CustomerStateTree counts distinct customers per customer state,
// descending by count.
func CustomerStateTree(rows []sales.FactRow) []report.StateCount {
	byState := make(map[string]map[string]struct{})
	for i := range rows {
		r := &rows[i]
		if r.CustomerState == "" {
			continue
		}
		set, ok := byState[r.CustomerState]
		if !ok {
			set = make(map[string]struct{})
			byState[r.CustomerState] = set
		}
		set[r.CustomerID] = struct{}{}
	}
	return stateCounts(byState)
}

// SellerStateTree counts distinct sellers per seller state, descending by
// count.
func SellerStateTree(rows []sales.FactRow) []report.StateCount {
	byState := make(map[string]map[string]struct{})
	for i := range rows {
		r := &rows[i]
		if r.SellerState == "" || r.SellerID == "" {
			continue
		}
		set, ok := byState[r.SellerState]
		if !ok {
			set = make(map[string]struct{})
			byState[r.SellerState] = set
		}
		set[r.SellerID] = struct{}{}
	}
	return stateCounts(byState)
}

func stateCounts(byState map[string]map[string]struct{}) []report.StateCount {
	out := make([]report.StateCount, 0, len(byState))
	for state, set := range byState {
		out = append(out, report.StateCount{State: state, Count: len(set)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].State < out[j].State
	})
	return out
}

// TopCategories counts distinct orders per English category and keeps the
// top n, descending.
func TopCategories(rows []sales.FactRow, n int) []report.CategoryCount {
	byCat := make(map[string]map[string]struct{})
	for i := range rows {
		r := &rows[i]
		if r.CategoryEnglish == "" {
			continue
		}
		set, ok := byCat[r.CategoryEnglish]
		if !ok {
			set = make(map[string]struct{})
			byCat[r.CategoryEnglish] = set
		}
		set[r.OrderID] = struct{}{}
	}
	out := make([]report.CategoryCount, 0, len(byCat))
	for cat, set := range byCat {
		out = append(out, report.CategoryCount{Category: cat, Orders: len(set)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Orders != out[j].Orders {
			return out[i].Orders > out[j].Orders
		}
		return out[i].Category < out[j].Category
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// OrdersPerMonth counts distinct orders per purchase month in chronological
// order.
func OrdersPerMonth(rows []sales.FactRow) []report.MonthCount {
	byMonth := make(map[string]map[string]struct{})
	for i := range rows {
		r := &rows[i]
		set, ok := byMonth[r.OrderMonth]
		if !ok {
			set = make(map[string]struct{})
			byMonth[r.OrderMonth] = set
		}
		set[r.OrderID] = struct{}{}
	}
	out := make([]report.MonthCount, 0, len(byMonth))
	for month, set := range byMonth {
		out = append(out, report.MonthCount{Month: month, Orders: len(set)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// MonthlyRevenue sums the broadcast payment value per purchase month in
// chronological order.
func MonthlyRevenue(rows []sales.FactRow) []report.MonthValue {
	byMonth := make(map[string]float64)
	for i := range rows {
		r := &rows[i]
		if _, ok := byMonth[r.OrderMonth]; !ok {
			byMonth[r.OrderMonth] = 0
		}
		if r.HasPayment {
			byMonth[r.OrderMonth] += r.PaymentValue
		}
	}
	out := make([]report.MonthValue, 0, len(byMonth))
	for month, v := range byMonth {
		out = append(out, report.MonthValue{Month: month, Revenue: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// RevenueByState sums the broadcast payment value per customer state and
// keeps the top n, descending.
func RevenueByState(rows []sales.FactRow, n int) []report.StateValue {
	byState := make(map[string]float64)
	for i := range rows {
		r := &rows[i]
		if r.CustomerState == "" || !r.HasPayment {
			continue
		}
		byState[r.CustomerState] += r.PaymentValue
	}
	out := make([]report.StateValue, 0, len(byState))
	for state, v := range byState {
		out = append(out, report.StateValue{State: state, Revenue: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].State < out[j].State
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// FreightByReview builds a five number summary of freight values for each
// distinct review score, ascending by score. Only rows carrying both an
// item and a review contribute.
func FreightByReview(rows []sales.FactRow) []report.BoxSummary {
	byScore := make(map[float64][]float64)
	for i := range rows {
		r := &rows[i]
		if !r.HasItem || !r.HasReview {
			continue
		}
		byScore[r.ReviewScore] = append(byScore[r.ReviewScore], r.FreightValue)
	}
	out := make([]report.BoxSummary, 0, len(byScore))
	for score, freights := range byScore {
		box := report.BoxSummary{Score: score, Count: len(freights)}
		data := stats.Float64Data(freights)
		if v, err := stats.Min(data); err == nil {
			box.Min = v
		}
		if v, err := stats.Percentile(data, 25); err == nil {
			box.Q1 = v
		}
		if v, err := stats.Median(data); err == nil {
			box.Median = v
		}
		if v, err := stats.Percentile(data, 75); err == nil {
			box.Q3 = v
		}
		if v, err := stats.Max(data); err == nil {
			box.Max = v
		}
		out = append(out, box)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}

type sellerKey struct {
	id    string
	state string
	city  string
}

// TopSellers counts distinct orders per seller and keeps the top n,
// descending by order count.
func TopSellers(rows []sales.FactRow, n int) []report.SellerRow {
	bySeller := make(map[sellerKey]map[string]struct{})
	for i := range rows {
		r := &rows[i]
		if r.SellerID == "" {
			continue
		}
		key := sellerKey{id: r.SellerID, state: r.SellerState, city: r.SellerCity}
		set, ok := bySeller[key]
		if !ok {
			set = make(map[string]struct{})
			bySeller[key] = set
		}
		set[r.OrderID] = struct{}{}
	}
	out := make([]report.SellerRow, 0, len(bySeller))
	for key, set := range bySeller {
		out = append(out, report.SellerRow{
			SellerID: key.id,
			State:    key.state,
			City:     key.city,
			Orders:   len(set),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Orders != out[j].Orders {
			return out[i].Orders > out[j].Orders
		}
		return out[i].SellerID < out[j].SellerID
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
