package analytics

import (
	"vitrine/domain/report"
	"vitrine/domain/sales"

	"github.com/montanaflynn/stats"
)

// Summarize computes the KPI scalars over the filtered rows. Callers must
// not pass an empty slice; empty subsets short-circuit to a no-data report
// before any aggregate runs.
func Summarize(rows []sales.FactRow) report.KPIs {
	var kpis report.KPIs

	seen := make(map[string]struct{})
	var perOrder []float64
	var reviews []float64
	var freights []float64

	for i := range rows {
		r := &rows[i]
		if _, ok := seen[r.OrderID]; !ok {
			seen[r.OrderID] = struct{}{}
			if r.HasPayment {
				// One broadcast order-level sum per distinct order.
				perOrder = append(perOrder, r.PaymentValue)
			}
		}
		if r.HasPayment {
			kpis.TotalRevenue += r.PaymentValue
		}
		if r.HasReview {
			reviews = append(reviews, r.ReviewScore)
		}
		if r.HasItem {
			freights = append(freights, r.FreightValue)
		}
	}

	kpis.TotalOrders = len(seen)

	if len(perOrder) > 0 {
		if mean, err := stats.Mean(perOrder); err == nil {
			kpis.AvgOrderValue = mean
		}
	}
	if len(reviews) > 0 {
		if mean, err := stats.Mean(reviews); err == nil {
			kpis.AvgReview = mean
			kpis.HasReview = true
		}
	}
	if len(freights) > 0 {
		if mean, err := stats.Mean(freights); err == nil {
			kpis.AvgFreight = mean
			kpis.HasFreight = true
		}
	}

	return kpis
}
