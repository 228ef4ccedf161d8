package analytics

import (
	"math"

	"vitrine/domain/report"
	"vitrine/domain/sales"

	"gonum.org/v1/gonum/stat"
)

// FitFreightBaseline fits an ordinary least squares line predicting review
// score from freight value and reports its error metrics. Rows must carry
// both an item and a review to contribute. Returns nil when fewer than two
// points exist or the freight values have no variance.
func FitFreightBaseline(rows []sales.FactRow) *report.BaselineMetrics {
	var xs, ys []float64
	for i := range rows {
		r := &rows[i]
		if !r.HasItem || !r.HasReview {
			continue
		}
		xs = append(xs, r.FreightValue)
		ys = append(ys, r.ReviewScore)
	}
	if len(xs) < 2 {
		return nil
	}
	if stat.Variance(xs, nil) == 0 {
		return nil
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	preds := make([]float64, len(xs))
	var sqSum, absSum float64
	for i, x := range xs {
		preds[i] = alpha + beta*x
		resid := ys[i] - preds[i]
		sqSum += resid * resid
		absSum += math.Abs(resid)
	}
	n := float64(len(xs))

	return &report.BaselineMetrics{
		RMSE: math.Sqrt(sqSum / n),
		MAE:  absSum / n,
		R2:   stat.RSquaredFrom(preds, ys, nil),
		N:    len(xs),
	}
}
