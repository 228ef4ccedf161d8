package facttable

import (
	"vitrine/adapters/tabular"
	"vitrine/internal/errors"
)

// PaymentSums totals payment_value per order_id over the raw payments
// extract. Running before the joins keeps multi-item orders from
// inflating order-level amounts.
func PaymentSums(payments *tabular.Extract) (map[string]float64, error) {
	orderCol := payments.Col("order_id")
	valueCol := payments.Col("payment_value")
	if orderCol < 0 || valueCol < 0 {
		return nil, errors.ColumnMissing(payments.File, "order_id/payment_value")
	}

	sums := make(map[string]float64)
	for i, row := range payments.Rows {
		v, err := parseFloatCell(payments.File, i+2, "payment_value", row[valueCol])
		if err != nil {
			return nil, err
		}
		sums[row[orderCol]] += v
	}
	return sums, nil
}

// ReviewMeans averages review_score per order_id over the raw reviews
// extract.
func ReviewMeans(reviews *tabular.Extract) (map[string]float64, error) {
	orderCol := reviews.Col("order_id")
	scoreCol := reviews.Col("review_score")
	if orderCol < 0 || scoreCol < 0 {
		return nil, errors.ColumnMissing(reviews.File, "order_id/review_score")
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i, row := range reviews.Rows {
		v, err := parseFloatCell(reviews.File, i+2, "review_score", row[scoreCol])
		if err != nil {
			return nil, err
		}
		sums[row[orderCol]] += v
		counts[row[orderCol]]++
	}

	means := make(map[string]float64, len(sums))
	for order, sum := range sums {
		means[order] = sum / float64(counts[order])
	}
	return means, nil
}
