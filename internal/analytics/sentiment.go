package analytics

import (
	"sort"

	"vitrine/domain/report"
	"vitrine/domain/sales"
)

// canonicalLabels fixes the display order of the known sentiment classes.
// Labels outside this set sort alphabetically after them.
var canonicalLabels = []string{"positive", "neutral", "negative"}

func labelRank(label string) int {
	for i, l := range canonicalLabels {
		if l == label {
			return i
		}
	}
	return len(canonicalLabels)
}

func sortLabels(labels []string) {
	sort.Slice(labels, func(i, j int) bool {
		ri, rj := labelRank(labels[i]), labelRank(labels[j])
		if ri != rj {
			return ri < rj
		}
		return labels[i] < labels[j]
	})
}

// SentimentShares computes the percentage share of each sentiment label over
// labeled rows, rounded to one decimal. Returns nil when no row is labeled.
func SentimentShares(rows []sales.FactRow) []report.LabelShare {
	counts := make(map[string]int)
	total := 0
	for i := range rows {
		label := rows[i].SentimentLabel
		if label == "" {
			continue
		}
		counts[label]++
		total++
	}
	if total == 0 {
		return nil
	}
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sortLabels(labels)
	out := make([]report.LabelShare, 0, len(labels))
	for _, label := range labels {
		pct := RoundTo(float64(counts[label])/float64(total)*100, 1)
		out = append(out, report.LabelShare{Label: label, Percent: pct})
	}
	return out
}

// ShareOf returns the percentage stored for label, or zero when absent.
func ShareOf(shares []report.LabelShare, label string) float64 {
	for _, s := range shares {
		if s.Label == label {
			return s.Percent
		}
	}
	return 0
}

// SentimentOverTime builds the per month share of each sentiment label,
// normalized so that each month's shares sum to one. Months without labeled
// rows are dropped. Returns nil when no row is labeled.
func SentimentOverTime(rows []sales.FactRow) *report.SentimentSeries {
	counts := make(map[string]map[string]int)
	labelSet := make(map[string]struct{})
	for i := range rows {
		r := &rows[i]
		if r.SentimentLabel == "" {
			continue
		}
		byLabel, ok := counts[r.OrderMonth]
		if !ok {
			byLabel = make(map[string]int)
			counts[r.OrderMonth] = byLabel
		}
		byLabel[r.SentimentLabel]++
		labelSet[r.SentimentLabel] = struct{}{}
	}
	if len(counts) == 0 {
		return nil
	}

	months := make([]string, 0, len(counts))
	for month := range counts {
		months = append(months, month)
	}
	sort.Strings(months)

	labels := make([]string, 0, len(labelSet))
	for label := range labelSet {
		labels = append(labels, label)
	}
	sortLabels(labels)

	series := &report.SentimentSeries{
		Months: months,
		Labels: labels,
		Shares: make(map[string][]float64, len(labels)),
	}
	for _, label := range labels {
		series.Shares[label] = make([]float64, len(months))
	}
	for mi, month := range months {
		byLabel := counts[month]
		total := 0
		for _, c := range byLabel {
			total += c
		}
		for _, label := range labels {
			series.Shares[label][mi] = float64(byLabel[label]) / float64(total)
		}
	}
	return series
}
