package sales

import (
	"math"
	"sort"
)

// TopCategoryOptions caps the category multi-select at the 50 most frequent
// category names.
const TopCategoryOptions = 50

// IntRange is an inclusive [Min, Max] bound.
type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether v lies inside the range.
func (r IntRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// FloatRange is an inclusive [Min, Max] bound.
type FloatRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies inside the range.
func (r FloatRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Selection is a set of allowed values for one categorical dimension.
// A nil *Selection leaves the dimension unconstrained; an empty Selection
// matches nothing (every option deselected).
type Selection struct {
	values map[string]struct{}
}

// NewSelection builds a Selection from the given values.
func NewSelection(values []string) *Selection {
	s := &Selection{values: make(map[string]struct{}, len(values))}
	for _, v := range values {
		s.values[v] = struct{}{}
	}
	return s
}

// Contains reports whether v is selected.
func (s *Selection) Contains(v string) bool {
	if s == nil {
		return true
	}
	_, ok := s.values[v]
	return ok
}

// Len returns the number of selected values.
func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// Values returns the selected values in sorted order.
func (s *Selection) Values() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.values))
	for v := range s.values {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Filter selects fact rows. All present members must hold (conjunction);
// nil members leave their dimension unconstrained.
type Filter struct {
	Years      *IntRange   `json:"years,omitempty"`
	States     *Selection  `json:"states,omitempty"`
	Categories *Selection  `json:"categories,omitempty"`
	Payment    *FloatRange `json:"payment,omitempty"`
}

// Match reports whether a fact row satisfies every present predicate.
// A present payment range rejects rows without a payment value, matching
// how a null never satisfies a between-bound.
func (f *Filter) Match(r *FactRow) bool {
	if f == nil {
		return true
	}
	if f.Years != nil && !f.Years.Contains(r.OrderYear) {
		return false
	}
	if f.States != nil && !f.States.Contains(r.CustomerState) {
		return false
	}
	if f.Categories != nil && !f.Categories.Contains(r.CategoryEnglish) {
		return false
	}
	if f.Payment != nil {
		if !r.HasPayment || !f.Payment.Contains(r.PaymentValue) {
			return false
		}
	}
	return true
}

// Apply returns the rows satisfying the filter, in input order.
func (f *Filter) Apply(rows []FactRow) []FactRow {
	if f == nil {
		return rows
	}
	out := make([]FactRow, 0, len(rows))
	for i := range rows {
		if f.Match(&rows[i]) {
			out = append(out, rows[i])
		}
	}
	return out
}

// FilterOptions drives the sidebar controls and the options API: the
// selectable values for each dimension plus their default selections.
type FilterOptions struct {
	Years      []int    `json:"years"`
	YearMin    int      `json:"year_min"`
	YearMax    int      `json:"year_max"`
	States     []string `json:"states"`
	Categories []string `json:"categories"`

	PaymentMin float64 `json:"payment_min"`
	PaymentMax float64 `json:"payment_max"`
	// PaymentDefaultHigh is the preselected upper payment bound:
	// min + 0.7*(max-min), rounded to one decimal.
	PaymentDefaultHigh float64 `json:"payment_default_high"`
}

// ComputeFilterOptions derives control options from the unfiltered table:
// sorted distinct years and states, the 50 most frequent category names,
// and payment slider bounds rounded to one decimal.
func ComputeFilterOptions(rows []FactRow) FilterOptions {
	var opts FilterOptions

	yearSet := make(map[int]struct{})
	stateSet := make(map[string]struct{})
	catCounts := make(map[string]int)
	payMin, payMax := math.Inf(1), math.Inf(-1)
	hasPayment := false

	for i := range rows {
		r := &rows[i]
		if r.OrderYear != 0 {
			yearSet[r.OrderYear] = struct{}{}
		}
		if r.CustomerState != "" {
			stateSet[r.CustomerState] = struct{}{}
		}
		if r.CategoryEnglish != "" {
			catCounts[r.CategoryEnglish]++
		}
		if r.HasPayment {
			hasPayment = true
			if r.PaymentValue < payMin {
				payMin = r.PaymentValue
			}
			if r.PaymentValue > payMax {
				payMax = r.PaymentValue
			}
		}
	}

	for y := range yearSet {
		opts.Years = append(opts.Years, y)
	}
	sort.Ints(opts.Years)
	if len(opts.Years) > 0 {
		opts.YearMin = opts.Years[0]
		opts.YearMax = opts.Years[len(opts.Years)-1]
	}

	for s := range stateSet {
		opts.States = append(opts.States, s)
	}
	sort.Strings(opts.States)

	opts.Categories = topCategories(catCounts, TopCategoryOptions)

	if hasPayment {
		opts.PaymentMin = roundTo1(payMin)
		opts.PaymentMax = roundTo1(payMax)
		opts.PaymentDefaultHigh = roundTo1(payMin + (payMax-payMin)*0.7)
	}

	return opts
}

// DefaultFilter is the filter the dashboard opens with: full year range,
// every state and category option selected, and the payment range capped
// at the default upper bound.
func DefaultFilter(opts FilterOptions) *Filter {
	f := &Filter{}
	if len(opts.Years) > 0 {
		f.Years = &IntRange{Min: opts.YearMin, Max: opts.YearMax}
	}
	if len(opts.States) > 0 {
		f.States = NewSelection(opts.States)
	}
	if len(opts.Categories) > 0 {
		f.Categories = NewSelection(opts.Categories)
	}
	if opts.PaymentMin != 0 || opts.PaymentMax != 0 {
		f.Payment = &FloatRange{Min: opts.PaymentMin, Max: opts.PaymentDefaultHigh}
	}
	return f
}

// topCategories returns the n most frequent categories, most frequent
// first, ties broken alphabetically for stable output.
func topCategories(counts map[string]int, n int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
