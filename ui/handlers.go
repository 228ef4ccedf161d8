package ui

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"vitrine/domain/report"
	"vitrine/domain/sales"
)

// dashboardView is the data behind both the full page and the fragment.
type dashboardView struct {
	Report   *report.Report
	Options  sales.FilterOptions
	Form     formState
	Notes    template.HTML
	Enriched bool
	BuildID  string
	Rows     int
}

// formState echoes the submitted filter back into the sidebar controls.
type formState struct {
	YearFrom   int
	YearTo     int
	States     map[string]bool
	Categories map[string]bool
	PayMin     float64
	PayMax     float64
}

// handleIndex renders the full dashboard page.
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	view, ok := a.buildView(w, r)
	if !ok {
		return
	}
	a.renderTemplate(w, "index.html", view)
}

// handleDashboard renders only the dashboard fragment, for reloads that
// keep the page shell.
func (a *App) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view, ok := a.buildView(w, r)
	if !ok {
		return
	}
	a.renderTemplate(w, "dashboard.html", view)
}

func (a *App) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// buildView loads the table, applies the requested filter and assembles the
// view. A load failure writes the error response itself.
func (a *App) buildView(w http.ResponseWriter, r *http.Request) (dashboardView, bool) {
	table, err := a.source.FactTable(r.Context())
	if err != nil {
		a.logger.Error("fact table unavailable: %v", err)
		http.Error(w, "Failed to load fact table", http.StatusInternalServerError)
		return dashboardView{}, false
	}

	opts := a.reports.Options(table)
	filter := parseFilter(r.URL.Query(), opts)
	rep := a.reports.Build(table, filter)

	return dashboardView{
		Report:   rep,
		Options:  opts,
		Form:     formStateFrom(filter, opts),
		Notes:    a.notes,
		Enriched: table.Enriched,
		BuildID:  table.BuildID,
		Rows:     table.Len(),
	}, true
}

// parseFilter builds the filter from query parameters, starting from the
// default selections. The filtered marker distinguishes a submitted form
// with everything deselected from a plain first load.
func parseFilter(q url.Values, opts sales.FilterOptions) *sales.Filter {
	f := sales.DefaultFilter(opts)
	submitted := q.Get("filtered") == "1"

	if f.Years != nil {
		if v := q.Get("year_from"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				f.Years.Min = n
			}
		}
		if v := q.Get("year_to"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				f.Years.Max = n
			}
		}
	}

	if vs, ok := q["state"]; ok {
		f.States = sales.NewSelection(vs)
	} else if submitted && len(opts.States) > 0 {
		f.States = sales.NewSelection(nil)
	}

	if vs, ok := q["category"]; ok {
		f.Categories = sales.NewSelection(vs)
	} else if submitted && len(opts.Categories) > 0 {
		f.Categories = sales.NewSelection(nil)
	}

	if f.Payment != nil {
		if v := q.Get("pay_min"); v != "" {
			if x, err := strconv.ParseFloat(v, 64); err == nil {
				f.Payment.Min = x
			}
		}
		if v := q.Get("pay_max"); v != "" {
			if x, err := strconv.ParseFloat(v, 64); err == nil {
				f.Payment.Max = x
			}
		}
	}

	return f
}

func formStateFrom(f *sales.Filter, opts sales.FilterOptions) formState {
	fs := formState{
		States:     make(map[string]bool, len(opts.States)),
		Categories: make(map[string]bool, len(opts.Categories)),
	}
	if f.Years != nil {
		fs.YearFrom, fs.YearTo = f.Years.Min, f.Years.Max
	}
	for _, s := range opts.States {
		fs.States[s] = f.States.Contains(s)
	}
	for _, c := range opts.Categories {
		fs.Categories[c] = f.Categories.Contains(c)
	}
	if f.Payment != nil {
		fs.PayMin, fs.PayMax = f.Payment.Min, f.Payment.Max
	} else {
		fs.PayMin, fs.PayMax = opts.PaymentMin, opts.PaymentDefaultHigh
	}
	return fs
}
