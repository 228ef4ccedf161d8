package app

import (
	"vitrine/domain/report"
	"vitrine/domain/sales"
	"vitrine/internal"
	"vitrine/internal/analytics"
)

// ReportService turns a fact table and a filter into the dataset every
// dashboard surface renders from.
type ReportService struct {
	logger *internal.Logger
}

// NewReportService creates a report service.
func NewReportService(logger *internal.Logger) *ReportService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ReportService{logger: logger}
}

// Options derives the filter control values from the full table.
func (s *ReportService) Options(table *sales.Table) sales.FilterOptions {
	if table == nil {
		return sales.FilterOptions{}
	}
	return sales.ComputeFilterOptions(table.Rows)
}

// Build applies the filter and computes every aggregate of the report. A
// nil filter keeps every row; an empty filtered subset short-circuits to a
// no-data report.
func (s *ReportService) Build(table *sales.Table, filter *sales.Filter) *report.Report {
	if table == nil || table.Len() == 0 {
		return report.NoDataReport()
	}

	rows := filter.Apply(table.Rows)
	if len(rows) == 0 {
		s.logger.Warn("filter matched no rows, skipping aggregation")
		return report.NoDataReport()
	}

	rep := &report.Report{
		RowCount:        len(rows),
		KPIs:            analytics.Summarize(rows),
		CustomerStates:  analytics.CustomerStateTree(rows),
		SellerStates:    analytics.SellerStateTree(rows),
		TopCategories:   analytics.TopCategories(rows, sales.TopCategoryOptions),
		OrdersPerMonth:  analytics.OrdersPerMonth(rows),
		MonthlyRevenue:  analytics.MonthlyRevenue(rows),
		RevenueByState:  analytics.RevenueByState(rows, 10),
		FreightByReview: analytics.FreightByReview(rows),
		TopSellers:      analytics.TopSellers(rows, 100),
		Baseline:        analytics.FitFreightBaseline(rows),
	}

	if table.HasSentiment() {
		shares := analytics.SentimentShares(rows)
		series := analytics.SentimentOverTime(rows)
		if shares != nil && series != nil {
			rep.Sentiment = &report.SentimentSummary{Shares: shares, OverTime: *series}
		}
	}

	return rep
}
