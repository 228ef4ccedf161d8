package ui

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vitrine/app"
	"vitrine/domain/report"
	"vitrine/domain/sales"
	"vitrine/internal"
	"vitrine/ports"
)

// API serves the JSON endpoints over the same report pipeline as the HTML
// dashboard. Filters arrive as the same query parameters.
type API struct {
	engine  *gin.Engine
	source  ports.FactSource
	reports *app.ReportService
	logger  *internal.Logger
}

// NewAPI creates the JSON API application.
func NewAPI(source ports.FactSource, reports *app.ReportService, logger *internal.Logger) *API {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	api := &API{
		engine:  gin.Default(),
		source:  source,
		reports: reports,
		logger:  logger,
	}
	api.setupRoutes()
	return api
}

func (api *API) setupRoutes() {
	g := api.engine.Group("/api")
	g.GET("/health", api.handleHealth)
	g.GET("/options", api.handleOptions)
	g.GET("/summary", api.handleSummary)
	g.GET("/charts", api.handleCharts)
	g.GET("/sellers", api.handleSellers)
}

// Handler exposes the engine, mainly for tests.
func (api *API) Handler() http.Handler {
	return api.engine
}

// Start starts the API server.
func (api *API) Start(port string) error {
	api.logger.Info("api server listening on :%s", port)
	return api.engine.Run(":" + port)
}

func (api *API) handleHealth(c *gin.Context) {
	payload := gin.H{"status": "ok"}
	if table, err := api.source.FactTable(c.Request.Context()); err == nil {
		payload["build_id"] = table.BuildID
		payload["row_count"] = table.Len()
	}
	c.JSON(http.StatusOK, payload)
}

func (api *API) handleOptions(c *gin.Context) {
	table, err := api.source.FactTable(c.Request.Context())
	if err != nil {
		api.logger.Error("fact table unavailable: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load fact table"})
		return
	}
	c.JSON(http.StatusOK, api.reports.Options(table))
}

func (api *API) handleSummary(c *gin.Context) {
	rep, table, ok := api.buildReport(c)
	if !ok {
		return
	}
	if rep.NoData {
		c.JSON(http.StatusOK, gin.H{"no_data": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"no_data":   false,
		"build_id":  table.BuildID,
		"enriched":  table.Enriched,
		"row_count": rep.RowCount,
		"kpis":      rep.KPIs,
	})
}

func (api *API) handleCharts(c *gin.Context) {
	rep, _, ok := api.buildReport(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (api *API) handleSellers(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		if n < limit {
			limit = n
		}
	}

	rep, _, ok := api.buildReport(c)
	if !ok {
		return
	}
	if rep.NoData {
		c.JSON(http.StatusOK, gin.H{"no_data": true})
		return
	}

	sellers := rep.TopSellers
	if len(sellers) > limit {
		sellers = sellers[:limit]
	}
	c.JSON(http.StatusOK, gin.H{"sellers": sellers, "count": len(sellers)})
}

// buildReport runs the shared load-filter-aggregate pipeline for one API
// request. A load failure writes the error response itself.
func (api *API) buildReport(c *gin.Context) (*report.Report, *sales.Table, bool) {
	table, err := api.source.FactTable(c.Request.Context())
	if err != nil {
		api.logger.Error("fact table unavailable: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load fact table"})
		return nil, nil, false
	}

	opts := api.reports.Options(table)
	filter := parseFilter(c.Request.URL.Query(), opts)
	rep := api.reports.Build(table, filter)
	return rep, table, true
}
