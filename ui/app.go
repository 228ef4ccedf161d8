package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"vitrine/app"
	"vitrine/internal"
	"vitrine/internal/analytics"
	"vitrine/ports"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App is the interactive dashboard server.
type App struct {
	router    *chi.Mux
	source    ports.FactSource
	reports   *app.ReportService
	notes     template.HTML
	port      string
	logger    *internal.Logger
	templates *template.Template
}

// Config holds dashboard server configuration.
type Config struct {
	Port      string
	NotesFile string
}

// NewApp creates the dashboard application.
func NewApp(cfg Config, source ports.FactSource, reports *app.ReportService, logger *internal.Logger) (*App, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	templates, err := template.New("").Funcs(templateFuncs()).ParseFS(embeddedFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		source:    source,
		reports:   reports,
		notes:     loadNotes(cfg.NotesFile, logger),
		port:      cfg.Port,
		logger:    logger,
		templates: templates,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// templateFuncs are the helpers the dashboard templates format with.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"comma": analytics.FormatInt,
		"money": func(v float64) string {
			return "R$ " + analytics.FormatFloat(v, 2)
		},
		"money0": func(v float64) string {
			return "R$ " + analytics.FormatFloat(v, 0)
		},
		"round1": func(v float64) float64 { return analytics.RoundTo(v, 1) },
		"round2": func(v float64) float64 { return analytics.RoundTo(v, 2) },
		"pct": func(v float64) string {
			return analytics.FormatFloat(v, 1) + "%"
		},
		"shareof": analytics.ShareOf,
		// jsarr marshals chart data for inline <script> blocks.
		"jsarr": func(v interface{}) template.JS {
			b, err := json.Marshal(v)
			if err != nil {
				return template.JS("null")
			}
			return template.JS(b)
		},
	}
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err == nil {
		a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}
}

func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/dashboard", a.handleDashboard)
	a.router.Get("/healthz", a.handleHealthz)
}

// Router exposes the HTTP handler, mainly for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Start starts the HTTP server.
func (a *App) Start() error {
	addr := ":" + a.port
	a.logger.Info("dashboard server listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.logger.Error("template %s: %v", templateName, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
