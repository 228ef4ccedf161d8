package ui

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"vitrine/domain/report"
	"vitrine/domain/sales"
	"vitrine/internal"
	"vitrine/internal/errors"
)

// StaticRenderer writes the self-contained dashboard page: one HTML file
// with inline styles and chart data, loading Plotly from its CDN.
type StaticRenderer struct {
	templates *template.Template
	logger    *internal.Logger
}

// staticView is the data the static page template receives.
type staticView struct {
	Report      *report.Report
	Notes       template.HTML
	BuildID     string
	Enriched    bool
	Rows        int
	GeneratedAt string
}

// NewStaticRenderer creates a renderer over the embedded templates.
func NewStaticRenderer(logger *internal.Logger) (*StaticRenderer, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	templates, err := template.New("").Funcs(templateFuncs()).ParseFS(embeddedFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, errors.RenderFailed("could not parse templates", err)
	}
	return &StaticRenderer{templates: templates, logger: logger}, nil
}

// Write renders the report to path, creating parent directories. The
// optional notes file is rendered into the notes panel.
func (sr *StaticRenderer) Write(table *sales.Table, rep *report.Report, notesFile, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.RenderFailed("could not create output directory", err)
	}

	view := staticView{
		Report:      rep,
		Notes:       loadNotes(notesFile, sr.logger),
		BuildID:     table.BuildID,
		Enriched:    table.Enriched,
		Rows:        table.Len(),
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04 UTC"),
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.RenderFailed(fmt.Sprintf("could not create %s", path), err)
	}
	defer f.Close()

	if err := sr.templates.ExecuteTemplate(f, "static_report.html", view); err != nil {
		return errors.RenderFailed("could not render static report", err)
	}

	sr.logger.Info("static report written to %s (%d rows)", path, rep.RowCount)
	return nil
}
