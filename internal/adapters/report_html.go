package adapters

import (
	"bytes"
	_ "embed"
	"html/template"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"ioc-usage/internal/types"
)

//go:embed templates/summary.tpl.html
var defaultTemplate string

// HTMLReportAdapter renders the statistics snapshot as an HTML page. The
// template only walks the exported Statistics fields; it takes no part in
// aggregation.
type HTMLReportAdapter struct{}

func NewHTMLReportAdapter() HTMLReportAdapter {
	return HTMLReportAdapter{}
}

func (a HTMLReportAdapter) Render(stats types.Statistics, templatePath string) ([]byte, error) {
	text := defaultTemplate
	if templatePath != "" {
		data, err := os.ReadFile(templatePath)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("report template not found").
				WithCause(err)
		}
		text = string(data)
	}

	tpl, err := template.New("summary").Parse(text)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse report template").
			WithCause(err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, stats); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to render report").
			WithCause(err)
	}
	return buf.Bytes(), nil
}

func (a HTMLReportAdapter) WriteReport(path string, stats types.Statistics, templatePath string) error {
	content, err := a.Render(stats, templatePath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write report").
			WithCause(err)
	}
	return nil
}
