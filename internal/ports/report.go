package ports

import "ioc-usage/internal/types"

// ReportPort renders statistics through a template. An empty template path
// selects the built-in template.
type ReportPort interface {
	Render(stats types.Statistics, templatePath string) ([]byte, error)
	WriteReport(path string, stats types.Statistics, templatePath string) error
}

// SummaryPort produces the plain-text console summary.
type SummaryPort interface {
	Summarize(stats types.Statistics) string
}

// StatsWriterPort persists the statistics snapshot for downstream tooling.
type StatsWriterPort interface {
	WriteStats(path string, stats types.Statistics) error
}
