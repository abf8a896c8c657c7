package app

import (
	"ioc-usage/internal/adapters"
	"ioc-usage/internal/ports"
)

type Service struct {
	Loader      ports.IOCLoaderPort
	Reporter    ports.ReportPort
	Summary     ports.SummaryPort
	StatsWriter ports.StatsWriterPort
}

func NewService() Service {
	return Service{
		Loader:      adapters.NewIOCFileAdapter(),
		Reporter:    adapters.NewHTMLReportAdapter(),
		Summary:     adapters.NewTextSummaryAdapter(),
		StatsWriter: adapters.NewStatsJSONAdapter(),
	}
}
