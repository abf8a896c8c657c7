package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"ioc-usage/internal/core"
	"ioc-usage/internal/types"
)

func (s Service) Report(ctx context.Context, req ReportRequest) (ReportResult, error) {
	input := strings.TrimSpace(req.InputPath)
	if input == "" {
		return ReportResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("input path is required")
	}
	output := strings.TrimSpace(req.OutputPath)
	if output == "" {
		return ReportResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is required")
	}

	records, err := s.Loader.Load(input)
	if err != nil {
		return ReportResult{}, err
	}
	stats, err := s.aggregate(ctx, records, req.GitHubOrg, req.SkipInvalid)
	if err != nil {
		return ReportResult{}, err
	}

	if req.StatsPath != "" {
		if err := s.StatsWriter.WriteStats(req.StatsPath, stats); err != nil {
			return ReportResult{}, err
		}
	}
	if err := s.Reporter.WriteReport(output, stats, req.TemplatePath); err != nil {
		return ReportResult{}, err
	}

	return ReportResult{
		OutputPath:  output,
		NumIOCs:     stats.NumIOCs,
		NumModules:  stats.NumModules,
		NumVersions: stats.NumVersions,
		Issues:      stats.Issues,
	}, nil
}

func (s Service) aggregate(ctx context.Context, records []types.IOCRecord, org string, skipInvalid bool) (types.Statistics, error) {
	policy := types.InvalidRecordPolicyFail
	if skipInvalid {
		policy = types.InvalidRecordPolicySkip
	}
	aggregator := core.NewAggregator(policy)
	if strings.TrimSpace(org) != "" {
		aggregator.GitHubOrg = strings.TrimSpace(org)
	}
	return aggregator.Aggregate(ctx, records)
}
