package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

func (s Service) Summarize(ctx context.Context, req SummaryRequest) (SummaryResult, error) {
	input := strings.TrimSpace(req.InputPath)
	if input == "" {
		return SummaryResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("input path is required")
	}
	records, err := s.Loader.Load(input)
	if err != nil {
		return SummaryResult{}, err
	}
	stats, err := s.aggregate(ctx, records, req.GitHubOrg, req.SkipInvalid)
	if err != nil {
		return SummaryResult{}, err
	}
	return SummaryResult{Text: s.Summary.Summarize(stats), Issues: stats.Issues}, nil
}
