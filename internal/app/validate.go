package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"ioc-usage/internal/core"
	"ioc-usage/internal/types"
)

// Validate runs the ingestion-boundary shape checks without aggregating.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	input := strings.TrimSpace(req.InputPath)
	if input == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("input path is required")
	}
	records, err := s.Loader.Load(input)
	if err != nil {
		return ValidateResult{}, err
	}
	var issues []types.DataIssue
	for _, rec := range records {
		issues = append(issues, core.ValidateRecord(rec)...)
	}
	return ValidateResult{NumRecords: len(records), Issues: issues}, nil
}
