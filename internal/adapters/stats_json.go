package adapters

import (
	"encoding/json"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"ioc-usage/internal/types"
)

// StatsJSONAdapter persists the statistics snapshot as JSON. The field names
// follow the renderer contract, so downstream tooling reads the same shape
// the HTML template does.
type StatsJSONAdapter struct{}

func NewStatsJSONAdapter() StatsJSONAdapter {
	return StatsJSONAdapter{}
}

func (a StatsJSONAdapter) WriteStats(path string, stats types.Statistics) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode statistics").
			WithCause(err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write statistics file").
			WithCause(err)
	}
	return nil
}
