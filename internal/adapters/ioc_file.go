package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"ioc-usage/internal/types"
)

// IOCFileAdapter reads the dependency loader's output file. The loader emits
// JSON (`iocs.json`); YAML is accepted as well, selected by file extension.
type IOCFileAdapter struct{}

func NewIOCFileAdapter() IOCFileAdapter {
	return IOCFileAdapter{}
}

func (a IOCFileAdapter) Load(path string) ([]types.IOCRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("ioc listing not found").
			WithCause(err)
	}

	var records []types.IOCRecord
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to parse ioc listing yaml").
				WithCause(err)
		}
	default:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to parse ioc listing json").
				WithCause(err)
		}
	}
	return records, nil
}
