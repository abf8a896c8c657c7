package ports

import "ioc-usage/internal/types"

// IOCLoaderPort reads the dependency loader's output into typed records.
type IOCLoaderPort interface {
	Load(path string) ([]types.IOCRecord, error)
}
