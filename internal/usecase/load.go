package usecase

import (
	"fmt"

	"github.com/runoshun/timeflow/internal/domain"
)

// loadForWrite loads a stored value that is about to be modified and written back.
// A read failure aborts the write so the stored data is left alone; a parse failure
// is logged and the loader's default is used.
func loadForWrite[T any](load func() (T, error), what string, logger domain.Logger) (T, error) {
	v, err := load()
	if err == nil {
		return v, nil
	}
	if domain.IsReadFailure(err) {
		return v, fmt.Errorf("load %s: %w", what, err)
	}
	if logger != nil {
		logger.Warn("store", fmt.Sprintf("load %s: %v", what, err))
	}
	return v, nil
}
