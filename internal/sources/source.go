package sources

import (
	"context"
	"fmt"

	"github.com/C-dan93/oil-price-analysis-uk/internal/dataset"
)

// Source abstracts one external dataset (World Bank, Open-Meteo, local CSVs).
// Fetch returns rows in the source's native columns; Mapping describes how to
// bring them into the canonical schema.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (dataset.RawTable, error)
	Mapping() dataset.Mapping
}

// FetchError reports a network or API failure for one source.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed for %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
