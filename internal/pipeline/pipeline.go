package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/C-dan93/oil-price-analysis-uk/internal/blob"
	"github.com/C-dan93/oil-price-analysis-uk/internal/dataset"
	"github.com/C-dan93/oil-price-analysis-uk/internal/integrate"
	"github.com/C-dan93/oil-price-analysis-uk/internal/sources"
	"github.com/C-dan93/oil-price-analysis-uk/internal/store"
)

// Pipeline sequences the run: fetch each source, normalize, integrate, encode,
// upload. Stages execute sequentially and fail fast; a failure in any source
// aborts the run and no partial output is written.
type Pipeline struct {
	sources  []sources.Source // fixed precedence order, lowest first
	uploader blob.Uploader
	store    *store.RunStore
	window   dataset.Window
	blobName string
}

// New creates a Pipeline. The source order is the integration precedence:
// when two sources disagree on a shared field, the later one wins.
func New(srcs []sources.Source, uploader blob.Uploader, st *store.RunStore, window dataset.Window, blobName string) *Pipeline {
	return &Pipeline{
		sources:  srcs,
		uploader: uploader,
		store:    st,
		window:   window,
		blobName: blobName,
	}
}

// Run executes one full pipeline pass and records the result in the store.
func (p *Pipeline) Run(ctx context.Context) (store.Run, error) {
	if len(p.sources) == 0 {
		return store.Run{}, fmt.Errorf("no sources configured")
	}

	started := time.Now()
	normalized := make([]dataset.Dataset, 0, len(p.sources))

	for _, src := range p.sources {
		log.Printf("pipeline: fetching %s", src.Name())

		// FetchError and SchemaError already identify the failing source.
		raw, err := src.Fetch(ctx)
		if err != nil {
			return store.Run{}, err
		}

		ds, err := dataset.Normalize(raw, src.Mapping(), p.window)
		if err != nil {
			return store.Run{}, err
		}

		log.Printf("pipeline: %s normalized to %d rows", src.Name(), len(ds.Records))
		normalized = append(normalized, ds)
	}

	integrated := integrate.Join(normalized...)
	log.Printf("pipeline: integrated %d rows from %d sources", len(integrated.Rows), len(normalized))

	data, err := blob.EncodeCSV(integrated)
	if err != nil {
		return store.Run{}, err
	}

	if err := p.uploader.Upload(ctx, p.blobName, data); err != nil {
		return store.Run{}, err
	}

	run := store.Run{
		CompletedAt: time.Now().UTC(),
		BlobName:    p.blobName,
		Rows:        len(integrated.Rows),
		Dataset:     integrated,
	}
	p.store.SaveRun(run)

	log.Printf("pipeline: run complete in %s, uploaded %s (%d bytes)", time.Since(started).Round(time.Millisecond), p.blobName, len(data))
	return run, nil
}
