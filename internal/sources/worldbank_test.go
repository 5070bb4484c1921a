package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/C-dan93/oil-price-analysis-uk/internal/dataset"
)

const worldBankPayload = `[
  {"page": 1, "pages": 1, "per_page": 100, "total": 3},
  [
    {"date": "2017", "value": 78.3, "country": {"id": "GB", "value": "United Kingdom"}},
    {"date": "2016", "value": 79.1, "country": {"id": "GB", "value": "United Kingdom"}},
    {"date": "2015", "value": null, "country": {"id": "GB", "value": "United Kingdom"}}
  ]
]`

func TestWorldBankFetch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(worldBankPayload))
	}))
	defer srv.Close()

	s := NewWorldBankSource(srv.Client(), dataset.Window{From: 2015, To: 2022})
	s.baseURL = srv.URL

	raw, err := s.Fetch(context.Background())
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "date=2015%3A2022")
	assert.Contains(t, gotQuery, "format=json")

	// Null values are skipped.
	require.Len(t, raw.Rows, 2)
	assert.Equal(t, "2017", raw.Rows[0]["date"])
	assert.Equal(t, "78.3", raw.Rows[0]["value"])

	ds, err := dataset.Normalize(raw, s.Mapping(), dataset.Window{From: 2015, To: 2022})
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, dataset.Some(79.1), ds.Records[0].Values[dataset.FieldFossilFuel])
	assert.Equal(t, "UK", ds.Records[0].Region)
}

func TestWorldBankFetchUnexpectedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"message": "no data"}]`))
	}))
	defer srv.Close()

	s := NewWorldBankSource(srv.Client(), dataset.Window{From: 2015, To: 2022})
	s.baseURL = srv.URL

	_, err := s.Fetch(context.Background())
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "worldbank", fetchErr.Source)
}
