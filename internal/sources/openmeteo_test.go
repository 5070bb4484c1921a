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

const openMeteoPayload = `{
  "latitude": 51.5,
  "longitude": -0.12,
  "daily": {
    "time": ["2016-01-01", "2016-01-02", "2016-01-03", "2017-01-01"],
    "temperature_2m_mean": [10.0, 12.0, null, 8.5]
  }
}`

func TestOpenMeteoFetch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(openMeteoPayload))
	}))
	defer srv.Close()

	s := NewOpenMeteoSource(srv.Client(), 51.5074, -0.1278, dataset.Window{From: 2015, To: 2022})
	s.baseURL = srv.URL

	raw, err := s.Fetch(context.Background())
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "start_date=2015-01-01")
	assert.Contains(t, gotQuery, "end_date=2022-12-31")
	assert.Contains(t, gotQuery, "daily=temperature_2m_mean")

	// Null days are ignored; remaining days are averaged per year.
	require.Len(t, raw.Rows, 2)
	assert.Equal(t, dataset.RawRow{"year": "2016", "avg_temp_c": "11"}, raw.Rows[0])
	assert.Equal(t, dataset.RawRow{"year": "2017", "avg_temp_c": "8.5"}, raw.Rows[1])

	ds, err := dataset.Normalize(raw, s.Mapping(), dataset.Window{From: 2015, To: 2022})
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, dataset.Some(11), ds.Records[0].Values[dataset.FieldWeather])
}

func TestOpenMeteoFetchLengthMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"daily": {"time": ["2016-01-01"], "temperature_2m_mean": []}}`))
	}))
	defer srv.Close()

	s := NewOpenMeteoSource(srv.Client(), 51.5074, -0.1278, dataset.Window{From: 2015, To: 2022})
	s.baseURL = srv.URL

	_, err := s.Fetch(context.Background())
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "openmeteo", fetchErr.Source)
}
