package sources

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/C-dan93/oil-price-analysis-uk/internal/dataset"
)

// OpenMeteoSource fetches historical daily temperatures from the Open-Meteo
// archive API and aggregates them to an annual mean. No API key required.
type OpenMeteoSource struct {
	name     string
	baseURL  string
	lat, lon float64
	window   dataset.Window
	httpCfg  httpConfig
	circuit  *gobreaker.CircuitBreaker
}

func NewOpenMeteoSource(client *http.Client, lat, lon float64, window dataset.Window) *OpenMeteoSource {
	return &OpenMeteoSource{
		name:    "openmeteo",
		baseURL: "https://archive-api.open-meteo.com/v1/archive",
		lat:     lat,
		lon:     lon,
		window:  window,
		httpCfg: defaultHTTPConfig(client),
		circuit: newBreaker("openmeteo"),
	}
}

func (s *OpenMeteoSource) Name() string {
	return s.name
}

func (s *OpenMeteoSource) Mapping() dataset.Mapping {
	return dataset.Mapping{
		PeriodColumn: "year",
		Fields: map[string]dataset.FieldSpec{
			"avg_temp_c": {Field: dataset.FieldWeather},
		},
	}
}

// Fetch requests daily mean temperatures for the configured window and rolls
// them up into one row per year.
func (s *OpenMeteoSource) Fetch(ctx context.Context) (dataset.RawTable, error) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(s.lat, 'f', 4, 64))
	values.Set("longitude", strconv.FormatFloat(s.lon, 'f', 4, 64))
	values.Set("start_date", fmt.Sprintf("%d-01-01", s.window.From))
	values.Set("end_date", fmt.Sprintf("%d-12-31", s.window.To))
	values.Set("daily", "temperature_2m_mean")
	values.Set("timezone", "UTC")

	var payload struct {
		Daily struct {
			Time        []string   `json:"time"`
			Temperature []*float64 `json:"temperature_2m_mean"`
		} `json:"daily"`
	}

	u := fmt.Sprintf("%s?%s", s.baseURL, values.Encode())
	if err := getJSON(ctx, s.httpCfg, s.circuit, u, &payload); err != nil {
		return dataset.RawTable{}, &FetchError{Source: s.name, Err: err}
	}

	if len(payload.Daily.Time) != len(payload.Daily.Temperature) {
		return dataset.RawTable{}, &FetchError{Source: s.name, Err: fmt.Errorf("daily series length mismatch: %d dates, %d temperatures",
			len(payload.Daily.Time), len(payload.Daily.Temperature))}
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)
	for i, day := range payload.Daily.Time {
		temp := payload.Daily.Temperature[i]
		if temp == nil {
			continue
		}
		if len(day) < 4 {
			return dataset.RawTable{}, &FetchError{Source: s.name, Err: fmt.Errorf("unparseable date %q", day)}
		}
		year, err := strconv.Atoi(day[:4])
		if err != nil {
			return dataset.RawTable{}, &FetchError{Source: s.name, Err: fmt.Errorf("unparseable date %q", day)}
		}
		sums[year] += *temp
		counts[year]++
	}

	years := make([]int, 0, len(sums))
	for year := range sums {
		years = append(years, year)
	}
	sort.Ints(years)

	table := dataset.RawTable{Source: s.name}
	for _, year := range years {
		mean := math.Round(sums[year]/float64(counts[year])*100) / 100
		table.Rows = append(table.Rows, dataset.RawRow{
			"year":       strconv.Itoa(year),
			"avg_temp_c": strconv.FormatFloat(mean, 'f', -1, 64),
		})
	}
	return table, nil
}
