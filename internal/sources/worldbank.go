package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/C-dan93/oil-price-analysis-uk/internal/dataset"
)

// World Bank indicator: fossil fuel energy consumption, % of total (UK).
const worldBankIndicator = "EG.USE.COMM.FO.ZS"

// WorldBankSource fetches UK fossil-fuel consumption from the World Bank API.
type WorldBankSource struct {
	name    string
	baseURL string
	window  dataset.Window
	httpCfg httpConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWorldBankSource(client *http.Client, window dataset.Window) *WorldBankSource {
	return &WorldBankSource{
		name:    "worldbank",
		baseURL: "https://api.worldbank.org/v2/country/GB/indicator/" + worldBankIndicator,
		window:  window,
		httpCfg: defaultHTTPConfig(client),
		circuit: newBreaker("worldbank"),
	}
}

func (s *WorldBankSource) Name() string {
	return s.name
}

func (s *WorldBankSource) Mapping() dataset.Mapping {
	return dataset.Mapping{
		PeriodColumn: "date",
		Fields: map[string]dataset.FieldSpec{
			"value": {Field: dataset.FieldFossilFuel},
		},
	}
}

// Fetch queries the indicator for the configured year range. The World Bank
// wraps results as a [metadata, records] JSON array; records with null values
// are skipped.
func (s *WorldBankSource) Fetch(ctx context.Context) (dataset.RawTable, error) {
	values := url.Values{}
	values.Set("date", fmt.Sprintf("%d:%d", s.window.From, s.window.To))
	values.Set("format", "json")
	values.Set("per_page", "100")

	var payload []json.RawMessage
	u := fmt.Sprintf("%s?%s", s.baseURL, values.Encode())
	if err := getJSON(ctx, s.httpCfg, s.circuit, u, &payload); err != nil {
		return dataset.RawTable{}, &FetchError{Source: s.name, Err: err}
	}

	if len(payload) < 2 {
		return dataset.RawTable{}, &FetchError{Source: s.name, Err: fmt.Errorf("unexpected response shape: %d elements", len(payload))}
	}

	var records []struct {
		Date    string   `json:"date"`
		Value   *float64 `json:"value"`
		Country struct {
			Value string `json:"value"`
		} `json:"country"`
	}
	if err := json.Unmarshal(payload[1], &records); err != nil {
		return dataset.RawTable{}, &FetchError{Source: s.name, Err: err}
	}

	table := dataset.RawTable{Source: s.name}
	for _, rec := range records {
		if rec.Value == nil {
			continue
		}
		table.Rows = append(table.Rows, dataset.RawRow{
			"date":    rec.Date,
			"value":   strconv.FormatFloat(*rec.Value, 'f', -1, 64),
			"country": rec.Country.Value,
		})
	}
	return table, nil
}
