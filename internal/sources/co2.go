package sources

import (
	"context"
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"

	"github.com/C-dan93/oil-price-analysis-uk/internal/dataset"
)

// CO2Source reads the manually-provided UK Government emissions CSV
// (columns year,co2_emissions_mt) from a local file.
type CO2Source struct {
	name string
	path string
}

func NewCO2Source(path string) *CO2Source {
	return &CO2Source{name: "co2", path: path}
}

func (s *CO2Source) Name() string {
	return s.name
}

func (s *CO2Source) Mapping() dataset.Mapping {
	return dataset.Mapping{
		PeriodColumn: "year",
		Fields: map[string]dataset.FieldSpec{
			"co2_emissions_mt": {Field: dataset.FieldCO2},
		},
	}
}

func (s *CO2Source) Fetch(ctx context.Context) (dataset.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return dataset.RawTable{}, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return dataset.RawTable{}, &FetchError{Source: s.name, Err: err}
	}
	defer f.Close()

	df := dataframe.ReadCSV(f)
	if df.Err != nil {
		return dataset.RawTable{}, &FetchError{Source: s.name, Err: df.Err}
	}

	records := df.Records()
	if len(records) < 2 {
		return dataset.RawTable{}, &FetchError{Source: s.name, Err: fmt.Errorf("no data rows in %s", s.path)}
	}

	header := records[0]
	table := dataset.RawTable{Source: s.name}
	for _, row := range records[1:] {
		raw := make(dataset.RawRow, len(header))
		for i, col := range header {
			if i < len(row) {
				raw[col] = row[i]
			}
		}
		table.Rows = append(table.Rows, raw)
	}
	return table, nil
}
