package sources

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/C-dan93/oil-price-analysis-uk/internal/dataset"
)

// OilPriceSource reads the Kaggle crude-oil-price CSV (columns date,price)
// from a local file and aggregates daily prices to an annual mean. The Kaggle
// download itself happens out of band.
type OilPriceSource struct {
	name string
	path string
}

func NewOilPriceSource(path string) *OilPriceSource {
	return &OilPriceSource{name: "oilprice", path: path}
}

func (s *OilPriceSource) Name() string {
	return s.name
}

func (s *OilPriceSource) Mapping() dataset.Mapping {
	return dataset.Mapping{
		PeriodColumn: "year",
		Fields: map[string]dataset.FieldSpec{
			"price": {Field: dataset.FieldOilPrice},
		},
	}
}

// Fetch loads the CSV and produces one row per year with the mean USD/barrel
// price, rounded to cents.
func (s *OilPriceSource) Fetch(ctx context.Context) (dataset.RawTable, error) {
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

	dateIdx, priceIdx := -1, -1
	for i, col := range records[0] {
		switch col {
		case "date":
			dateIdx = i
		case "price":
			priceIdx = i
		}
	}
	if dateIdx < 0 || priceIdx < 0 {
		return dataset.RawTable{}, &dataset.SchemaError{Source: s.name, Reason: fmt.Sprintf("expected date and price columns, got %v", records[0])}
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, row := range records[1:] {
		day, err := time.Parse("2006-01-02", row[dateIdx])
		if err != nil {
			return dataset.RawTable{}, &dataset.SchemaError{Source: s.name, Reason: fmt.Sprintf("unparseable date %q", row[dateIdx])}
		}
		price, err := strconv.ParseFloat(row[priceIdx], 64)
		if err != nil {
			return dataset.RawTable{}, &dataset.SchemaError{Source: s.name, Reason: fmt.Sprintf("invalid price %q", row[priceIdx])}
		}
		sums[day.Year()] += price
		counts[day.Year()]++
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
			"year":  strconv.Itoa(year),
			"price": strconv.FormatFloat(mean, 'f', -1, 64),
		})
	}
	return table, nil
}
