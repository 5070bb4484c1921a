package integrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/C-dan93/oil-price-analysis-uk/internal/dataset"
)

func annual(source string, field dataset.Field, values map[int]float64) dataset.Dataset {
	ds := dataset.Dataset{Source: source}
	for year, v := range values {
		ds.Records = append(ds.Records, dataset.Record{
			Period: dataset.Period{Year: year},
			Region: dataset.DefaultRegion,
			Values: map[dataset.Field]dataset.Value{field: dataset.Some(v)},
		})
	}
	return ds
}

func TestJoinFourSourcesSingleKey(t *testing.T) {
	oil := annual("oilprice", dataset.FieldOilPrice, map[int]float64{2016: 50.2})
	fuel := annual("worldbank", dataset.FieldFossilFuel, map[int]float64{2016: 120.0})
	co2 := annual("co2", dataset.FieldCO2, map[int]float64{2016: 350.1})
	weather := dataset.Dataset{Source: "openmeteo"}

	out := Join(oil, fuel, co2, weather)
	require.Len(t, out.Rows, 1)

	row := out.Rows[0]
	assert.Equal(t, dataset.Period{Year: 2016}, row.Period)
	assert.Equal(t, "UK", row.Region)
	assert.Equal(t, dataset.Some(50.2), row.Values[dataset.FieldOilPrice])
	assert.Equal(t, dataset.Some(120.0), row.Values[dataset.FieldFossilFuel])
	assert.Equal(t, dataset.Some(350.1), row.Values[dataset.FieldCO2])
	assert.False(t, row.Values[dataset.FieldWeather].Valid, "weather must stay a missing marker")

	require.Len(t, out.Sources, 4)
	assert.Equal(t, Contribution{Source: "oilprice", Rows: 1}, out.Sources[0])
	assert.Equal(t, Contribution{Source: "openmeteo", Rows: 0}, out.Sources[3])
}

func TestJoinKeyCompleteness(t *testing.T) {
	oil := annual("oilprice", dataset.FieldOilPrice, map[int]float64{2015: 52.4, 2016: 43.6})
	fuel := annual("worldbank", dataset.FieldFossilFuel, map[int]float64{2016: 79.1, 2017: 78.3})
	weather := annual("openmeteo", dataset.FieldWeather, map[int]float64{2018: 10.9})

	out := Join(oil, fuel, weather)

	// One row per distinct key across all inputs, ordered by period.
	require.Len(t, out.Rows, 4)
	years := make([]int, 0, len(out.Rows))
	for _, row := range out.Rows {
		years = append(years, row.Period.Year)
	}
	assert.Equal(t, []int{2015, 2016, 2017, 2018}, years)
}

func TestJoinMissingIsNotZero(t *testing.T) {
	oil := annual("oilprice", dataset.FieldOilPrice, map[int]float64{2016: 50.2})
	weather := annual("openmeteo", dataset.FieldWeather, map[int]float64{2017: 9.8})

	out := Join(oil, weather)
	require.Len(t, out.Rows, 2)

	row2016 := out.Rows[0]
	assert.True(t, row2016.Values[dataset.FieldOilPrice].Valid)
	assert.False(t, row2016.Values[dataset.FieldWeather].Valid)
	assert.Zero(t, row2016.Values[dataset.FieldWeather].Float64)

	row2017 := out.Rows[1]
	assert.False(t, row2017.Values[dataset.FieldOilPrice].Valid)
	assert.True(t, row2017.Values[dataset.FieldWeather].Valid)
}

func TestJoinLaterSourceWinsOnConflict(t *testing.T) {
	// Field sets are disjoint across the real sources; this guards the
	// precedence rule anyway.
	first := annual("first", dataset.FieldCO2, map[int]float64{2016: 100})
	second := annual("second", dataset.FieldCO2, map[int]float64{2016: 200})

	out := Join(first, second)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, dataset.Some(200), out.Rows[0].Values[dataset.FieldCO2])
}

func TestJoinRegionsStayDistinct(t *testing.T) {
	uk := annual("co2", dataset.FieldCO2, map[int]float64{2016: 350.1})
	scotland := dataset.Dataset{
		Source: "co2-regional",
		Records: []dataset.Record{{
			Period: dataset.Period{Year: 2016},
			Region: "Scotland",
			Values: map[dataset.Field]dataset.Value{dataset.FieldCO2: dataset.Some(40.2)},
		}},
	}

	out := Join(uk, scotland)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "Scotland", out.Rows[0].Region)
	assert.Equal(t, "UK", out.Rows[1].Region)
}
