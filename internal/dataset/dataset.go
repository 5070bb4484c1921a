package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// DefaultRegion is assumed when a source has no regional breakdown.
const DefaultRegion = "UK"

// Field identifies a canonical value column of the integrated schema.
type Field string

const (
	FieldOilPrice   Field = "oil_price"
	FieldFossilFuel Field = "fossil_fuel_consumption"
	FieldCO2        Field = "co2_emissions"
	FieldWeather    Field = "weather_metric"
)

// CanonicalFields returns the value columns of the integrated schema in
// output order.
func CanonicalFields() []Field {
	return []Field{FieldOilPrice, FieldFossilFuel, FieldCO2, FieldWeather}
}

// Value is a nullable float64. The zero Value is the missing marker,
// distinct from an explicit zero.
type Value struct {
	Float64 float64
	Valid   bool
}

// Some wraps f as a present value.
func Some(f float64) Value {
	return Value{Float64: f, Valid: true}
}

// MarshalJSON renders missing values as null, never as zero.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return jsonFloat(v.Float64)
}

// Key identifies a row across all datasets.
type Key struct {
	Period Period
	Region string
}

// Less orders keys by period then region, giving deterministic row order.
func (k Key) Less(o Key) bool {
	if k.Period != o.Period {
		return k.Period.Less(o.Period)
	}
	return k.Region < o.Region
}

func (k Key) String() string {
	return k.Period.String() + "/" + k.Region
}

// Record is one row keyed by (period, region) holding canonical value fields.
type Record struct {
	Period Period          `json:"period"`
	Region string          `json:"region"`
	Values map[Field]Value `json:"values"`
}

// Key returns the record's (period, region) key.
func (r Record) Key() Key {
	return Key{Period: r.Period, Region: r.Region}
}

// Dataset is an ordered sequence of records from one source, homogeneous in
// schema after normalization.
type Dataset struct {
	Source  string
	Records []Record
}

// Keys returns the dataset's keys in record order.
func (d Dataset) Keys() []Key {
	keys := make([]Key, 0, len(d.Records))
	for _, r := range d.Records {
		keys = append(keys, r.Key())
	}
	return keys
}

// jsonFloat encodes f for JSON. NaN degrades to null; infinities are not
// representable and error out.
func jsonFloat(f float64) ([]byte, error) {
	if math.IsNaN(f) {
		return []byte("null"), nil
	}
	if math.IsInf(f, 0) {
		return nil, fmt.Errorf("infinite value is not representable")
	}
	return strconv.AppendFloat(nil, f, 'f', -1, 64), nil
}

func sortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Key().Less(records[j].Key())
	})
}
