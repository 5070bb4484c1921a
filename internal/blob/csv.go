package blob

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"

	"github.com/C-dan93/oil-price-analysis-uk/internal/dataset"
	"github.com/C-dan93/oil-price-analysis-uk/internal/integrate"
)

// WriteError reports a serialization or upload failure.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write error during %s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// EncodeCSV serializes the integrated dataset with the canonical header
// period,region,oil_price,fossil_fuel_consumption,co2_emissions,weather_metric.
// Missing values become empty cells. NaN degrades to a missing cell, never the
// string "NaN"; infinities are not representable and fail with a WriteError.
func EncodeCSV(ds integrate.IntegratedDataset) ([]byte, error) {
	fields := dataset.CanonicalFields()

	header := make([]string, 0, 2+len(fields))
	header = append(header, "period", "region")
	for _, f := range fields {
		header = append(header, string(f))
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, &WriteError{Op: "encode", Err: err}
	}

	row := make([]string, len(header))
	for _, rec := range ds.Rows {
		row[0] = rec.Period.String()
		row[1] = rec.Region
		for i, f := range fields {
			cell, err := encodeCell(rec.Values[f])
			if err != nil {
				return nil, &WriteError{Op: "encode", Err: fmt.Errorf("key %s column %s: %w", rec.Key(), f, err)}
			}
			row[2+i] = cell
		}
		if err := w.Write(row); err != nil {
			return nil, &WriteError{Op: "encode", Err: err}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, &WriteError{Op: "encode", Err: err}
	}
	return buf.Bytes(), nil
}

func encodeCell(v dataset.Value) (string, error) {
	if !v.Valid || math.IsNaN(v.Float64) {
		return "", nil
	}
	if math.IsInf(v.Float64, 0) {
		return "", fmt.Errorf("infinite value is not representable")
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64), nil
}
