package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// SchemaError reports a row that cannot be brought into the canonical schema.
type SchemaError struct {
	Source string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error in %s: %s", e.Source, e.Reason)
}

// RawRow maps a source's native column names to cell values.
type RawRow map[string]string

// RawTable is the pre-normalization form every source reader returns.
type RawTable struct {
	Source string
	Rows   []RawRow
}

// FieldSpec maps a native column onto a canonical field. Scale is a
// unit-conversion factor applied to the parsed value; 0 means 1.
type FieldSpec struct {
	Field Field
	Scale float64
}

// Mapping is the source-specific rule set for normalization: a column rename
// table, unit-conversion factors, and a period-parsing rule.
type Mapping struct {
	PeriodColumn string
	RegionColumn string // optional; Region is assumed when empty
	Region       string // region for sources without a regional breakdown
	Fields       map[string]FieldSpec

	// ParsePeriod overrides the canonical period parser for sources with a
	// native date format. Nil means ParsePeriod.
	ParsePeriod func(string) (Period, error)
}

// Normalize is a pure transform from a raw table to a canonical Dataset.
// Rows with unparseable periods or values fail with a SchemaError, as do
// duplicate (period, region) keys. Rows outside the window are dropped.
// The returned records are sorted by key.
func Normalize(raw RawTable, m Mapping, window Window) (Dataset, error) {
	parse := m.ParsePeriod
	if parse == nil {
		parse = ParsePeriod
	}

	region := m.Region
	if region == "" {
		region = DefaultRegion
	}

	seen := make(map[Key]struct{}, len(raw.Rows))
	records := make([]Record, 0, len(raw.Rows))

	for _, row := range raw.Rows {
		cell, ok := row[m.PeriodColumn]
		if !ok {
			return Dataset{}, &SchemaError{Source: raw.Source, Reason: fmt.Sprintf("missing period column %q", m.PeriodColumn)}
		}

		period, err := parse(cell)
		if err != nil {
			return Dataset{}, &SchemaError{Source: raw.Source, Reason: fmt.Sprintf("unparseable period %q: %v", cell, err)}
		}

		if !window.Contains(period) {
			continue
		}

		rec := Record{
			Period: period,
			Region: region,
			Values: make(map[Field]Value, len(m.Fields)),
		}
		if m.RegionColumn != "" {
			if r := strings.TrimSpace(row[m.RegionColumn]); r != "" {
				rec.Region = r
			}
		}

		key := rec.Key()
		if _, dup := seen[key]; dup {
			return Dataset{}, &SchemaError{Source: raw.Source, Reason: fmt.Sprintf("duplicate key %s", key)}
		}
		seen[key] = struct{}{}

		for column, spec := range m.Fields {
			cell, ok := row[column]
			if !ok || strings.TrimSpace(cell) == "" {
				// Absent cell stays a missing marker.
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return Dataset{}, &SchemaError{Source: raw.Source, Reason: fmt.Sprintf("invalid value %q in column %q", cell, column)}
			}
			scale := spec.Scale
			if scale == 0 {
				scale = 1
			}
			rec.Values[spec.Field] = Some(v * scale)
		}

		records = append(records, rec)
	}

	sortRecords(records)
	return Dataset{Source: raw.Source, Records: records}, nil
}
