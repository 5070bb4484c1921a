package integrate

import (
	"log"
	"sort"

	"github.com/C-dan93/oil-price-analysis-uk/internal/dataset"
)

// Contribution records a source dataset that fed the integrated table.
type Contribution struct {
	Source string `json:"source"`
	Rows   int    `json:"rows"`
}

// IntegratedDataset is the full outer join of the source datasets on
// (period, region). Rows are ordered by key, so joining the same inputs
// always yields the same table.
type IntegratedDataset struct {
	Rows    []dataset.Record `json:"rows"`
	Sources []Contribution   `json:"sources"`
}

// Join computes the full outer join of the given normalized datasets on
// (period, region). Every key present in at least one input appears exactly
// once in the output; values absent from a source stay missing markers.
//
// Sets are applied in argument order, which is the fixed source precedence:
// when two sources carry the same field for the same key, the later one wins
// and the conflict is logged. Field sets are disjoint across our sources, so
// this is a guard, not an expected path.
func Join(sets ...dataset.Dataset) IntegratedDataset {
	rows := make(map[dataset.Key]dataset.Record)
	origin := make(map[dataset.Key]map[dataset.Field]string)
	contributions := make([]Contribution, 0, len(sets))

	for _, set := range sets {
		contributions = append(contributions, Contribution{Source: set.Source, Rows: len(set.Records)})

		for _, rec := range set.Records {
			key := rec.Key()

			merged, ok := rows[key]
			if !ok {
				merged = dataset.Record{
					Period: rec.Period,
					Region: rec.Region,
					Values: make(map[dataset.Field]dataset.Value),
				}
				origin[key] = make(map[dataset.Field]string)
			}

			for field, value := range rec.Values {
				if !value.Valid {
					continue
				}
				if prev, taken := origin[key][field]; taken {
					log.Printf("integrate: %s overrides %s for key %s field %s", set.Source, prev, key, field)
				}
				merged.Values[field] = value
				origin[key][field] = set.Source
			}

			rows[key] = merged
		}
	}

	out := make([]dataset.Record, 0, len(rows))
	for _, rec := range rows {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key().Less(out[j].Key())
	})

	return IntegratedDataset{Rows: out, Sources: contributions}
}
