package analysis

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/cardioviz/internal/dataset"
	"github.com/rs/zerolog/log"
)

// Indicators are the binary health indicators shown in the categorical plot.
var Indicators = []string{
	dataset.ColCholesterol,
	dataset.ColGlucose,
	dataset.ColSmoke,
	dataset.ColAlcohol,
	dataset.ColActive,
	dataset.ColOverweight,
}

// OutcomeColumn splits the categorical plot into panels.
const OutcomeColumn = dataset.ColCardio

// LongRow is one (record, indicator) pair of the wide-to-long reshape.
type LongRow struct {
	ID       int // value of the id column
	Variable string
	Value    int
}

// GroupCount is the number of long rows sharing (outcome, variable, value).
type GroupCount struct {
	Cardio   int
	Variable string
	Value    int
	Total    int
}

type groupKey struct {
	cardio   int
	variable string
	value    int
}

// Melt reshapes vars from wide to long form, carrying the id column along.
// Rows are ordered variable by variable, then by record.
func Melt(t *dataset.Table, id string, vars []string) ([]LongRow, error) {
	ids, err := t.Float(id)
	if err != nil {
		return nil, fmt.Errorf("melt: %w", err)
	}
	out := make([]LongRow, 0, len(ids)*len(vars))
	for _, v := range vars {
		vals, err := t.Float(v)
		if err != nil {
			return nil, fmt.Errorf("melt: %w", err)
		}
		for i := range vals {
			out = append(out, LongRow{ID: int(ids[i]), Variable: v, Value: int(vals[i])})
		}
	}
	return out, nil
}

// CountGroups tallies long rows per (id, variable, value). Only combinations
// that occur are returned, sorted by id, variable and value.
func CountGroups(rows []LongRow) []GroupCount {
	counts := make(map[groupKey]int)
	for _, r := range rows {
		counts[groupKey{cardio: r.ID, variable: r.Variable, value: r.Value}]++
	}
	out := make([]GroupCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, GroupCount{Cardio: k.cardio, Variable: k.variable, Value: k.value, Total: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cardio != out[j].Cardio {
			return out[i].Cardio < out[j].Cardio
		}
		if out[i].Variable != out[j].Variable {
			return out[i].Variable < out[j].Variable
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// CatCounts melts the indicator columns by outcome and counts each group.
func CatCounts(t *dataset.Table) ([]GroupCount, error) {
	long, err := Melt(t, OutcomeColumn, Indicators)
	if err != nil {
		return nil, err
	}
	counts := CountGroups(long)
	log.Debug().Int("long_rows", len(long)).Int("groups", len(counts)).Msg("counted indicator groups")
	return counts, nil
}
