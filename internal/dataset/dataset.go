package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rs/zerolog/log"
)

// Column names used by the enrichment and the figure builders.
const (
	ColHeight      = "height"
	ColWeight      = "weight"
	ColSystolic    = "ap_hi"
	ColDiastolic   = "ap_lo"
	ColCholesterol = "cholesterol"
	ColGlucose     = "gluc"
	ColSmoke       = "smoke"
	ColAlcohol     = "alco"
	ColActive      = "active"
	ColCardio      = "cardio"
	ColBMI         = "BMI"
	ColOverweight  = "overweight"
)

// RequiredColumns must be present in every input file.
var RequiredColumns = []string{
	ColHeight, ColWeight, ColSystolic, ColDiastolic,
	ColCholesterol, ColGlucose, ColSmoke, ColAlcohol, ColActive, ColCardio,
}

var (
	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("missing column")
	// ErrNotNumeric is returned when a required column holds non-numeric or empty cells.
	ErrNotNumeric = errors.New("column is not numeric")
)

// Options controls how the input file is read and enriched.
type Options struct {
	// Delimiter for CSV. If 0, '\t' is used for .tsv files and ',' otherwise.
	Delimiter rune
	// OverweightBMI is the BMI above which a record counts as overweight.
	OverweightBMI float64
}

// DefaultOptions returns the settings used for medical_examination.csv.
func DefaultOptions() Options {
	return Options{Delimiter: ',', OverweightBMI: 25}
}

// Table is the enriched examination table.
type Table struct {
	Name string
	df   dataframe.DataFrame
}

// Load reads and enriches the delimited file at path.
func Load(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	if opt.Delimiter == 0 {
		opt.Delimiter = sniffDelimiter(path)
	}
	return Read(f, filepath.Base(path), opt)
}

// Read parses a header-first delimited stream whose first column is the
// record identifier, validates the required columns and enriches the result.
func Read(r io.Reader, name string, opt Options) (*Table, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = ','
	}
	df := dataframe.ReadCSV(r,
		dataframe.WithDelimiter(delim),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues([]string{"", "NA", "NaN", "<nil>"}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read %s: %w", name, df.Err)
	}
	if err := validate(df, name); err != nil {
		return nil, err
	}
	thr := opt.OverweightBMI
	if thr <= 0 {
		thr = DefaultOptions().OverweightBMI
	}
	df, err := Enrich(df, thr)
	if err != nil {
		return nil, fmt.Errorf("enrich %s: %w", name, err)
	}
	log.Debug().Str("file", name).Int("rows", df.Nrow()).Int("cols", df.Ncol()).Float64("overweight_bmi", thr).Msg("loaded examination table")
	return &Table{Name: name, df: df}, nil
}

func validate(df dataframe.DataFrame, name string) error {
	present := make(map[string]series.Type, df.Ncol())
	types := df.Types()
	for i, n := range df.Names() {
		present[n] = types[i]
	}
	for _, col := range RequiredColumns {
		typ, ok := present[col]
		if !ok {
			return fmt.Errorf("%s: %w %q", name, ErrMissingColumn, col)
		}
		if typ != series.Int && typ != series.Float {
			return fmt.Errorf("%s: %w: %q has type %s", name, ErrNotNumeric, col, typ)
		}
		for i, v := range df.Col(col).Float() {
			if math.IsNaN(v) {
				return fmt.Errorf("%s: %w: %q is empty at row %d", name, ErrNotNumeric, col, i+1)
			}
		}
	}
	return nil
}

// Enrich adds the BMI and overweight columns and normalizes cholesterol and
// glucose to 0 (normal) / 1 (above normal). Existing columns keep their position.
// A frame that already carries both derived columns is treated as enriched:
// BMI and overweight are recomputed, the lab columns are left alone.
func Enrich(df dataframe.DataFrame, overweightBMI float64) (dataframe.DataFrame, error) {
	enriched := IsEnriched(df)
	heights := df.Col(ColHeight).Float()
	weights := df.Col(ColWeight).Float()
	bmi := make([]float64, len(heights))
	over := make([]int, len(heights))
	for i := range heights {
		bmi[i] = BMI(weights[i], heights[i])
		if bmi[i] > overweightBMI {
			over[i] = 1
		}
	}
	df = df.Mutate(series.New(bmi, series.Float, ColBMI))
	df = df.Mutate(series.New(over, series.Int, ColOverweight))
	if !enriched {
		for _, col := range []string{ColCholesterol, ColGlucose} {
			df = df.Mutate(series.New(normalizeAll(df.Col(col).Float()), series.Int, col))
		}
	}
	if df.Err != nil {
		return df, df.Err
	}
	return df, nil
}

// BMI returns weight(kg) / height(m)² for a height given in centimetres.
func BMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return weightKg / (m * m)
}

// IsEnriched reports whether df already has the BMI and overweight columns.
func IsEnriched(df dataframe.DataFrame) bool {
	var bmi, over bool
	for _, n := range df.Names() {
		switch n {
		case ColBMI:
			bmi = true
		case ColOverweight:
			over = true
		}
	}
	return bmi && over
}

// Normalize maps an ordinal lab level onto 0/1: level 1 is normal (0), anything
// above 1 is above normal (1). It is not idempotent (1 maps to 0), so it must
// run once per table; Enrich guards that.
func Normalize(level float64) int {
	if level > 1 {
		return 1
	}
	return 0
}

func normalizeAll(vals []float64) []int {
	out := make([]int, len(vals))
	for i, v := range vals {
		out[i] = Normalize(v)
	}
	return out
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// Frame returns the underlying data frame. Callers must not mutate it.
func (t *Table) Frame() dataframe.DataFrame { return t.df }

// Nrow returns the number of records.
func (t *Table) Nrow() int { return t.df.Nrow() }

// Names returns column names in file order, derived columns last.
func (t *Table) Names() []string { return t.df.Names() }

// IDColumn is the name of the leading identifier column.
func (t *Table) IDColumn() string {
	names := t.df.Names()
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// Float returns a copy of the named column as float64 values.
func (t *Table) Float(name string) ([]float64, error) {
	s := t.df.Col(name)
	if s.Err != nil {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
	}
	return s.Float(), nil
}

// NumericNames lists the numeric columns in table order.
func (t *Table) NumericNames() []string {
	var out []string
	types := t.df.Types()
	for i, n := range t.df.Names() {
		switch types[i] {
		case series.Int, series.Float, series.Bool:
			out = append(out, n)
		}
	}
	return out
}
