package plot

import (
	"fmt"

	"github.com/KaramelBytes/cardioviz/internal/analysis"
	"github.com/KaramelBytes/cardioviz/internal/utils"
	"github.com/rs/zerolog/log"
)

// Figure is a rendered PNG together with the data it was drawn from.
type Figure struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	PNG    []byte                `json:"-"`
	Counts []analysis.GroupCount `json:"-"` // catplot only
	Corr   *analysis.CorrMatrix  `json:"-"` // heatmap only
}

// Save writes the PNG to Path, replacing any existing file.
func (f *Figure) Save() error {
	if f.Path == "" {
		return fmt.Errorf("save %s: no output path", f.Name)
	}
	if err := utils.SafeWriteFile(f.Path, f.PNG); err != nil {
		return fmt.Errorf("save %s: %w", f.Name, err)
	}
	log.Debug().Str("figure", f.Name).Str("path", f.Path).Int("bytes", len(f.PNG)).Msg("wrote figure")
	return nil
}
