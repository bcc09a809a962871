package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/KaramelBytes/cardioviz/internal/plot"
	"github.com/KaramelBytes/cardioviz/internal/utils"
	"github.com/google/uuid"
)

// Run records one render invocation: the input it read and the figures it wrote.
type Run struct {
	ID        string    `json:"id"`
	Input     string    `json:"input"`
	Rows      int       `json:"rows"`
	Figures   []*Entry  `json:"figures"`
	CreatedAt time.Time `json:"created_at"`
}

// Entry describes a written figure.
type Entry struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Bytes  int    `json:"bytes"`

	// catplot
	Groups int `json:"groups,omitempty"`
	// heatmap
	Columns      []string `json:"columns,omitempty"`
	FilteredRows *int     `json:"filtered_rows,omitempty"`
}

// New constructs an in-memory run. Call Save() to persist.
func New(input string, rows int) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Input:     input,
		Rows:      rows,
		CreatedAt: time.Now().UTC(),
	}
}

// Add appends a figure entry.
func (r *Run) Add(fig *plot.Figure) {
	if fig == nil {
		return
	}
	e := &Entry{
		Name:   fig.Name,
		Path:   fig.Path,
		Width:  fig.Width,
		Height: fig.Height,
		Bytes:  len(fig.PNG),
		Groups: len(fig.Counts),
	}
	if fig.Corr != nil {
		e.Columns = append([]string(nil), fig.Corr.Columns...)
		n := fig.Corr.Rows
		e.FilteredRows = &n
	}
	r.Figures = append(r.Figures, e)
}

// Figure returns the entry with the given name, or nil.
func (r *Run) Figure(name string) *Entry {
	for _, e := range r.Figures {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Save writes the run as indented JSON using atomic write.
func (r *Run) Save(path string) error {
	if path == "" {
		return errors.New("manifest path not set")
	}
	data, err := utils.PrettyJSON(r)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(path, data)
}

// Load reads a manifest written by Save.
func Load(path string) (*Run, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("manifest not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var r Run
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &r, nil
}
