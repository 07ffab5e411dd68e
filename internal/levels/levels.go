// Package levels loads brickwell level files. Two formats are understood:
// the whitespace command format (.bl) and YAML (.yaml, .yml). A campaign is
// an ordered list of level files named by index.txt.
package levels

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/vovakirdan/brickwell/internal/sim"
)

var (
	// ErrUnknownCommand is returned for a token the .bl parser does not know.
	ErrUnknownCommand = errors.New("levels: unknown command")

	// ErrBadNumber is returned when a numeric argument does not parse.
	ErrBadNumber = errors.New("levels: bad number")

	// ErrUnexpectedEOF is returned when a command is cut short.
	ErrUnexpectedEOF = errors.New("levels: unexpected end of file")

	// ErrUnsupportedFormat is returned for a file extension with no parser.
	ErrUnsupportedFormat = errors.New("levels: unsupported format")
)

// Defaults are the drop settings a level starts from before its file
// overrides them.
type Defaults struct {
	DropFrequency int
	DropOffset    int
	PityThreshold int
}

// DefaultDefaults returns the stock drop settings.
func DefaultDefaults() Defaults {
	return Defaults{DropFrequency: 5, DropOffset: 2, PityThreshold: 80}
}

func (d Defaults) spec(name string) sim.LevelSpec {
	spec := sim.DefaultLevelSpec(name)
	spec.DropFrequency = d.DropFrequency
	spec.DropOffset = d.DropOffset
	spec.PityThreshold = d.PityThreshold
	return spec
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".bl", ".yaml", ".yml"}
}

// Parse routes data to the parser for the file's extension. The level is
// named after the file unless the file names itself.
func Parse(file string, data []byte, d Defaults) (sim.LevelSpec, error) {
	name := strings.TrimSuffix(path.Base(file), path.Ext(file))
	switch strings.ToLower(path.Ext(file)) {
	case ".bl":
		return ParseBL(name, strings.NewReader(string(data)), d)
	case ".yaml", ".yml":
		return ParseYAML(name, data, d)
	default:
		return sim.LevelSpec{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, file)
	}
}

// BlockCount returns the number of blocks a level creates, walls included.
func BlockCount(spec sim.LevelSpec) int {
	n := len(spec.Blocks)
	for _, g := range spec.Grids {
		n += max(g.Cols, 0) * max(g.Rows, 0)
	}
	return n
}
