package levels

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/vovakirdan/brickwell/internal/sim"
)

//go:embed builtin
var builtinFS embed.FS

// IndexFile lists the campaign's level files in play order.
const IndexFile = "index.txt"

// ErrEmptyCampaign is returned when an index names no levels.
var ErrEmptyCampaign = errors.New("levels: campaign has no levels")

// Campaign is an ordered list of levels.
type Campaign struct {
	Levels []sim.LevelSpec
	Files  []string
}

// Len returns the number of levels.
func (c *Campaign) Len() int {
	return len(c.Levels)
}

// Level returns the i-th level (0-based).
func (c *Campaign) Level(i int) (sim.LevelSpec, bool) {
	if i < 0 || i >= len(c.Levels) {
		return sim.LevelSpec{}, false
	}
	return c.Levels[i], true
}

// Builtin returns the campaign shipped with the binary.
func Builtin(d Defaults) (*Campaign, error) {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("levels: builtin: %w", err)
	}
	return LoadFS(sub, d)
}

// LoadDir loads a campaign from a directory holding an index.txt.
func LoadDir(dir string, d Defaults) (*Campaign, error) {
	c, err := LoadFS(os.DirFS(dir), d)
	if err != nil {
		return nil, fmt.Errorf("%w (dir %s)", err, dir)
	}
	return c, nil
}

// LoadFS loads a campaign from fsys. Blank index lines and lines starting
// with '#' are ignored. A file that fails to parse fails the campaign.
func LoadFS(fsys fs.FS, d Defaults) (*Campaign, error) {
	index, err := fs.ReadFile(fsys, IndexFile)
	if err != nil {
		return nil, fmt.Errorf("levels: cannot read %s: %w", IndexFile, err)
	}

	c := &Campaign{}
	sc := bufio.NewScanner(bytes.NewReader(index))
	for sc.Scan() {
		file := strings.TrimSpace(sc.Text())
		if file == "" || strings.HasPrefix(file, "#") {
			continue
		}
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("levels: cannot read %s: %w", file, err)
		}
		spec, err := Parse(file, data, d)
		if err != nil {
			return nil, err
		}
		c.Levels = append(c.Levels, spec)
		c.Files = append(c.Files, file)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", IndexFile, err)
	}
	if len(c.Levels) == 0 {
		return nil, ErrEmptyCampaign
	}
	return c, nil
}
