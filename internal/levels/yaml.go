package levels

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/brickwell/internal/core"
	"github.com/vovakirdan/brickwell/internal/sim"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	Name   string         `yaml:"name"`
	Drops  *YAMLDrops     `yaml:"drops,omitempty"`
	Loot   map[string]int `yaml:"loot,omitempty"`
	Pity   *YAMLPity      `yaml:"pity,omitempty"`
	Blocks []YAMLBlock    `yaml:"blocks"`
	Grids  []YAMLGrid     `yaml:"grids,omitempty"`
}

// YAMLDrops overrides the drop cadence.
type YAMLDrops struct {
	Frequency *int `yaml:"frequency,omitempty"`
	Offset    *int `yaml:"offset,omitempty"`
}

// YAMLPity overrides the pity system.
type YAMLPity struct {
	Threshold *int           `yaml:"threshold,omitempty"`
	Weights   map[string]int `yaml:"weights,omitempty"`
}

// YAMLBlock is a single block; rect is [x1, y1, x2, y2].
type YAMLBlock struct {
	Rect   [4]float64 `yaml:"rect"`
	Points int        `yaml:"points,omitempty"`
	Color  int        `yaml:"color,omitempty"`
	Wall   bool       `yaml:"wall,omitempty"`
}

// YAMLGrid is a grid of breakable blocks built from its first block.
type YAMLGrid struct {
	Rect       [4]float64 `yaml:"rect"`
	Separation [2]float64 `yaml:"separation"`
	Repeat     [2]int     `yaml:"repeat"` // columns, rows
	Points     int        `yaml:"points,omitempty"`
	Color      int        `yaml:"color,omitempty"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(name string, data []byte, d Defaults) (sim.LevelSpec, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return sim.LevelSpec{}, fmt.Errorf("levels: %s: yaml unmarshal: %w", name, err)
	}
	if yl.Name != "" {
		name = yl.Name
	}

	spec := d.spec(name)
	if yl.Drops != nil {
		if yl.Drops.Frequency != nil {
			spec.DropFrequency = *yl.Drops.Frequency
		}
		if yl.Drops.Offset != nil {
			spec.DropOffset = *yl.Drops.Offset
		}
	}
	if spec.DropFrequency <= 0 {
		return sim.LevelSpec{}, fmt.Errorf("levels: %s: %w", name, sim.ErrNonPositiveDropFrequency)
	}

	if len(yl.Loot) > 0 {
		w, err := weightsByAbbr(yl.Loot)
		if err != nil {
			return sim.LevelSpec{}, fmt.Errorf("levels: %s: loot: %w", name, err)
		}
		spec.Loot = w
	}
	if yl.Pity != nil {
		if yl.Pity.Threshold != nil {
			spec.PityThreshold = *yl.Pity.Threshold
		}
		if len(yl.Pity.Weights) > 0 {
			w, err := weightsByAbbr(yl.Pity.Weights)
			if err != nil {
				return sim.LevelSpec{}, fmt.Errorf("levels: %s: pity: %w", name, err)
			}
			spec.Pity = w
		}
	}

	for _, b := range yl.Blocks {
		spec.Blocks = append(spec.Blocks, sim.BlockSpec{
			Rect:        core.R(b.Rect[0], b.Rect[1], b.Rect[2], b.Rect[3]),
			Points:      b.Points,
			Unbreakable: b.Wall,
			Color:       b.Color,
		})
	}
	for _, g := range yl.Grids {
		if g.Repeat[0] < 0 || g.Repeat[1] < 0 {
			return sim.LevelSpec{}, fmt.Errorf("levels: %s: %w", name, sim.ErrBadGrid)
		}
		spec.Grids = append(spec.Grids, sim.GridSpec{
			Subject: core.R(g.Rect[0], g.Rect[1], g.Rect[2], g.Rect[3]),
			Sep:     core.Vec(g.Separation[0], g.Separation[1]),
			Cols:    g.Repeat[0],
			Rows:    g.Repeat[1],
			Points:  g.Points,
			Color:   g.Color,
		})
	}
	return spec, nil
}

func weightsByAbbr(in map[string]int) (map[sim.PowerUp]int, error) {
	out := make(map[sim.PowerUp]int, len(in))
	for abbr, w := range in {
		p, ok := sim.PowerUpByAbbr(abbr)
		if !ok {
			return nil, fmt.Errorf("%w %q", sim.ErrUnknownPowerUp, abbr)
		}
		if w <= 0 {
			return nil, fmt.Errorf("%w: %s has weight %d", sim.ErrNonPositiveWeight, abbr, w)
		}
		out[p] = w
	}
	return out, nil
}
