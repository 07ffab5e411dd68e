package levels

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vovakirdan/brickwell/internal/core"
	"github.com/vovakirdan/brickwell/internal/sim"
)

// token is one whitespace-separated word and the line it came from.
type token struct {
	text string
	line int
}

// blParser reads the command format:
//
//	cst rbk x1 y1 x2 y2 color
//	cst wal x1 y1 x2 y2 color
//	cst lvl x1 y1 x2 y2 xsep ysep xrep yrep color
//	loots [freq n] [offset n] [abbr weight]... fin
//	pity [threshold n] [abbr weight]... fin
//
// A '#' starts a comment running to the end of the line.
type blParser struct {
	toks []token
	pos  int
}

// ParseBL parses a level in the command format. A loots or pity block
// replaces the default weights of the table it names.
func ParseBL(name string, r io.Reader, d Defaults) (sim.LevelSpec, error) {
	toks, err := tokenize(r)
	if err != nil {
		return sim.LevelSpec{}, fmt.Errorf("levels: %s: %w", name, err)
	}

	p := &blParser{toks: toks}
	spec := d.spec(name)
	for !p.done() {
		if err := p.command(&spec); err != nil {
			return sim.LevelSpec{}, fmt.Errorf("levels: %s: %w", name, err)
		}
	}
	if spec.DropFrequency <= 0 {
		return sim.LevelSpec{}, fmt.Errorf("levels: %s: %w", name, sim.ErrNonPositiveDropFrequency)
	}
	return spec, nil
}

func tokenize(r io.Reader) ([]token, error) {
	var toks []token
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		for _, f := range strings.Fields(text) {
			toks = append(toks, token{text: f, line: line})
		}
	}
	return toks, sc.Err()
}

func (p *blParser) done() bool {
	return p.pos >= len(p.toks)
}

func (p *blParser) next() (token, error) {
	if p.done() {
		return token{}, ErrUnexpectedEOF
	}
	t := p.toks[p.pos]
	p.pos++
	return t, nil
}

func (p *blParser) float() (float64, error) {
	t, err := p.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(t.text, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: %w %q", t.line, ErrBadNumber, t.text)
	}
	return v, nil
}

func (p *blParser) int() (int, error) {
	t, err := p.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(t.text)
	if err != nil {
		return 0, fmt.Errorf("line %d: %w %q", t.line, ErrBadNumber, t.text)
	}
	return v, nil
}

func (p *blParser) floats(n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		v, err := p.float()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (p *blParser) command(spec *sim.LevelSpec) error {
	t, err := p.next()
	if err != nil {
		return err
	}
	switch t.text {
	case "cst":
		return p.construct(spec)
	case "loots":
		return p.lootBlock(spec)
	case "pity":
		return p.pityBlock(spec)
	}
	return fmt.Errorf("line %d: %w %q", t.line, ErrUnknownCommand, t.text)
}

func (p *blParser) construct(spec *sim.LevelSpec) error {
	t, err := p.next()
	if err != nil {
		return err
	}

	switch t.text {
	case "rbk", "wal":
		v, err := p.floats(4)
		if err != nil {
			return err
		}
		color, err := p.int()
		if err != nil {
			return err
		}
		spec.Blocks = append(spec.Blocks, sim.BlockSpec{
			Rect:        core.R(v[0], v[1], v[2], v[3]),
			Unbreakable: t.text == "wal",
			Color:       color,
		})
		return nil

	case "lvl":
		v, err := p.floats(6)
		if err != nil {
			return err
		}
		cols, err := p.int()
		if err != nil {
			return err
		}
		rows, err := p.int()
		if err != nil {
			return err
		}
		color, err := p.int()
		if err != nil {
			return err
		}
		if cols < 0 || rows < 0 {
			return fmt.Errorf("line %d: %w", t.line, sim.ErrBadGrid)
		}
		spec.Grids = append(spec.Grids, sim.GridSpec{
			Subject: core.R(v[0], v[1], v[2], v[3]),
			Sep:     core.Vec(v[4], v[5]),
			Cols:    cols,
			Rows:    rows,
			Color:   color,
		})
		return nil
	}
	return fmt.Errorf("line %d: %w cst %q", t.line, ErrUnknownCommand, t.text)
}

func (p *blParser) lootBlock(spec *sim.LevelSpec) error {
	weights := map[sim.PowerUp]int{}
	for {
		t, err := p.next()
		if err != nil {
			return err
		}
		switch t.text {
		case "fin":
			if len(weights) > 0 {
				spec.Loot = weights
			}
			return nil
		case "freq":
			if spec.DropFrequency, err = p.int(); err != nil {
				return err
			}
			if spec.DropFrequency <= 0 {
				return fmt.Errorf("line %d: %w", t.line, sim.ErrNonPositiveDropFrequency)
			}
		case "offset":
			if spec.DropOffset, err = p.int(); err != nil {
				return err
			}
		default:
			if err := p.weight(t, weights); err != nil {
				return err
			}
		}
	}
}

func (p *blParser) pityBlock(spec *sim.LevelSpec) error {
	weights := map[sim.PowerUp]int{}
	for {
		t, err := p.next()
		if err != nil {
			return err
		}
		switch t.text {
		case "fin":
			if len(weights) > 0 {
				spec.Pity = weights
			}
			return nil
		case "threshold":
			if spec.PityThreshold, err = p.int(); err != nil {
				return err
			}
		default:
			if err := p.weight(t, weights); err != nil {
				return err
			}
		}
	}
}

// weight reads "<abbr> <n>" where abbr has already been consumed as t.
func (p *blParser) weight(t token, weights map[sim.PowerUp]int) error {
	pu, ok := sim.PowerUpByAbbr(t.text)
	if !ok {
		return fmt.Errorf("line %d: %w %q", t.line, sim.ErrUnknownPowerUp, t.text)
	}
	w, err := p.int()
	if err != nil {
		return err
	}
	if w <= 0 {
		return fmt.Errorf("line %d: %w: %s has weight %d", t.line, sim.ErrNonPositiveWeight, t.text, w)
	}
	weights[pu] = w
	return nil
}
