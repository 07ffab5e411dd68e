package sim

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/brickwell/internal/core"
)

// DefaultBlockPoints is awarded for a block that does not set its own value.
const DefaultBlockPoints = 100

// ErrBadGrid is returned for a grid with a negative repeat count.
var ErrBadGrid = errors.New("sim: grid repeat counts must not be negative")

// BlockID identifies a block for its whole life in a registry.
type BlockID int

// Block is a rectangular obstacle. Walls (Unbreakable) are never broken.
type Block struct {
	ID          BlockID
	Rect        core.Rect
	Points      int
	Unbreakable bool
	Color       int
	broken      bool
}

// Broken reports whether the block has been hit and awaits removal.
func (b *Block) Broken() bool {
	return b.broken
}

// Break marks the block broken. Returns true only on the first call for a
// breakable block.
func (b *Block) Break() bool {
	if b.Unbreakable || b.broken {
		return false
	}
	b.broken = true
	return true
}

// BlockSpec describes a single block.
type BlockSpec struct {
	Rect        core.Rect
	Points      int // 0 means DefaultBlockPoints
	Unbreakable bool
	Color       int
}

// GridSpec describes Cols×Rows copies of Subject, copy (i, j) offset by
// (i*Sep.X, j*Sep.Y).
type GridSpec struct {
	Subject core.Rect
	Sep     core.Vector2
	Cols    int
	Rows    int
	Points  int
	Color   int
}

// BlockRegistry owns every block of a level. Blocks are addressed by index
// for iteration and by BlockID for identity; Sweep compacts the storage.
type BlockRegistry struct {
	blocks []Block
	nextID BlockID
}

// NewBlockRegistry creates an empty registry.
func NewBlockRegistry() *BlockRegistry {
	return &BlockRegistry{}
}

// Add inserts a block and returns its id.
func (r *BlockRegistry) Add(spec BlockSpec) BlockID {
	points := spec.Points
	if points == 0 {
		points = DefaultBlockPoints
	}
	id := r.nextID
	r.nextID++
	r.blocks = append(r.blocks, Block{
		ID:          id,
		Rect:        spec.Rect,
		Points:      points,
		Unbreakable: spec.Unbreakable,
		Color:       spec.Color,
	})
	return id
}

// AddGrid inserts a grid of breakable blocks, column by column.
func (r *BlockRegistry) AddGrid(g GridSpec) ([]BlockID, error) {
	if g.Cols < 0 || g.Rows < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadGrid, g.Cols, g.Rows)
	}
	ids := make([]BlockID, 0, g.Cols*g.Rows)
	for i := 0; i < g.Cols; i++ {
		for j := 0; j < g.Rows; j++ {
			offset := core.Vec(float64(i)*g.Sep.X, float64(j)*g.Sep.Y)
			ids = append(ids, r.Add(BlockSpec{
				Rect:   g.Subject.Translate(offset),
				Points: g.Points,
				Color:  g.Color,
			}))
		}
	}
	return ids, nil
}

// Len returns the number of stored blocks, broken or not.
func (r *BlockRegistry) Len() int {
	return len(r.blocks)
}

// At returns the block at index i. The pointer is valid until the next Sweep.
func (r *BlockRegistry) At(i int) *Block {
	return &r.blocks[i]
}

// Get finds a block by id.
func (r *BlockRegistry) Get(id BlockID) (*Block, bool) {
	for i := range r.blocks {
		if r.blocks[i].ID == id {
			return &r.blocks[i], true
		}
	}
	return nil, false
}

// Sweep removes broken blocks and returns them in registry order.
func (r *BlockRegistry) Sweep() []Block {
	var swept []Block
	kept := r.blocks[:0]
	for _, b := range r.blocks {
		if b.broken {
			swept = append(swept, b)
			continue
		}
		kept = append(kept, b)
	}
	clear(r.blocks[len(kept):])
	r.blocks = kept
	return swept
}

// RemainingBreakable counts breakable blocks not yet broken.
func (r *BlockRegistry) RemainingBreakable() int {
	n := 0
	for i := range r.blocks {
		if !r.blocks[i].Unbreakable && !r.blocks[i].broken {
			n++
		}
	}
	return n
}

// AllDestroyed reports whether no breakable block is left.
func (r *BlockRegistry) AllDestroyed() bool {
	return r.RemainingBreakable() == 0
}
