package sim

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrEmptyLootTable is returned when a loot table has no entries.
	ErrEmptyLootTable = errors.New("sim: loot table is empty")

	// ErrNonPositiveWeight is returned when an entry has weight <= 0.
	ErrNonPositiveWeight = errors.New("sim: loot weight must be positive")

	// ErrUnknownPowerUp is returned for a weight keyed by an invalid kind.
	ErrUnknownPowerUp = errors.New("sim: unknown power-up")

	// ErrLootInvariant means a draw fell past every cumulative weight.
	// It cannot happen for a table built by NewLootTable.
	ErrLootInvariant = errors.New("sim: loot draw exceeded total weight")
)

// LootEntry is one weighted power-up of a table.
type LootEntry struct {
	PowerUp PowerUp
	Weight  int
}

// LootTable draws power-ups with probability weight/total.
// It is immutable after construction.
type LootTable struct {
	entries []LootEntry
	total   int
}

// NewLootTable builds a table from a weight map. Entries are ordered by
// power-up id so draws are reproducible for a given random source.
func NewLootTable(weights map[PowerUp]int) (*LootTable, error) {
	if len(weights) == 0 {
		return nil, ErrEmptyLootTable
	}

	t := &LootTable{entries: make([]LootEntry, 0, len(weights))}
	for p, w := range weights {
		if !p.Valid() {
			return nil, fmt.Errorf("%w: id %d", ErrUnknownPowerUp, p)
		}
		if w <= 0 {
			return nil, fmt.Errorf("%w: %s has weight %d", ErrNonPositiveWeight, p, w)
		}
		t.entries = append(t.entries, LootEntry{PowerUp: p, Weight: w})
		t.total += w
	}
	slices.SortFunc(t.entries, func(a, b LootEntry) int {
		return int(a.PowerUp) - int(b.PowerUp)
	})
	return t, nil
}

// Draw picks a power-up. A uniform value r in [1, total] selects the first
// entry whose cumulative weight reaches r.
func (t *LootTable) Draw(src Source) (PowerUp, error) {
	r := src.Intn(t.total) + 1

	cum := 0
	for _, e := range t.entries {
		cum += e.Weight
		if cum >= r {
			return e.PowerUp, nil
		}
	}
	return 0, fmt.Errorf("%w: drew %d of %d", ErrLootInvariant, r, t.total)
}

// Total returns the sum of all weights.
func (t *LootTable) Total() int {
	return t.total
}

// Weight returns the weight of p, or 0 if p is not in the table.
func (t *LootTable) Weight(p PowerUp) int {
	for _, e := range t.entries {
		if e.PowerUp == p {
			return e.Weight
		}
	}
	return 0
}

// Entries returns a copy of the entries in draw order.
func (t *LootTable) Entries() []LootEntry {
	return slices.Clone(t.entries)
}

// DefaultLootWeights gives every power-up weight 5.
func DefaultLootWeights() map[PowerUp]int {
	w := make(map[PowerUp]int, len(powerUps))
	for _, p := range AllPowerUps() {
		w[p] = 5
	}
	return w
}

// DefaultPityWeights is the table used for pity drops.
func DefaultPityWeights() map[PowerUp]int {
	return map[PowerUp]int{
		Multiball:    1,
		MissileGrant: 1,
	}
}
