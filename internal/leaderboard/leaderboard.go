// Package leaderboard keeps the top ten scores in a plain text file, one
// record per line: "<score> <unix-time> <name>". The name runs to the end
// of the line and may contain spaces.
package leaderboard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxEntries is the number of records kept.
	MaxEntries = 10

	// MaxNameLen caps player names, in runes.
	MaxNameLen = 15

	// GuestName replaces an empty player name.
	GuestName = "Guest"
)

// Record is one leaderboard line.
type Record struct {
	Score int
	Time  time.Time
	Name  string
}

// NewRecord builds a record stamped with now and a normalized name.
func NewRecord(score int, name string, now time.Time) Record {
	return Record{Score: score, Time: time.Unix(now.Unix(), 0), Name: NormalizeName(name)}
}

// NormalizeName trims name, caps it at MaxNameLen runes and substitutes
// GuestName for an empty result. Line breaks become spaces.
func NormalizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > MaxNameLen {
		name = strings.TrimSpace(string([]rune(name)[:MaxNameLen]))
	}
	if name == "" {
		return GuestName
	}
	return name
}

// Board is a sorted list of at most MaxEntries records: score descending,
// ties broken by the earlier time.
type Board struct {
	records []Record

	// Skipped counts malformed lines dropped while parsing.
	Skipped int
}

// New returns an empty board.
func New() *Board {
	return &Board{}
}

// Parse reads a board. Malformed lines are skipped and counted.
func Parse(r io.Reader) (*Board, error) {
	b := New()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, ok := parseLine(line)
		if !ok {
			b.Skipped++
			continue
		}
		b.records = append(b.records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("leaderboard: read: %w", err)
	}
	b.revise()
	return b, nil
}

func parseLine(line string) (Record, bool) {
	scoreText, rest, ok := strings.Cut(strings.TrimLeft(line, " \t"), " ")
	if !ok {
		return Record{}, false
	}
	timeText, name, _ := strings.Cut(strings.TrimLeft(rest, " \t"), " ")

	score, err := strconv.Atoi(scoreText)
	if err != nil {
		return Record{}, false
	}
	sec, err := strconv.ParseInt(timeText, 10, 64)
	if err != nil {
		return Record{}, false
	}
	name = strings.TrimLeft(name, " \t")
	if name == "" {
		name = GuestName
	}
	return Record{Score: score, Time: time.Unix(sec, 0), Name: name}, true
}

// Load reads the board at path. A missing file is an empty board.
func Load(path string) (*Board, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot open %s: %w", path, err)
	}
	defer f.Close()

	b, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %s: %w", path, err)
	}
	return b, nil
}

// Save writes the board to path, creating the parent directory. The file is
// replaced atomically.
func (b *Board) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("leaderboard: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".leaderboard-*")
	if err != nil {
		return fmt.Errorf("leaderboard: cannot write %s: %w", path, err)
	}
	if _, err := b.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("leaderboard: cannot write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("leaderboard: cannot write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("leaderboard: cannot replace %s: %w", path, err)
	}
	return nil
}

// WriteTo writes the board in file format.
func (b *Board) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, r := range b.records {
		m, err := fmt.Fprintf(bw, "%d %d %s\n", r.Score, r.Time.Unix(), r.Name)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// Records returns a copy of the sorted records.
func (b *Board) Records() []Record {
	return slices.Clone(b.records)
}

// Len returns the number of records.
func (b *Board) Len() int {
	return len(b.records)
}

// Best returns the top score, or 0 for an empty board.
func (b *Board) Best() int {
	if len(b.records) == 0 {
		return 0
	}
	return b.records[0].Score
}

// Rank returns the 1-based place a new score would take, or -1 when it
// would fall outside the top MaxEntries. A new score ties below existing
// equal scores.
func (b *Board) Rank(score int) int {
	for i, r := range b.records {
		if r.Score < score {
			return i + 1
		}
	}
	if len(b.records) < MaxEntries {
		return len(b.records) + 1
	}
	return -1
}

// Qualifies reports whether score would enter the board.
func (b *Board) Qualifies(score int) bool {
	return b.Rank(score) > 0
}

// Insert adds rec and returns its rank, or -1 if it did not make the board.
func (b *Board) Insert(rec Record) int {
	rec.Name = NormalizeName(rec.Name)
	i := len(b.records)
	for j, r := range b.records {
		if r.Score < rec.Score || (r.Score == rec.Score && r.Time.After(rec.Time)) {
			i = j
			break
		}
	}
	if i >= MaxEntries {
		return -1
	}
	b.records = slices.Insert(b.records, i, rec)
	if len(b.records) > MaxEntries {
		b.records = b.records[:MaxEntries]
	}
	return i + 1
}

// revise sorts and truncates to MaxEntries.
func (b *Board) revise() {
	slices.SortStableFunc(b.records, func(x, y Record) int {
		if x.Score != y.Score {
			return y.Score - x.Score
		}
		return x.Time.Compare(y.Time)
	})
	if len(b.records) > MaxEntries {
		b.records = b.records[:MaxEntries]
	}
}
