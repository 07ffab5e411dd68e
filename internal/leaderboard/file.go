package leaderboard

import "sync"

// File serializes access to a leaderboard file shared by several players,
// such as the sessions of one SSH server.
type File struct {
	path string
	mu   sync.Mutex
}

// Open returns a handle for the board at path. The file is created on the
// first Submit.
func Open(path string) *File {
	return &File{path: path}
}

// Path returns the file location.
func (f *File) Path() string {
	return f.path
}

// Board loads the current board.
func (f *File) Board() (*Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Load(f.path)
}

// Submit inserts rec and saves the board when it made the cut.
// Returns the rank, or -1 when nothing was written.
func (f *File) Submit(rec Record) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := Load(f.path)
	if err != nil {
		return -1, err
	}
	rank := b.Insert(rec)
	if rank < 0 {
		return -1, nil
	}
	if err := b.Save(f.path); err != nil {
		return -1, err
	}
	return rank, nil
}
