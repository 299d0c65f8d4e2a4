package writer

import (
	"fmt"
	"io/fs"
	"sync"
)

// MemWriter captures saved files in memory.
type MemWriter struct {
	mu    sync.Mutex
	files map[string][]byte

	// Err, when set, is returned by every Save.
	Err error
}

// Save stores a copy of buf under path.
func (w *MemWriter) Save(path string, buf []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Err != nil {
		return w.Err
	}
	if w.files == nil {
		w.files = make(map[string][]byte)
	}
	w.files[path] = append([]byte(nil), buf...)
	return nil
}

// File returns what was saved under path.
func (w *MemWriter) File(path string) ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	data, ok := w.files[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, fs.ErrNotExist)
	}
	return data, nil
}
