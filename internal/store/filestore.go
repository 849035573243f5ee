package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/pretty"

	"github.com/dshills/keycast/internal/shortcut"
)

// ChangeFunc receives the full shortcut list after every mutation.
type ChangeFunc func(shortcuts []shortcut.Shortcut)

// FileStore is a JSON-file-backed shortcut collection.
type FileStore struct {
	mu        sync.Mutex
	path      string
	shortcuts []shortcut.Shortcut
	callbacks []ChangeFunc
}

// Open loads the collection at path, creating parent directories as needed.
// A missing file starts an empty collection; a corrupt file is treated the
// same way rather than blocking startup.
func Open(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	fs := &FileStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var shortcuts []shortcut.Shortcut
	if err := json.Unmarshal(data, &shortcuts); err == nil {
		fs.shortcuts = shortcuts
	}
	return fs, nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// List returns a deep copy of the collection.
func (f *FileStore) List() ([]shortcut.Shortcut, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked(), nil
}

// Create appends a shortcut. The caller assigns the id before calling.
func (f *FileStore) Create(s shortcut.Shortcut) error {
	f.mu.Lock()
	f.shortcuts = append(f.shortcuts, s.Clone())
	if err := f.saveLocked(); err != nil {
		f.mu.Unlock()
		return err
	}
	f.notify(f.unlockAndSnapshot())
	return nil
}

// Update replaces the name and sequence of the shortcut with the same id.
func (f *FileStore) Update(s shortcut.Shortcut) error {
	f.mu.Lock()

	found := false
	for i := range f.shortcuts {
		if f.shortcuts[i].ID == s.ID {
			f.shortcuts[i].Name = s.Name
			f.shortcuts[i].Sequence = append([]string(nil), s.Sequence...)
			found = true
			break
		}
	}
	if !found {
		f.mu.Unlock()
		return fmt.Errorf("update shortcut %d: %w", s.ID, ErrNotFound)
	}

	if err := f.saveLocked(); err != nil {
		f.mu.Unlock()
		return err
	}
	f.notify(f.unlockAndSnapshot())
	return nil
}

// Delete removes the shortcut with the given id.
func (f *FileStore) Delete(id int64) error {
	f.mu.Lock()

	idx := -1
	for i := range f.shortcuts {
		if f.shortcuts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		f.mu.Unlock()
		return fmt.Errorf("delete shortcut %d: %w", id, ErrNotFound)
	}
	f.shortcuts = append(f.shortcuts[:idx], f.shortcuts[idx+1:]...)

	if err := f.saveLocked(); err != nil {
		f.mu.Unlock()
		return err
	}
	f.notify(f.unlockAndSnapshot())
	return nil
}

// OnChange registers a callback invoked with the full list after every
// mutation. Returns a function that unregisters it.
func (f *FileStore) OnChange(cb ChangeFunc) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.callbacks = append(f.callbacks, cb)
	index := len(f.callbacks) - 1

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if index < len(f.callbacks) {
			f.callbacks[index] = nil
		}
	}
}

// saveLocked writes the collection to disk. Caller holds f.mu.
func (f *FileStore) saveLocked() error {
	data, err := json.Marshal(f.shortcuts)
	if err != nil {
		return fmt.Errorf("encode shortcuts: %w", err)
	}
	data = pretty.Pretty(data)

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

// snapshotLocked deep-copies the collection. Caller holds f.mu.
func (f *FileStore) snapshotLocked() []shortcut.Shortcut {
	out := make([]shortcut.Shortcut, len(f.shortcuts))
	for i, s := range f.shortcuts {
		out[i] = s.Clone()
	}
	return out
}

// unlockAndSnapshot captures the snapshot and callback list, then releases
// the lock so callbacks run outside it.
func (f *FileStore) unlockAndSnapshot() []shortcut.Shortcut {
	snapshot := f.snapshotLocked()
	f.mu.Unlock()
	return snapshot
}

// notify invokes registered callbacks with the snapshot. Runs unlocked.
func (f *FileStore) notify(snapshot []shortcut.Shortcut) {
	f.mu.Lock()
	callbacks := make([]ChangeFunc, len(f.callbacks))
	copy(callbacks, f.callbacks)
	f.mu.Unlock()

	for _, cb := range callbacks {
		if cb != nil {
			cb(snapshot)
		}
	}
}
