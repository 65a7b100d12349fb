package metacache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/raphi011/dracula/internal/log"
	"github.com/raphi011/dracula/internal/storage"
)

// FileName is the cache file inside the cache directory.
const FileName = "metadata.json"

// Schema is the version written to new cache files. Files whose schema does
// not satisfy SupportedSchema are ignored.
const (
	Schema          = "1.0.0"
	SupportedSchema = "^1"
)

// fileData is the on-disk layout. Records stay raw until validated so one
// bad record does not spoil the whole file.
type fileData struct {
	Schema  string                     `json:"schema"`
	Records map[string]json.RawMessage `json:"records"`
}

// File is a Store backed by a JSON file. Records are loaded once at Open and
// every mutation is written through to disk.
type File struct {
	path   string
	logger *log.Logger

	mu      sync.RWMutex
	records map[string]*Record

	writeMu sync.Mutex // serializes read-modify-write of the file
}

// FileOption configures a File store.
type FileOption func(*File)

// WithLogger sets the logger used to report discarded cache data.
func WithLogger(l *log.Logger) FileOption {
	return func(f *File) { f.logger = l }
}

// Open loads the cache in dir. A missing, unreadable or incompatible cache
// file yields an empty store, never an error.
func Open(dir string, opts ...FileOption) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	f := &File{
		path:    filepath.Join(dir, FileName),
		logger:  log.FromContext(context.Background()),
		records: make(map[string]*Record),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.records = f.read()
	return f, nil
}

// Path returns the cache file location.
func (f *File) Path() string {
	return f.path
}

func (f *File) Get(repository string) (*Record, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	rec, ok := f.records[repository]
	return rec, ok
}

func (f *File) Put(repository string, rec *Record) error {
	if !rec.valid(repository) {
		return errors.New("metacache: invalid record for " + repository)
	}

	f.mu.Lock()
	f.records[repository] = rec
	f.mu.Unlock()

	winner := rec
	err := f.update(func(records map[string]*Record) {
		// another process may have stored a newer fetch meanwhile
		if cur, ok := records[repository]; ok && cur.FetchedAt.After(rec.FetchedAt) {
			winner = cur
			return
		}
		records[repository] = rec
	})

	if winner != rec {
		f.mu.Lock()
		// unless a later Put in this process replaced ours
		if f.records[repository] == rec {
			f.records[repository] = winner
		}
		f.mu.Unlock()
	}
	return err
}

func (f *File) Delete(repository string) error {
	f.mu.Lock()
	delete(f.records, repository)
	f.mu.Unlock()

	return f.update(func(records map[string]*Record) {
		delete(records, repository)
	})
}

func (f *File) Clear() error {
	f.mu.Lock()
	f.records = make(map[string]*Record)
	f.mu.Unlock()

	return f.update(func(records map[string]*Record) {
		clear(records)
	})
}

func (f *File) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.records)
}

func (f *File) Keys() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Sorted(maps.Keys(f.records))
}

func (f *File) Close() error {
	return nil
}

// update applies fn to the current file contents under the cross-process
// lock, so records written by another process since Open are kept.
func (f *File) update(fn func(map[string]*Record)) error {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()

	return storage.WithLock(storage.LockPath(f.path), func() error {
		records := f.read()
		fn(records)
		return f.write(records)
	})
}

func (f *File) read() map[string]*Record {
	records := make(map[string]*Record)

	var data fileData
	if err := storage.LoadJSON(f.path, &data); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			f.logger.Debug("metadata cache unreadable, starting empty", "path", f.path, "err", err)
		}
		return records
	}

	if !compatible(data.Schema) {
		f.logger.Debug("metadata cache schema mismatch, starting empty", "schema", data.Schema, "want", SupportedSchema)
		return records
	}

	for key, raw := range data.Records {
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil || !rec.valid(key) {
			f.logger.Debug("dropping cache record", "repository", key)
			continue
		}
		records[key] = &rec
	}
	return records
}

func (f *File) write(records map[string]*Record) error {
	data := fileData{
		Schema:  Schema,
		Records: make(map[string]json.RawMessage, len(records)),
	}
	for key, rec := range records {
		raw, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		data.Records[key] = raw
	}
	return storage.SaveJSON(f.path, data)
}

func compatible(schema string) bool {
	if schema == "" {
		return false
	}
	v, err := semver.NewVersion(schema)
	if err != nil {
		return false
	}
	c, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return false
	}
	return c.Check(v)
}
