// Package sources reads the tabular files the importer loads, addressed by header name.
package sources

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrUnsupportedSource is returned by Open for a file extension with no registered driver.
var ErrUnsupportedSource = errors.New("unsupported source type")

// ErrEmptySource is returned by a Reader whose file has no header row.
var ErrEmptySource = errors.New("source file is empty")

// Reader yields records one at a time; the first record is the header row.
// It satisfies csvutil.Reader so records can be decoded by header name.
type Reader interface {
	Read() ([]string, error)
	Close() error
}

// Driver opens a Reader for a file path.
type Driver interface {
	Open(path string) (Reader, error)
}

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Driver)
)

// Register makes a source driver available for the provided file extension (".csv").
// If Register is called twice with the same extension or if driver is nil, it panics.
func Register(ext string, driver Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()

	if driver == nil {
		panic("sources: Register driver is nil")
	}
	ext = strings.ToLower(ext)
	if _, dup := drivers[ext]; dup {
		panic("sources: Register called twice for extension " + ext)
	}
	drivers[ext] = driver
}

// Open opens path with the driver registered for its extension.
func Open(path string) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(path))

	driversMu.RLock()
	driver, ok := drivers[ext]
	driversMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, path)
	}
	return driver.Open(path)
}

// Extensions returns a sorted list of the registered file extensions.
func Extensions() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()

	list := make([]string, 0, len(drivers))
	for ext := range drivers {
		list = append(list, ext)
	}
	sort.Strings(list)
	return list
}
