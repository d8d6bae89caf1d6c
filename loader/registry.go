package loader

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sflanaga/csvtolite/loader/common"
)

var (
	dialectsMu sync.RWMutex
	dialects   = make(map[string]common.Dialect)
)

// Register makes a store dialect available by the provided name.
// If Register is called twice with the same name or if dialect is nil, it panics.
func Register(name string, dialect common.Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	if dialect == nil {
		panic("loader: Register dialect is nil")
	}
	if _, dup := dialects[name]; dup {
		panic("loader: Register called twice for dialect " + name)
	}
	dialects[name] = dialect
}

// Lookup returns the dialect registered under name.
func Lookup(name string) (common.Dialect, error) {
	dialectsMu.RLock()
	d, ok := dialects[name]
	dialectsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("loader: unknown dialect %q (forgotten import?)", name)
	}
	return d, nil
}

// Dialects returns a sorted list of the names of the registered dialects.
func Dialects() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	list := make([]string, 0, len(dialects))
	for name := range dialects {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}
