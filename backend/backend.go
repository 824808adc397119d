package backend

import (
	"sort"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/c2fo/doclib"
)

var m = xsync.NewMap[string, doclib.Provider]()

// Register a new provider in backend map
func Register(name string, p doclib.Provider) {
	m.Store(name, p)
}

// Unregister unregisters a provider from backend map
func Unregister(name string) {
	m.Delete(name)
}

// UnregisterAll unregisters all providers from backend map
func UnregisterAll() {
	// mainly for tests
	m.Clear()
}

// Backend returns the backend provider by name, or nil
func Backend(name string) doclib.Provider {
	p, _ := m.Load(name)
	return p
}

// RegisteredBackends returns a sorted array of backend names
func RegisteredBackends() []string {
	var f []string
	m.Range(func(k string, _ doclib.Provider) bool {
		f = append(f, k)
		return true
	})
	sort.Strings(f)
	return f
}
