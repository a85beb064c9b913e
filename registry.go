package godbc

import (
	"context"
	"sort"
	"sync"
)

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Driver)
)

// Register makes a driver available under the given name, in the manner of
// database/sql. Adapter packages call Register from an init function, so a
// blank import of the adapter is enough to enable its backend. Register
// panics if the driver is nil or the name is already taken.
func Register(name string, d Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if d == nil {
		panic("godbc: Register driver is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("godbc: Register called twice for driver " + name)
	}
	drivers[name] = d
}

// Drivers returns the names of the registered drivers, sorted.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Connect opens a connection through the driver registered under name.
func Connect(ctx context.Context, name, url string) (Connection, error) {
	driversMu.RLock()
	d, ok := drivers[name]
	driversMu.RUnlock()
	if !ok {
		return nil, NewError(ErrConnection, "unknown driver %q (forgotten adapter import?)", name)
	}
	return d.Connect(ctx, url)
}
