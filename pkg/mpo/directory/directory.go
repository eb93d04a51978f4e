// Package directory provides the name directories a Network uses to
// resolve qualified endpoint and action names into object references.
//
// Names are plain strings; by convention endpoints owned by an action
// are registered under "<action>::<endpoint>" (see Qualify and Split).
// Wiring loaded from configuration files only ever refers to these
// names, so the directories are the boundary between textual
// configuration and live objects.
package directory

import (
	"strings"
	"sync"
)

// Separator joins an owning action name and a local endpoint name into
// a qualified name.
const Separator = "::"

// Qualify returns the qualified name for an endpoint owned by an
// action, e.g. Qualify("Ping", "output") == "Ping::output".
func Qualify(owner, endpoint string) string {
	return owner + Separator + endpoint
}

// Split breaks a qualified name into its owner and endpoint parts.
// Names without a separator are returned as ("", name).
func Split(qualified string) (owner, endpoint string) {
	i := strings.Index(qualified, Separator)
	if i < 0 {
		return "", qualified
	}
	return qualified[:i], qualified[i+len(Separator):]
}

// Directory is a mutation-safe map from names to values of type V.
// Registering an empty name is a no-op, matching the convention that an
// empty name means "unregistered".
type Directory[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
}

// New creates an empty directory.
func New[V any]() *Directory[V] {
	return &Directory[V]{entries: make(map[string]V)}
}

// Register binds a name to a value, replacing any previous binding.
func (d *Directory[V]) Register(name string, value V) {
	if name == "" {
		return
	}
	d.mu.Lock()
	d.entries[name] = value
	d.mu.Unlock()
}

// RegisterNew binds a name to a value only if the name is free. It
// returns false when the name is empty or already taken.
func (d *Directory[V]) RegisterNew(name string, value V) bool {
	if name == "" {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, taken := d.entries[name]; taken {
		return false
	}
	d.entries[name] = value
	return true
}

// Unregister removes a name binding. Unknown or empty names are a
// no-op.
func (d *Directory[V]) Unregister(name string) {
	if name == "" {
		return
	}
	d.mu.Lock()
	delete(d.entries, name)
	d.mu.Unlock()
}

// Resolve returns the value bound to a name and whether the binding
// exists.
func (d *Directory[V]) Resolve(name string) (V, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.entries[name]
	return v, ok
}

// Has reports whether a name is bound.
func (d *Directory[V]) Has(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.entries[name]
	return ok
}

// Names returns all bound names in unspecified order.
func (d *Directory[V]) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.entries))
	for name := range d.entries {
		names = append(names, name)
	}
	return names
}

// Len returns the number of bindings.
func (d *Directory[V]) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// Snapshot returns a copy of the current bindings. The copy is safe to
// iterate while the directory keeps changing.
func (d *Directory[V]) Snapshot() map[string]V {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]V, len(d.entries))
	for k, v := range d.entries {
		out[k] = v
	}
	return out
}

// Clear removes every binding.
func (d *Directory[V]) Clear() {
	d.mu.Lock()
	d.entries = make(map[string]V)
	d.mu.Unlock()
}
