package share

import (
	"sync"
	"sync/atomic"

	"github.com/moyoez/localshare-go/types"
)

// snapshot is an immutable view of the registry. Readers load it without locking.
type snapshot struct {
	order []string
	paths map[string]string
}

// Registry maps public share names to host paths.
// Replace swaps a freshly built snapshot so concurrent readers never observe a
// half-populated map; Put copies the current snapshot before inserting.
type Registry struct {
	writeMu sync.Mutex
	current atomic.Pointer[snapshot]
}

func NewRegistry() *Registry {
	r := &Registry{}
	r.current.Store(&snapshot{paths: map[string]string{}})
	return r
}

// Replace discards every entry and installs entries. Later duplicates overwrite
// earlier ones but keep the first position. Entries without a path are skipped.
func (r *Registry) Replace(entries []types.ShareEntry) {
	next := &snapshot{
		order: make([]string, 0, len(entries)),
		paths: make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		if e.Path == "" {
			continue
		}
		if _, exists := next.paths[e.Name]; !exists {
			next.order = append(next.order, e.Name)
		}
		next.paths[e.Name] = e.Path
	}

	r.writeMu.Lock()
	r.current.Store(next)
	r.writeMu.Unlock()
}

// Put inserts or overwrites a single entry (last write wins).
func (r *Registry) Put(name, path string) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	cur := r.current.Load()
	next := &snapshot{
		order: make([]string, len(cur.order), len(cur.order)+1),
		paths: make(map[string]string, len(cur.paths)+1),
	}
	copy(next.order, cur.order)
	for k, v := range cur.paths {
		next.paths[k] = v
	}
	if _, exists := next.paths[name]; !exists {
		next.order = append(next.order, name)
	}
	next.paths[name] = path
	r.current.Store(next)
}

// Resolve returns the host path registered under name.
func (r *Registry) Resolve(name string) (string, bool) {
	p, ok := r.current.Load().paths[name]
	return p, ok
}

// List returns the entries in registration order.
func (r *Registry) List() []types.ShareEntry {
	cur := r.current.Load()
	out := make([]types.ShareEntry, 0, len(cur.order))
	for _, name := range cur.order {
		out = append(out, types.ShareEntry{Name: name, Path: cur.paths[name]})
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.current.Load().order)
}
