package room

import (
	"sync"
)

// Registry maps live room codes to their state. It is the single source of
// truth for room existence; nothing else keeps a parallel set of codes.
// Instances are injected into the Coordinator, never referenced as package
// globals, so tests can run isolated registries.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// Create inserts a fresh room under code. Fails with ErrDuplicateCode while
// a room with the same code is live.
func (reg *Registry) Create(code string) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, ok := reg.rooms[code]; ok {
		return nil, ErrDuplicateCode
	}
	r := newRoom(code)
	reg.rooms[code] = r
	return r, nil
}

func (reg *Registry) Get(code string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, ok := reg.rooms[code]
	return r, ok
}

// Delete is idempotent: disconnect races can produce duplicate teardown
// attempts, and removing an absent code is not an error.
func (reg *Registry) Delete(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, code)
}

func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}
