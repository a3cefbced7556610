package booking

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// LockRegistry hands out per-resource mutexes so the availability check and
// the commit for one room serialize against each other while different rooms
// proceed independently. Locks live for the process lifetime; the registry
// is bounded by the number of distinct resources seen.
type LockRegistry struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewLockRegistry creates an empty registry.
func NewLockRegistry() *LockRegistry {
	return &LockRegistry{locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (r *LockRegistry) get(id uuid.UUID) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[id]
	if !ok {
		l = &sync.Mutex{}
		r.locks[id] = l
	}
	return l
}

// Lock acquires the mutex for id and returns its release func.
func (r *LockRegistry) Lock(id uuid.UUID) func() {
	l := r.get(id)
	l.Lock()
	return l.Unlock
}

// LockPair acquires the mutexes for two ids in a deterministic order so
// concurrent pair acquisitions cannot deadlock. Equal ids lock once.
func (r *LockRegistry) LockPair(a, b uuid.UUID) func() {
	if a == b {
		return r.Lock(a)
	}
	first, second := a, b
	if strings.Compare(a.String(), b.String()) > 0 {
		first, second = b, a
	}

	fl, sl := r.get(first), r.get(second)
	fl.Lock()
	sl.Lock()
	return func() {
		sl.Unlock()
		fl.Unlock()
	}
}
