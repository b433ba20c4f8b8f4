package session

// Guard is the set of keys with a request outstanding. It is not safe for
// concurrent use; the session serializes access.
//
// Every acquisition gets its own token so that a request finishing after
// Clear cannot release the marker of a newer request for the same key.
type Guard[K comparable] struct {
	keys map[K]uint64
	next uint64
}

func NewGuard[K comparable]() *Guard[K] {
	return &Guard[K]{keys: make(map[K]uint64)}
}

// TryAcquire marks k in flight and returns the token that releases it. ok is
// false when k is already marked.
func (g *Guard[K]) TryAcquire(k K) (token uint64, ok bool) {
	if _, busy := g.keys[k]; busy {
		return 0, false
	}
	g.next++
	g.keys[k] = g.next
	return g.next, true
}

// Release drops k when it is still held under token and reports whether it did.
func (g *Guard[K]) Release(k K, token uint64) bool {
	if held, ok := g.keys[k]; !ok || held != token {
		return false
	}
	delete(g.keys, k)
	return true
}

func (g *Guard[K]) Has(k K) bool {
	_, ok := g.keys[k]
	return ok
}

func (g *Guard[K]) Clear() {
	clear(g.keys)
}

func (g *Guard[K]) Len() int {
	return len(g.keys)
}

// Snapshot copies the marked keys.
func (g *Guard[K]) Snapshot() map[K]bool {
	out := make(map[K]bool, len(g.keys))
	for k := range g.keys {
		out[k] = true
	}
	return out
}
