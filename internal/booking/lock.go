package booking

import "sync"

// roomLocker serializes the overlap-check-then-write sequence per room.
// Without it two concurrent creates for the same room could both pass the
// overlap check and both insert. The lock only covers a single process; a
// multi-instance deployment would need the check and insert wrapped in a
// serializable transaction instead.
type roomLocker struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newRoomLocker() *roomLocker {
	return &roomLocker{locks: make(map[int64]*sync.Mutex)}
}

// Lock acquires the mutex for the given room, creating it on first use.
// Room mutexes are never evicted; the room catalog is small and long-lived.
func (l *roomLocker) Lock(roomID int64) {
	l.mu.Lock()
	m, ok := l.locks[roomID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[roomID] = m
	}
	l.mu.Unlock()
	m.Lock()
}

func (l *roomLocker) Unlock(roomID int64) {
	l.mu.Lock()
	m := l.locks[roomID]
	l.mu.Unlock()
	m.Unlock()
}
