package concepts

import "sync"

// userLocks hands out one mutex per user id so read-modify-write cycles on a
// user's tracking document are linearized. Locks are never reclaimed; the map
// grows with the number of distinct active users, which stays small.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the mutex for the given user id, creating it on first use,
// and returns the unlock function.
func (l *userLocks) acquire(userID string) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
