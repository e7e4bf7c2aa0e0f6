package session

import "sync"

// Locks serializes turns per customer id. One inbound message is processed
// to completion before the next for the same customer; different customers
// proceed in parallel.
type Locks struct {
	mu    sync.Mutex
	locks map[string]*customerLock
}

type customerLock struct {
	mu   sync.Mutex
	refs int
}

// NewLocks creates an empty lock set.
func NewLocks() *Locks {
	return &Locks{locks: make(map[string]*customerLock)}
}

// Lock acquires the lock for customerID, blocking while another turn for
// the same customer is in flight.
func (l *Locks) Lock(customerID string) {
	l.mu.Lock()
	cl, ok := l.locks[customerID]
	if !ok {
		cl = &customerLock{}
		l.locks[customerID] = cl
	}
	cl.refs++
	l.mu.Unlock()

	cl.mu.Lock()
}

// Unlock releases the lock for customerID, dropping the entry once no
// turn is waiting on it.
func (l *Locks) Unlock(customerID string) {
	l.mu.Lock()
	cl, ok := l.locks[customerID]
	if ok {
		cl.refs--
		if cl.refs <= 0 {
			delete(l.locks, customerID)
		}
	}
	l.mu.Unlock()

	if ok {
		cl.mu.Unlock()
	}
}
