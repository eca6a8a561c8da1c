package service

import "sync"

// eventLocks serializes syncs of the same event inside one process.
type eventLocks struct {
	mu    sync.Mutex
	locks map[int]*eventLock
}

type eventLock struct {
	mu   sync.Mutex
	refs int
}

func newEventLocks() *eventLocks {
	return &eventLocks{locks: map[int]*eventLock{}}
}

// lock blocks until eventID is free and returns the release func.
func (l *eventLocks) lock(eventID int) func() {
	l.mu.Lock()
	el, ok := l.locks[eventID]
	if !ok {
		el = &eventLock{}
		l.locks[eventID] = el
	}
	el.refs++
	l.mu.Unlock()

	el.mu.Lock()
	return func() {
		el.mu.Unlock()
		l.mu.Lock()
		el.refs--
		if el.refs == 0 {
			delete(l.locks, eventID)
		}
		l.mu.Unlock()
	}
}

// held reports how many callers hold or wait on eventID.
func (l *eventLocks) held(eventID int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if el, ok := l.locks[eventID]; ok {
		return el.refs
	}
	return 0
}
