package locks

import (
	"context"
	"sync"
	"time"
)

const backendLocal = "local"

type slot struct {
	ch   chan struct{}
	refs int
}

// LocalLocker serializes holders of the same key within one process.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
	wait  time.Duration
}

// NewLocalLocker returns a LocalLocker that waits at most wait for a key.
func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{
		slots: make(map[string]*slot),
		wait:  wait,
	}
}

func (l *LocalLocker) acquireSlot(key string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	return s
}

func (l *LocalLocker) releaseSlot(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

// Lock implements Locker.
func (l *LocalLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	start := time.Now()
	s := l.acquireSlot(key)

	waitCtx, cancel := waitContext(ctx, l.wait)
	defer cancel()

	select {
	case s.ch <- struct{}{}:
		observeWait(backendLocal, outcomeAcquired, start)
		var once sync.Once
		return func(context.Context) error {
			once.Do(func() {
				<-s.ch
				l.releaseSlot(key, s)
			})
			return nil
		}, nil
	case <-waitCtx.Done():
		l.releaseSlot(key, s)
		outcome, err := waitError(ctx)
		observeWait(backendLocal, outcome, start)
		return nil, err
	}
}

// held reports how many callers hold or wait on key.
func (l *LocalLocker) held(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.slots[key]; ok {
		return s.refs
	}
	return 0
}
