package service

import (
	"sync"

	"github.com/cristianoliveira/alonix-notify/internal/domain"
)

// Subscription is a registered listener. Close removes it; closing twice is
// harmless.
type Subscription interface {
	Close()
}

// ReceivedFunc is called after a notification has been handled.
type ReceivedFunc func(Receipt)

// OpenedFunc is called when the user opens a notification.
type OpenedFunc func(rec domain.Record, target domain.NavigationTarget)

type listeners struct {
	mu       sync.Mutex
	next     int
	received map[int]ReceivedFunc
	opened   map[int]OpenedFunc
}

func newListeners() *listeners {
	return &listeners{
		received: make(map[int]ReceivedFunc),
		opened:   make(map[int]OpenedFunc),
	}
}

type subscription struct {
	once   sync.Once
	remove func()
}

func (s *subscription) Close() {
	s.once.Do(s.remove)
}

func (l *listeners) addReceived(fn ReceivedFunc) Subscription {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.next
	l.next++
	l.received[id] = fn
	return &subscription{remove: func() {
		l.mu.Lock()
		delete(l.received, id)
		l.mu.Unlock()
	}}
}

func (l *listeners) addOpened(fn OpenedFunc) Subscription {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.next
	l.next++
	l.opened[id] = fn
	return &subscription{remove: func() {
		l.mu.Lock()
		delete(l.opened, id)
		l.mu.Unlock()
	}}
}

func (l *listeners) emitReceived(r Receipt) {
	l.mu.Lock()
	fns := make([]ReceivedFunc, 0, len(l.received))
	for _, fn := range l.received {
		fns = append(fns, fn)
	}
	l.mu.Unlock()
	for _, fn := range fns {
		fn(r)
	}
}

func (l *listeners) emitOpened(rec domain.Record, target domain.NavigationTarget) {
	l.mu.Lock()
	fns := make([]OpenedFunc, 0, len(l.opened))
	for _, fn := range l.opened {
		fns = append(fns, fn)
	}
	l.mu.Unlock()
	for _, fn := range fns {
		fn(rec, target)
	}
}

func (l *listeners) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.received) + len(l.opened)
}
