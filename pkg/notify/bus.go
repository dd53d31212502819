// Package notify provides a small synchronous observer used by every mutable
// engine type (scenes, containers, command stacks).
//
// Publish runs subscribers on the caller's goroutine, in subscription order,
// against a snapshot of the subscriber list. Subscribers may therefore
// subscribe, cancel or publish again from inside a callback.
package notify

import "sync"

// Bus delivers values of type T to its subscribers.
// The zero value is ready to use.
type Bus[T any] struct {
	mu   sync.Mutex
	next uint64
	subs []subscriber[T]
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Subscription is returned by Subscribe. Cancel is idempotent.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Cancel stops delivery to the subscriber.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}

// Subscribe registers fn and returns a handle to cancel it.
func (b *Bus[T]) Subscribe(fn func(T)) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	id := b.next
	b.subs = append(b.subs, subscriber[T]{id: id, fn: fn})
	return &Subscription{cancel: func() { b.remove(id) }}
}

func (b *Bus[T]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers v to every current subscriber.
func (b *Bus[T]) Publish(v T) {
	b.mu.Lock()
	subs := make([]subscriber[T], len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(v)
	}
}

// Len returns the number of active subscribers.
func (b *Bus[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
