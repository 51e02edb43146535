// Package stream provides the reactive primitive the filter core consumes:
// a latest-value subject whose subscribers receive the current value on
// subscribe and every value published afterwards.
//
// Delivery is conflating. A slow subscriber only ever sees the most recent
// value, never a backlog, which is what snapshot-style data (folder lists,
// trees, collapsed-node sets) needs.
package stream

import (
	"context"
	"errors"
	"sync"
)

// ErrCompleted is returned by First when the subject completes before
// producing a value.
var ErrCompleted = errors.New("stream completed without a value")

// Stream is a restartable source of values. Every call to Subscribe starts an
// independent subscription that ends when ctx is cancelled or the stream
// completes; the returned channel is closed in both cases.
type Stream[T any] interface {
	Subscribe(ctx context.Context) <-chan T
	First(ctx context.Context) (T, error)
}

type subscriber[T any] struct {
	ch chan T
}

// offer replaces any undelivered value with v. Callers hold the subject lock,
// so the send never blocks.
func (s *subscriber[T]) offer(v T) {
	select {
	case <-s.ch:
	default:
	}
	s.ch <- v
}

// Subject is a Stream that is fed by calling Next.
type Subject[T any] struct {
	mu        sync.Mutex
	value     T
	hasValue  bool
	completed bool
	subs      map[*subscriber[T]]struct{}
}

// NewSubject returns a Subject with no value. Subscribers block until the
// first Next.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{subs: make(map[*subscriber[T]]struct{})}
}

// Of returns a Subject that already holds v.
func Of[T any](v T) *Subject[T] {
	s := NewSubject[T]()
	s.value = v
	s.hasValue = true
	return s
}

// Next publishes v to every subscriber. It never blocks. Calls after Complete
// are ignored.
func (s *Subject[T]) Next(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return
	}
	s.value = v
	s.hasValue = true
	for sub := range s.subs {
		sub.offer(v)
	}
}

// Value returns the latest value without subscribing.
func (s *Subject[T]) Value() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.hasValue
}

// Complete closes every subscription. Later subscribers get a closed channel,
// preceded by the last value if there was one.
func (s *Subject[T]) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return
	}
	s.completed = true
	for sub := range s.subs {
		close(sub.ch)
		delete(s.subs, sub)
	}
}

// Subscribe implements Stream. ctx must eventually be cancelled unless the
// subject is completed, otherwise the subscription is never released.
func (s *Subject[T]) Subscribe(ctx context.Context) <-chan T {
	sub := &subscriber[T]{ch: make(chan T, 1)}

	s.mu.Lock()
	if s.hasValue {
		sub.ch <- s.value
	}
	if s.completed {
		close(sub.ch)
		s.mu.Unlock()
		return sub.ch
	}
	s.subs[sub] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[sub]; ok {
			delete(s.subs, sub)
			close(sub.ch)
		}
	}()

	return sub.ch
}

// First implements Stream. It returns the current value immediately when one
// exists.
func (s *Subject[T]) First(ctx context.Context) (T, error) {
	if v, ok := s.Value(); ok {
		return v, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var zero T
	select {
	case v, ok := <-s.Subscribe(ctx):
		if !ok {
			if err := ctx.Err(); err != nil {
				return zero, err
			}
			return zero, ErrCompleted
		}
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// SubscriberCount reports live subscriptions.
func (s *Subject[T]) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
