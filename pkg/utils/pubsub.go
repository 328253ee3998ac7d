package utils

import (
	"context"
	"errors"

	"github.com/sasha-s/go-deadlock"
)

var ErrClosed = errors.New("topic closed")

// Topic fans values out to every subscriber. Publish waits for each
// subscriber to accept the value, so subscribers must keep reading until
// their channel is closed.
type Topic[T any] struct {
	subscribers map[*Subscriber[T]]struct{}
	mutex       deadlock.Mutex
	closed      bool
}

func NewTopic[T any]() *Topic[T] {
	return &Topic[T]{
		subscribers: make(map[*Subscriber[T]]struct{}),
	}
}

func (t *Topic[T]) Publish(ctx context.Context, value T) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for subscriber := range t.subscribers {
		select {
		case subscriber.channel <- value:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Close ends the topic and closes every subscriber's channel.
func (t *Topic[T]) Close() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.closed {
		return
	}
	t.closed = true
	for subscriber := range t.subscribers {
		close(subscriber.channel)
	}
	t.subscribers = nil
}

type Subscriber[T any] struct {
	channel chan T
	topic   *Topic[T]
}

// Subscribe returns a subscriber whose channel holds up to buffer values
// before Publish has to wait for it.
func (t *Topic[T]) Subscribe(buffer int) *Subscriber[T] {
	subscriber := &Subscriber[T]{
		channel: make(chan T, buffer),
		topic:   t,
	}

	t.mutex.Lock()
	if t.closed {
		close(subscriber.channel)
	} else {
		t.subscribers[subscriber] = struct{}{}
	}
	t.mutex.Unlock()

	return subscriber
}

func (s *Subscriber[T]) Recv() <-chan T {
	return s.channel
}

// Done unsubscribes and closes the channel. It must not be called while a
// Publish is blocked on this subscriber.
func (s *Subscriber[T]) Done() {
	topic := s.topic
	topic.mutex.Lock()
	defer topic.mutex.Unlock()

	if _, ok := topic.subscribers[s]; ok {
		delete(topic.subscribers, s)
		close(s.channel)
	}
}
