package store

// Unsubscriber removes a subscription. Calling it more than once is a no-op.
type Unsubscriber func()

type subscriber[T any] struct {
	fn   func(T)
	live bool
}

// subscribers is an ordered list of callbacks. Removal swaps in a new slice,
// so a delivery loop keeps iterating the list it started with.
type subscribers[T any] struct {
	list []*subscriber[T]
}

func (s *subscribers[T]) add(fn func(T)) *subscriber[T] {
	sub := &subscriber[T]{fn: fn, live: true}
	s.list = append(s.list, sub)
	return sub
}

func (s *subscribers[T]) remove(sub *subscriber[T]) bool {
	if !sub.live {
		return false
	}
	sub.live = false

	next := make([]*subscriber[T], 0, len(s.list))
	for _, other := range s.list {
		if other != sub {
			next = append(next, other)
		}
	}
	s.list = next
	return true
}

// deliver calls every subscriber registered when delivery began, skipping
// any removed mid-delivery.
func (s *subscribers[T]) deliver(value T) {
	for _, sub := range s.list {
		if sub.live {
			sub.fn(value)
		}
	}
}

func (s *subscribers[T]) len() int {
	return len(s.list)
}
