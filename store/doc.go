// Package store provides the reactive primitives behind the assistant state:
// observable containers and a graph of derived values computed from them.
//
// # Core Components
//
// # Writable - mutable container with Get, Set, Update and Subscribe
//
// # Derived - read-only value computed from one or more source stores
//
// # Readable - the subscription interface both implement
//
// # Subscriptions
//
// Subscribe delivers the current value immediately and then once per change,
// in subscription order, until the returned Unsubscriber is called:
//
//	count := store.NewWritable(0, store.WithName("count"))
//	unsubscribe := count.Subscribe(func(n int) { fmt.Println(n) }) // prints 0
//	count.Set(1)                                                   // prints 1
//	unsubscribe()
//
// # Derived Values
//
// A Derived store recomputes when any direct source changes. A mutation
// recomputes every affected Derived store at most once, in order of
// dependency height, before any subscriber is notified. Diamond-shaped graphs
// therefore never observe a half-updated sibling:
//
//	doubled := store.Derive(count, func(n int) int { return n * 2 })
//	next := store.Derive(count, func(n int) int { return n + 1 })
//	sum := store.Derive2(doubled, next, func(a, b int) int { return a + b })
//
// A Derived store with subscribers (or with subscribed dependents) is kept
// current eagerly. Without them it detaches from its sources and recomputes
// lazily on Get. Both modes return the same values.
//
// # Concurrency
//
// Stores are not safe for concurrent use. All mutation and notification
// happens synchronously on the calling goroutine. Mutating a store from within
// its own notification, directly or through a Derived store it feeds, fails
// with ErrReentrant and leaves the value unchanged.
package store
