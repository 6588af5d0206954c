// Package storex provides a minimal unidirectional state store.
//
// A Store owns exactly one state value. The only way to change it is to
// Dispatch an action, which runs the bound Reducer and replaces the state with
// its result. Listeners registered with Subscribe are then called
// synchronously, in subscription order, with the new state.
//
// # Example Usage
//
//	store := storex.New(tally.Reduce, 0)
//	sub := store.Subscribe(func(n int) {
//		fmt.Println("State updated:", n)
//	})
//	defer sub.Unsubscribe()
//
//	store.Dispatch(storex.NewAction(tally.Add, nil))
//	store.GetState() // 1
//
// # Notification
//
// Every dispatch notifies, even when the reducer returns the state it was
// given. The listener list is snapshotted when notification starts: a
// listener that unsubscribes itself or another listener during a dispatch
// does not change who is called for that dispatch, only for later ones.
//
// A listener that panics is recovered and reported as a *ListenerError from
// Dispatch; the remaining listeners are still called.
//
// # Concurrency
//
// Calling a Store from several goroutines causes no data races: the reducer
// runs and the state is swapped under a lock. That lock is released before
// publishers and listeners are called, so listeners may read the state,
// subscribe and unsubscribe. The order in which listeners observe dispatches
// made from different goroutines is not defined; a caller that needs ordered
// notification must dispatch from a single goroutine.
package storex
