// Package dispatcher maps gesture classifications to shell actions.
//
// The dispatcher is a pure mapping with no state beyond its binding table:
//
//	tap             forward a synthetic click to the child surface
//	long press      open the quick-actions menu at the press point
//	swipe left      show the search panel
//	swipe right     show the files panel
//	swipe up        show the terminal panel
//	swipe down      hide all panels
//	none            nothing
//
// Every action except none also shows a transient feedback label.
//
// # Execution
//
// Side effects are fire-and-forget. Dispatch hands the bound action to a
// Runner and returns immediately; it never waits for navigation or
// forwarding to complete and reports nothing back to the caller.
//
// Queue is the production Runner: a bounded, ordered, single-worker queue.
// When the queue is full the action is dropped and logged at debug level.
// Inline runs actions synchronously and is intended for tests.
//
// # Bindings
//
// The mapping lives in a Table built from DefaultBindings. Bindings can be
// replaced at runtime with Table.Set.
package dispatcher
