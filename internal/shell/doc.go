// Package shell is the demo application shell the gesture module drives.
//
// Shell keeps the state gestures act on: which side panel is open, whether
// the quick-actions menu is up, the indicator overlay and a transient
// feedback label. Editor is the embedded child surface; it receives
// forwarded clicks as JSON messages and moves its cursor to them.
//
// Shell is safe for concurrent use. Indicator calls arrive from the gesture
// event loop, actions from the dispatcher worker and reads from the drawing
// goroutine.
package shell
