// Package touch recognizes single-pointer touch gestures.
//
// The package splits recognition into a state tracker and a pure classifier.
// The tracker owns the one active Trajectory and turns host transitions into
// declarative Effects; the classifier maps a finalized Trajectory and a
// profile snapshot to a Classification. Nothing here renders or navigates:
// hosts apply the returned effects.
//
// # Transitions
//
//	tr := touch.NewTracker(store, scheduler)
//	effects := tr.TouchStart(id, input.Pt(100, 100), now)
//	effects = tr.TouchMove(id, input.Pt(140, 102), now.Add(40*time.Millisecond))
//	effects = tr.TouchEnd(id, input.Pt(180, 104), now.Add(80*time.Millisecond))
//
// Only the first pointer of a sequence is tracked. A second pointer going down
// while a trajectory is active is ignored entirely, as are moves and ends with
// no active trajectory.
//
// # Classification
//
// At touch end:
//
//   - distance < TapDistanceMax: Tap at the start point
//   - distance > SwipeDistanceMin and velocity > VelocityMin: Swipe
//   - otherwise: None
//
// Both comparisons are strict. Long presses are time triggered instead: the
// tracker arms a timer through a Scheduler on touch start, and when it fires
// while the finger is still within TapDistanceMax the tracker emits LongPress
// and marks the trajectory classified, which suppresses the end-of-touch
// classification.
//
// # Timer discipline
//
// A trajectory holds at most one CancelFunc. It is released when the finger
// moves past TapDistanceMax, on touch end, on touch cancel, and when the
// timer fires. Each Timeout carries the sequence id of the trajectory that
// armed it, so a timer that fires after its trajectory is gone is rejected.
//
// # Thread Safety
//
// Tracker is not safe for concurrent use. All transitions, including
// LongPressElapsed, must run on the host's single event loop.
package touch
