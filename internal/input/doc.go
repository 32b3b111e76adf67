// Package input holds the shared input vocabulary for swipeshell.
//
// It defines the geometry used by every gesture component (Point, Rect,
// Direction) and the raw host event shape (TouchEvent). Subpackages build
// on it:
//
//   - profile: tunable thresholds and orientation-aware recalibration
//   - touch: the single-pointer state tracker and gesture classifier
//
// # Coordinates
//
// All coordinates are logical pixels in shell screen space with Y growing
// downward, so a negative Y delta is an upward motion.
//
// # Metrics
//
// Metrics counts classifications and defensive no-ops (ignored events,
// stale timer fires) so hosts can surface recognizer health.
package input
