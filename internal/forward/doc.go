// Package forward delivers synthetic pointer events to the embedded child
// surface.
//
// Screen coordinates are translated into the surface's local space by
// subtracting the origin of its on-screen bounds, then posted as a JSON
// message:
//
//	{"type":"gesture-event","eventType":"click","x":12,"y":34}
//
// Delivery is best effort. An unmounted surface or a failing channel drops
// the event with a debug log; nothing is returned to the caller.
package forward
