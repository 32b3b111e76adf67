// Package renderer draws the demo shell onto a terminal backend.
//
// Layout:
//
//	┌──────────────────────────────────────────┐
//	│ header: title, orientation, indicators   │
//	├─────────────────────────────┬────────────┤
//	│ editor (child surface)      │ side panel │
//	│          ┌─────────────┐    │            │
//	│          │quick actions│    │            │
//	│          └─────────────┘    │            │
//	├─────────────────────────────┴────────────┤
//	│ footer: feedback label or key hints      │
//	└──────────────────────────────────────────┘
//
// Each frame is drawn in full from a shell.State snapshot; the screens are
// small enough that dirty tracking is not worth it.
//
// Usage:
//
//	term, _ := backend.NewTerminal(backend.DefaultCells())
//	r := renderer.New(term, renderer.DefaultOptions())
//	r.Render(sh.State())
package renderer
