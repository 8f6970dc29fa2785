// Package tui hosts a render session in the terminal.
//
// [Model] is a Bubble Tea program that ticks the session at the configured
// frame rate and presents each frame either as the glyph grid or, in raw
// mode, as truecolor half-block cells. [Stream] writes the same frames as
// plain ANSI to any writer, for piping a headless run.
//
// # Key Bindings
//
//	1 2 3 h  - Fly to about, projects, contact, home
//	m        - Toggle glyph mode
//	Arrows   - Orbit the camera
//	+ -      - Zoom
//	t        - Cycle glyph themes
//	g        - Toggle GIF recording
//	s        - Toggle the stats panel
//	?        - Show help overlay
//	q        - Quit
//
// # Recording
//
// GIF recordings are written under the data directory, one directory per
// recording with a metadata.json beside the animation.
package tui
