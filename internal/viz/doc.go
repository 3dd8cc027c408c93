// Package viz renders double pendulum trajectories in the terminal.
//
//   - [Canvas]: Braille-based pixel canvas, 2x4 dots per character
//   - [Viewport]: maps model coordinates onto a Canvas
//   - [PlotSeries]: line charts of a single component via asciigraph
//   - [Animation]: Bubble Tea model replaying precomputed frames
//
// # Key Bindings
//
//	Space - Pause/Resume replay
//	R     - Restart from the first frame
//	T     - Cycle color themes
//	←/→   - Step one frame while paused
//	Q     - Quit
package viz
