// Package viz renders predator-prey trajectories in the terminal.
//
//   - [Chart]: two-series line chart of the populations over time
//   - [Animation]: Bubble Tea program playing one frame per sample
//   - [Canvas]: Braille phase panel tracing predators against prey
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from the first sample
//	T     - Cycle color themes
//	←/→   - Step one frame
//	Q     - Quit
package viz
