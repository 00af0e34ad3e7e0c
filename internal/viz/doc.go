// Package viz renders ball-throw trajectories in the terminal.
//
//   - [WriteTable], [WriteSentences]: plain text listings of a trajectory
//   - [PlotHeights]: asciigraph chart of numerical and exact heights
//   - [Summary]: styled panel with run parameters and metrics
//   - [Replay]: Bubble Tea model that animates a finished trajectory
//
// # Key Bindings (Replay)
//
//	Space - Pause/Resume
//	R     - Restart from the first state
//	[ ]   - Step backward/forward while paused
//	Q     - Quit
package viz
