// Package viz renders run output for the terminal: lipgloss styles shared by
// the CLI and the live view, asciigraph series plots, and a Braille canvas
// for density slices through the grid.
package viz
