// Package viz is the terminal front end.
//
// The raster is downsampled into a braille [Canvas], two dots wide and four
// tall per cell, each cell tinted with the ink under it. [Model] is a Bubble
// Tea program that feeds terminal mouse events to an experiment and steps
// one frame per tick.
//
// # Key Bindings
//
//	1-7   - Select a draw color
//	Q/Esc - Quit
//
// Press on a slider knob in the top two rows to drag it; press anywhere else
// to clear the canvas and start drawing.
package viz
