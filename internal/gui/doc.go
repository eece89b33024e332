// Package gui is the window front end, built on raylib.
//
// Each frame it reads pointer and key input, steps the experiment once and
// uploads the raster into a texture. The slider strips and the credit line
// are drawn over the texture and never touch the raster.
package gui
