// Package render turns pen motion into ink.
//
// [Thickness] maps speed to stroke width, [Renderer] builds and paints one
// [dynamo.Segment] per frame, and [Canvas] is the persistent raster the
// segments land on. The raster is the only record of a drawing; nothing is
// kept as vectors.
package render
