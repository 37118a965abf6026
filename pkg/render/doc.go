// Package render draws built stacks.
//
// Two views are supported. [Elevation] produces a front (x/y) elevation of
// stack member boxes as an SVG, the view an artist would check against the
// scene viewport. [ToDOT] produces a Graphviz digraph of rests-on
// relationships, rendered to SVG or PNG with [RenderSVG] and [RenderPNG].
package render
