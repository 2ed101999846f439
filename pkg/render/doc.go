// Package render turns positioned diagram documents into visual output.
//
// # Overview
//
// Rendering is a thin, optional layer on top of the positioned-document
// format: the JSON document is the primary artifact, and this package
// exists for quick inspection of results on the command line.
//
//   - [ToDOT] emits Graphviz DOT with pinned node positions and
//     crow's-foot edge decorations
//   - [RenderSVG] runs the DOT through the embedded Graphviz runtime
//
// Entity boxes use record labels so attribute rows appear inside the
// box, with primary keys and flags annotated inline. Edges use
// compound arrowheads (tee, odot, crow) mapped from the endpoint
// multiplicities.
//
//	doc := canvas.FromDiagram(d, positions, w, h)
//	svg, err := render.RenderSVG(ctx, render.ToDOT(doc))
package render
