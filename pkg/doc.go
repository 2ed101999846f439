// Package pkg provides the core libraries for the diagrammer ER compiler.
//
// # Overview
//
// Diagrammer compiles declarative entity-relationship definitions into
// positioned diagram documents. The pkg directory is organized along the
// compilation pipeline:
//
//  1. [er] - Domain model (entities, relationships, Crow's-Foot cardinality)
//  2. [er/parse] - Source text parsing (line syntax and structured YAML)
//  3. [analyze] - Topology classification and strategy recommendation
//  4. [layout] - Position computation (five strategies) and refinement
//  5. [canvas] - Positioned document serialization (JSON)
//  6. [render] - Graphviz DOT and SVG output
//  7. [pipeline] - Orchestration (parse → analyze → layout → document)
//  8. [cache] - Content-addressed result caching
//
// # Architecture
//
// The typical data flow:
//
//	Definition text (.erd)
//	         ↓
//	    [er/parse] package (build the entity graph)
//	         ↓
//	    [analyze] package (classify topology, pick a strategy)
//	         ↓
//	    [layout] package (compute and refine positions)
//	         ↓
//	    [canvas] package (positioned JSON document)
//	         ↓
//	    JSON/DOT/SVG output, or [er/serialize] back to text
//
// # Quick Start
//
// Compile a definition and write the positioned document:
//
//	import (
//	    "context"
//	    "github.com/drlldiego/diagrammer-web-sub004/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Source: "Customer ||--o{ Order : places",
//	})
//	if err != nil {
//	    // handle
//	}
//	data, _ := canvas.Marshal(result.Document)
//
// [er]: https://pkg.go.dev/github.com/drlldiego/diagrammer-web-sub004/pkg/er
// [er/parse]: https://pkg.go.dev/github.com/drlldiego/diagrammer-web-sub004/pkg/er/parse
// [er/serialize]: https://pkg.go.dev/github.com/drlldiego/diagrammer-web-sub004/pkg/er/serialize
// [analyze]: https://pkg.go.dev/github.com/drlldiego/diagrammer-web-sub004/pkg/analyze
// [layout]: https://pkg.go.dev/github.com/drlldiego/diagrammer-web-sub004/pkg/layout
// [canvas]: https://pkg.go.dev/github.com/drlldiego/diagrammer-web-sub004/pkg/canvas
// [render]: https://pkg.go.dev/github.com/drlldiego/diagrammer-web-sub004/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/drlldiego/diagrammer-web-sub004/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/drlldiego/diagrammer-web-sub004/pkg/cache
package pkg
