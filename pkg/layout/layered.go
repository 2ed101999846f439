package layout

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/analyze"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/er"
)

// dotLayouter runs an external layered layout over a DOT document and
// returns per-node positions in that engine's coordinate space
// (origin bottom-left, points).
type dotLayouter interface {
	layout(ctx context.Context, dot string) (map[string]er.Point, error)
}

// graphvizLayouter is the production layouter, backed by the embedded
// Graphviz runtime.
type graphvizLayouter struct{}

func (graphvizLayouter) layout(ctx context.Context, dot string) (map[string]er.Point, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parsing dot: %w", err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.Format("dot"), &buf); err != nil {
		return nil, fmt.Errorf("running layered layout: %w", err)
	}
	return parseDotPositions(buf.String())
}

// layeredLayout delegates to the external engine and converts its
// coordinates onto the canvas. Any failure, including a node missing
// from the engine's output, recovers to the grid; the caller never
// sees the error.
func (e *Engine) layeredLayout(ctx context.Context, d *er.Diagram, a *analyze.Analysis) PositionMap {
	if len(d.Entities) == 0 {
		return make(PositionMap)
	}
	raw, err := e.layered.layout(ctx, buildLayeredDOT(d, a, e.cfg))
	if err != nil {
		return gridLayout(d, a, e.cfg)
	}

	pm := make(PositionMap, len(d.Entities))
	maxY := 0.0
	for _, ent := range d.Entities {
		p, ok := raw[ent.Name]
		if !ok {
			return gridLayout(d, a, e.cfg)
		}
		if p.Y > maxY {
			maxY = p.Y
		}
		pm[ent.Name] = p
	}
	// Graphviz grows Y upward; the canvas grows it downward.
	for name, p := range pm {
		pm[name] = er.Point{X: p.X + e.cfg.Margin, Y: maxY - p.Y + e.cfg.Margin}
	}
	return pm
}

// buildLayeredDOT renders the diagram as a DOT digraph sized in inches
// (72 points per unit). Linear topologies rank left-to-right so the
// dominant path reads as a row; everything else ranks top-to-bottom.
func buildLayeredDOT(d *er.Diagram, a *analyze.Analysis, cfg Config) string {
	rankdir := "TB"
	if a.Pattern == analyze.PatternLinear {
		rankdir = "LR"
	}

	var b strings.Builder
	b.WriteString("digraph ER {\n")
	fmt.Fprintf(&b, "  rankdir=%s;\n", rankdir)
	fmt.Fprintf(&b, "  nodesep=%.3f;\n", cfg.LayerNodeSep/72)
	fmt.Fprintf(&b, "  ranksep=%.3f;\n", cfg.LayerRankSep/72)
	fmt.Fprintf(&b, "  node [shape=box, fixedsize=true, width=%.3f, height=%.3f];\n",
		er.DefaultEntityWidth/72, er.DefaultEntityHeight/72)
	for _, ent := range d.Entities {
		fmt.Fprintf(&b, "  %s;\n", dotID(ent.Name))
	}
	for _, rel := range d.Relationships {
		fmt.Fprintf(&b, "  %s -> %s;\n", dotID(rel.From), dotID(rel.To))
	}
	b.WriteString("}\n")
	return b.String()
}

func dotID(name string) string {
	return strconv.Quote(name)
}

var dotNodeStmt = regexp.MustCompile(`(?m)^\s*("(?:[^"\\]|\\.)*"|[A-Za-z0-9_-]+)\s*\[([^\]]*)\]`)
var dotPosAttr = regexp.MustCompile(`\bpos="(-?[0-9.]+),(-?[0-9.]+)"`)

// parseDotPositions extracts node center positions from Graphviz's
// attributed DOT output. Statements without a pos attribute (the graph
// attribute block) are skipped; edge statements never match because a
// second identifier precedes their attribute list.
func parseDotPositions(out string) (map[string]er.Point, error) {
	// Graphviz wraps long attribute lists with backslash continuations.
	out = strings.ReplaceAll(out, "\\\n", "")

	positions := make(map[string]er.Point)
	for _, m := range dotNodeStmt.FindAllStringSubmatch(out, -1) {
		name, attrs := m[1], m[2]
		if name == "graph" || name == "node" || name == "edge" {
			continue
		}
		pos := dotPosAttr.FindStringSubmatch(attrs)
		if pos == nil {
			continue
		}
		x, errX := strconv.ParseFloat(pos[1], 64)
		y, errY := strconv.ParseFloat(pos[2], 64)
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("malformed pos attribute for %s", name)
		}
		if unq, err := strconv.Unquote(name); err == nil {
			name = unq
		}
		positions[name] = er.Point{X: x, Y: y}
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("no node positions in layout output")
	}
	return positions, nil
}
