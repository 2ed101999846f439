package layout

import (
	"context"
	"math"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/analyze"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/er"
)

// PositionMap holds the computed center position for every entity,
// keyed by entity name.
type PositionMap map[string]er.Point

// Engine dispatches a diagram to the strategy recommended by its
// analysis (or an explicit override) and guarantees a complete,
// finite position map on return.
type Engine struct {
	cfg     Config
	layered dotLayouter
}

// New returns an engine backed by the Graphviz layered layouter.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg, layered: graphvizLayouter{}}
}

// Config returns the engine's tuning.
func (e *Engine) Config() Config { return e.cfg }

// Layout positions every entity using the strategy the analysis
// recommends.
func (e *Engine) Layout(ctx context.Context, d *er.Diagram, a *analyze.Analysis) PositionMap {
	return e.LayoutStrategy(ctx, d, a, a.Strategy)
}

// LayoutStrategy positions every entity using an explicit strategy,
// bypassing the recommendation. Unknown strategies fall through to the
// grid. Engines never fail outward: layered-engine errors recover to
// the grid internally, and any entity a strategy left unplaced is
// positioned by a deterministic fallback before return.
func (e *Engine) LayoutStrategy(ctx context.Context, d *er.Diagram, a *analyze.Analysis, strategy analyze.Strategy) PositionMap {
	var pm PositionMap
	switch strategy {
	case analyze.StrategyRadial:
		pm = radialLayout(d, a, e.cfg)
	case analyze.StrategyChain:
		pm = chainLayout(d, a, e.cfg)
	case analyze.StrategyForce:
		pm = forceLayout(d, a, e.cfg)
	case analyze.StrategyLayered:
		pm = e.layeredLayout(ctx, d, a)
	default:
		pm = gridLayout(d, a, e.cfg)
	}
	completePositions(pm, d, e.cfg)
	return pm
}

// completePositions places every entity the strategy missed. Each one
// lands near the centroid of its already-positioned relationship
// partners (canvas center when it has none), on a ring at the minimum
// separation distance. Twelve candidate angles are probed in a fixed
// order; the first collision-free candidate wins, and when all collide
// the one farthest from its nearest neighbor is used.
func completePositions(pm PositionMap, d *er.Diagram, cfg Config) {
	for idx, ent := range d.Entities {
		if _, ok := pm[ent.Name]; ok {
			continue
		}
		base := cfg.Center()
		var cx, cy float64
		placed := 0
		for _, partner := range d.Partners(ent.Name) {
			if p, ok := pm[partner]; ok {
				cx += p.X
				cy += p.Y
				placed++
			}
		}
		if placed > 0 {
			base = er.Point{X: cx / float64(placed), Y: cy / float64(placed)}
		}
		pm[ent.Name] = probeRing(pm, base, cfg.MinSeparation, idx)
	}
}

// probeRing scans candidate points on a ring around base. The starting
// angle rotates with idx so consecutive fallback placements fan out
// instead of stacking on one side.
func probeRing(pm PositionMap, base er.Point, radius float64, idx int) er.Point {
	const candidates = 12
	start := float64(idx) * (math.Pi / 6)

	best := polar(base, start, radius)
	bestClearance := -1.0
	for k := 0; k < candidates; k++ {
		angle := start + float64(k)*(2*math.Pi/candidates)
		cand := polar(base, angle, radius)
		clearance := math.Inf(1)
		for _, p := range pm {
			if d := distance(cand, p); d < clearance {
				clearance = d
			}
		}
		if clearance >= radius {
			return cand
		}
		if clearance > bestClearance {
			bestClearance = clearance
			best = cand
		}
	}
	return best
}
