package layout

import (
	"math"
	"math/rand"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/analyze"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/er"
)

// forceLayout runs a bounded force-directed simulation: pairwise
// repulsion between all entities, spring attraction along relationship
// edges, damped displacement per step. Initial positions sit on a
// jittered circle seeded from the config, so the result is identical
// across runs. The iteration count is fixed; there is no convergence
// check.
func forceLayout(d *er.Diagram, a *analyze.Analysis, cfg Config) PositionMap {
	n := len(d.Entities)
	pm := make(PositionMap, n)
	if n == 0 {
		return pm
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	center := cfg.Center()
	ring := math.Min(cfg.CanvasWidth, cfg.CanvasHeight) / 3

	names := make([]string, n)
	pos := make([]er.Point, n)
	index := make(map[string]int, n)
	for i, ent := range d.Entities {
		names[i] = ent.Name
		index[ent.Name] = i
		angle := 2*math.Pi*float64(i)/float64(n) + (rng.Float64()-0.5)*0.2
		radius := ring * (1 + (rng.Float64()-0.5)*0.2)
		pos[i] = polar(center, angle, radius)
	}

	edges := dedupEdges(d, index)
	disp := make([]er.Point, n)

	for iter := 0; iter < cfg.ForceIterations; iter++ {
		for i := range disp {
			disp[i] = er.Point{}
		}

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx, dy := pos[j].X-pos[i].X, pos[j].Y-pos[i].Y
				dsq := dx*dx + dy*dy
				if dsq < 1e-6 {
					// Coincident nodes get an index-derived nudge so
					// the repulsion direction stays deterministic.
					dx, dy = math.Cos(float64(i+j)), math.Sin(float64(i+j))
					dsq = 1
				}
				dist := math.Sqrt(dsq)
				f := cfg.ForceRepulsion / dsq
				ux, uy := dx/dist, dy/dist
				disp[i].X -= ux * f
				disp[i].Y -= uy * f
				disp[j].X += ux * f
				disp[j].Y += uy * f
			}
		}

		for _, e := range edges {
			i, j := e[0], e[1]
			dist := distance(pos[i], pos[j])
			if dist < 1e-9 {
				continue
			}
			f := cfg.ForceSpring * (dist - cfg.ForceRestLength)
			u := unit(pos[i], pos[j])
			disp[i].X += u.X * f
			disp[i].Y += u.Y * f
			disp[j].X -= u.X * f
			disp[j].Y -= u.Y * f
		}

		for i := 0; i < n; i++ {
			step := er.Point{X: disp[i].X * cfg.ForceDamping, Y: disp[i].Y * cfg.ForceDamping}
			mag := math.Hypot(step.X, step.Y)
			if mag > cfg.ForceMaxStep {
				step.X *= cfg.ForceMaxStep / mag
				step.Y *= cfg.ForceMaxStep / mag
			}
			pos[i].X += step.X
			pos[i].Y += step.Y
		}
	}

	for i, name := range names {
		pm[name] = pos[i]
	}
	return pm
}

// dedupEdges collapses parallel relationships and drops self-loops,
// preserving first-seen order.
func dedupEdges(d *er.Diagram, index map[string]int) [][2]int {
	seen := make(map[[2]int]bool, len(d.Relationships))
	var edges [][2]int
	for _, rel := range d.Relationships {
		i, j := index[rel.From], index[rel.To]
		if i == j {
			continue
		}
		key := [2]int{min(i, j), max(i, j)}
		if seen[key] {
			continue
		}
		seen[key] = true
		edges = append(edges, [2]int{i, j})
	}
	return edges
}
