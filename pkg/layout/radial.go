package layout

import (
	"math"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/analyze"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/er"
)

// Outgoing directions for chains attached to a hub, cycled in order.
var chainDirections = []er.Point{
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 0, Y: -1},
}

// radialLayout anchors the dominant hub at the canvas center. Secondary
// hubs sit on a ring around it, angled toward the centroid of their
// already-positioned neighbors. Chains touching a positioned hub extend
// outward in cycled cardinal directions, clusters occupy corner zones,
// and isolated entities line up in a strip along the bottom edge.
// Entities no rule reaches are handled by the shared completion pass.
func radialLayout(d *er.Diagram, a *analyze.Analysis, cfg Config) PositionMap {
	if len(a.Hubs) == 0 {
		return gridLayout(d, a, cfg)
	}

	pm := make(PositionMap, len(d.Entities))
	center := cfg.Center()
	pm[a.Hubs[0].Entity] = center

	secondary := a.Hubs[1:]
	for i, hub := range secondary {
		angle := 2 * math.Pi * float64(i) / float64(len(secondary))
		var cx, cy float64
		placed := 0
		for _, n := range hub.Neighbors {
			if p, ok := pm[n]; ok {
				cx += p.X
				cy += p.Y
				placed++
			}
		}
		if placed > 0 {
			centroid := er.Point{X: cx / float64(placed), Y: cy / float64(placed)}
			if distance(centroid, center) > 1e-9 {
				angle = math.Atan2(centroid.Y-center.Y, centroid.X-center.X)
			}
		}
		pm[hub.Entity] = polar(center, angle, cfg.HubRingRadius)
	}

	placeHubChains(pm, a, cfg)
	placeClusterZones(pm, a, cfg)
	placeIsolatedStrip(pm, a, cfg)
	return pm
}

// placeHubChains walks each chain that touches a positioned hub,
// stepping away from the hub in the next cycled direction.
func placeHubChains(pm PositionMap, a *analyze.Analysis, cfg Config) {
	dirIdx := 0
	for _, chain := range a.Chains {
		anchor, ordered, ok := hubAnchor(pm, a, chain.Entities)
		if !ok {
			continue
		}
		dir := chainDirections[dirIdx%len(chainDirections)]
		dirIdx++
		step := 1
		for _, name := range ordered {
			if _, done := pm[name]; done {
				continue
			}
			pm[name] = translate(anchor, dir, float64(step)*cfg.ChainSpacing)
			step++
		}
	}
}

// hubAnchor finds the positioned hub a chain hangs off and returns the
// chain ordered from that end outward.
func hubAnchor(pm PositionMap, a *analyze.Analysis, chain []string) (er.Point, []string, bool) {
	if len(chain) == 0 {
		return er.Point{}, nil, false
	}
	touches := func(name string) (er.Point, bool) {
		for _, n := range a.Adjacency[name] {
			if p, ok := pm[n]; ok {
				return p, true
			}
		}
		return er.Point{}, false
	}
	if p, ok := touches(chain[0]); ok {
		return p, chain, true
	}
	if p, ok := touches(chain[len(chain)-1]); ok {
		reversed := make([]string, len(chain))
		for i, name := range chain {
			reversed[len(chain)-1-i] = name
		}
		return p, reversed, true
	}
	return er.Point{}, nil, false
}

// placeClusterZones rings each unplaced cluster around one of four
// corner zone centers, cycling zones per cluster.
func placeClusterZones(pm PositionMap, a *analyze.Analysis, cfg Config) {
	zones := []er.Point{
		{X: cfg.CanvasWidth * 0.85, Y: cfg.CanvasHeight * 0.15},
		{X: cfg.CanvasWidth * 0.85, Y: cfg.CanvasHeight * 0.85},
		{X: cfg.CanvasWidth * 0.15, Y: cfg.CanvasHeight * 0.85},
		{X: cfg.CanvasWidth * 0.15, Y: cfg.CanvasHeight * 0.15},
	}
	zone := 0
	for _, cluster := range a.Clusters {
		var pending []string
		for _, name := range cluster.Entities {
			if _, done := pm[name]; !done {
				pending = append(pending, name)
			}
		}
		if len(pending) == 0 {
			continue
		}
		origin := zones[zone%len(zones)]
		zone++
		for i, name := range pending {
			angle := 2 * math.Pi * float64(i) / float64(len(pending))
			pm[name] = polar(origin, angle, cfg.ClusterRadius)
		}
	}
}

// placeIsolatedStrip lines isolated entities along the bottom margin.
func placeIsolatedStrip(pm PositionMap, a *analyze.Analysis, cfg Config) {
	y := cfg.CanvasHeight - cfg.Margin - er.DefaultEntityHeight/2
	for i, name := range a.Isolated {
		if _, done := pm[name]; done {
			continue
		}
		pm[name] = er.Point{
			X: cfg.Margin + cfg.GridCellWidth/2 + float64(i)*cfg.GridCellWidth,
			Y: y,
		}
	}
}
