package layout

import (
	"github.com/drlldiego/diagrammer-web-sub004/pkg/analyze"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/er"
)

// chainLayout lays the longest chain horizontally across the vertical
// midline, one spacing step per entity. Branches hanging off chain
// members extend perpendicular to the main axis, alternating above and
// below. Secondary chains stack on rows beneath the main one.
func chainLayout(d *er.Diagram, a *analyze.Analysis, cfg Config) PositionMap {
	if len(a.Chains) == 0 {
		return gridLayout(d, a, cfg)
	}

	pm := make(PositionMap, len(d.Entities))
	main := 0
	for i, c := range a.Chains {
		if len(c.Entities) > len(a.Chains[main].Entities) {
			main = i
		}
	}

	startX := cfg.Margin + er.DefaultEntityWidth/2
	placeChainRow(pm, a.Chains[main].Entities, startX, cfg.CanvasHeight/2, cfg)

	placeBranches(pm, a.Chains[main].Entities, a, cfg)

	row := 1
	for i, c := range a.Chains {
		if i == main {
			continue
		}
		y := cfg.CanvasHeight/2 + float64(row)*(cfg.BranchSpacing*2)
		placeChainRow(pm, c.Entities, startX, y, cfg)
		placeBranches(pm, c.Entities, a, cfg)
		row++
	}
	return pm
}

// placeBranches hangs unplaced neighbors off chain members,
// perpendicular to the chain axis and alternating above and below.
// Deeper branch levels off the same member step further out.
func placeBranches(pm PositionMap, chain []string, a *analyze.Analysis, cfg Config) {
	for _, name := range chain {
		anchor, ok := pm[name]
		if !ok {
			continue
		}
		n := 0
		for _, nbr := range a.Adjacency[name] {
			if _, done := pm[nbr]; done {
				continue
			}
			offset := cfg.BranchSpacing * float64(n/2+1)
			if n%2 == 0 {
				offset = -offset
			}
			pm[nbr] = er.Point{X: anchor.X, Y: anchor.Y + offset}
			n++
		}
	}
}

// placeChainRow positions one chain along a horizontal row and hangs
// unplaced neighbors off each member, alternating sides.
func placeChainRow(pm PositionMap, chain []string, startX, y float64, cfg Config) {
	for i, name := range chain {
		if _, done := pm[name]; done {
			continue
		}
		pm[name] = er.Point{X: startX + float64(i)*cfg.ChainSpacing, Y: y}
	}
}
