package layout

import (
	"math"
	"sort"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/analyze"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/er"
)

// gridLayout fills a near-square row-major grid. Entities are ordered
// by degree, highest first, so the most connected ones occupy the top
// rows; ties keep diagram order.
func gridLayout(d *er.Diagram, a *analyze.Analysis, cfg Config) PositionMap {
	pm := make(PositionMap, len(d.Entities))
	if len(d.Entities) == 0 {
		return pm
	}

	names := make([]string, len(d.Entities))
	for i, ent := range d.Entities {
		names[i] = ent.Name
	}
	sort.SliceStable(names, func(i, j int) bool {
		return a.Degree[names[i]] > a.Degree[names[j]]
	})

	cols := int(math.Ceil(math.Sqrt(float64(len(names)))))
	for i, name := range names {
		row, col := i/cols, i%cols
		pm[name] = er.Point{
			X: cfg.Margin + float64(col)*cfg.GridCellWidth + cfg.GridCellWidth/2,
			Y: cfg.Margin + float64(row)*cfg.GridCellHeight + cfg.GridCellHeight/2,
		}
	}
	return pm
}
