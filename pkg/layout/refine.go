package layout

import (
	"github.com/drlldiego/diagrammer-web-sub004/pkg/er"
)

// Sweep cap for the collision pass. Dense graphs settle well before
// this; the cap keeps a pathological layout from cycling forever.
const maxCollisionSweeps = 16

// Refine post-processes a position map in four fixed passes, in order:
//
//  1. collision: push entity pairs closer than the minimum separation
//     apart, symmetrically, sweeping until stable
//  2. proximity: pull related entities that drifted past the proximity
//     threshold toward their midpoint by the configured fraction
//  3. line overlap: displace entities sitting too close to a
//     relationship line they are not part of, perpendicular to it
//  4. bounds: clamp everything inside the margin
//
// The map is modified in place and returned. Order matters: proximity
// may reintroduce mild crowding and bounds always wins, matching the
// priority of readable spacing over tight clustering.
func Refine(pm PositionMap, d *er.Diagram, cfg Config) PositionMap {
	resolveCollisions(pm, d, cfg)
	tightenProximity(pm, d, cfg)
	clearLineOverlaps(pm, d, cfg)
	clampBounds(pm, d, cfg)
	return pm
}

func resolveCollisions(pm PositionMap, d *er.Diagram, cfg Config) {
	for sweep := 0; sweep < maxCollisionSweeps; sweep++ {
		moved := false
		for i := 0; i < len(d.Entities); i++ {
			for j := i + 1; j < len(d.Entities); j++ {
				a, b := d.Entities[i].Name, d.Entities[j].Name
				pa, pb := pm[a], pm[b]
				dist := distance(pa, pb)
				if dist >= cfg.MinSeparation {
					continue
				}
				dir := unit(pa, pb)
				push := (cfg.MinSeparation - dist) / 2
				pm[a] = translate(pa, dir, -push)
				pm[b] = translate(pb, dir, push)
				moved = true
			}
		}
		if !moved {
			return
		}
	}
}

func tightenProximity(pm PositionMap, d *er.Diagram, cfg Config) {
	for _, rel := range d.Relationships {
		pa, okA := pm[rel.From]
		pb, okB := pm[rel.To]
		if !okA || !okB || distance(pa, pb) <= cfg.ProximityThreshold {
			continue
		}
		mid := midpoint(pa, pb)
		pm[rel.From] = er.Point{
			X: pa.X + (mid.X-pa.X)*cfg.ProximityPull,
			Y: pa.Y + (mid.Y-pa.Y)*cfg.ProximityPull,
		}
		pm[rel.To] = er.Point{
			X: pb.X + (mid.X-pb.X)*cfg.ProximityPull,
			Y: pb.Y + (mid.Y-pb.Y)*cfg.ProximityPull,
		}
	}
}

func clearLineOverlaps(pm PositionMap, d *er.Diagram, cfg Config) {
	for _, rel := range d.Relationships {
		pa, okA := pm[rel.From]
		pb, okB := pm[rel.To]
		if !okA || !okB || rel.From == rel.To {
			continue
		}
		for _, ent := range d.Entities {
			if ent.Name == rel.From || ent.Name == rel.To {
				continue
			}
			p, ok := pm[ent.Name]
			if !ok {
				continue
			}
			dist, closest := pointSegment(p, pa, pb)
			if dist >= cfg.LineBuffer {
				continue
			}
			dir := unit(closest, p)
			if dist < 1e-9 {
				dir = perpendicular(pa, pb)
			}
			pm[ent.Name] = translate(p, dir, cfg.LineBuffer-dist)
		}
	}
}

func clampBounds(pm PositionMap, d *er.Diagram, cfg Config) {
	for _, ent := range d.Entities {
		p, ok := pm[ent.Name]
		if !ok {
			continue
		}
		if p.X < cfg.Margin {
			p.X = cfg.Margin
		}
		if p.Y < cfg.Margin {
			p.Y = cfg.Margin
		}
		pm[ent.Name] = p
	}
}
