package layout

import "github.com/drlldiego/diagrammer-web-sub004/pkg/er"

// Config tunes the layout strategies and the refinement passes. Zero
// values are not usable; start from DefaultConfig and override fields,
// or decode a TOML tuning file on top of the defaults.
type Config struct {
	// Canvas dimensions in abstract units. Engines aim to place
	// entities inside this box; Refine clamps anything that escapes.
	CanvasWidth  float64 `toml:"canvas_width"`
	CanvasHeight float64 `toml:"canvas_height"`

	// Radial strategy.
	HubRingRadius float64 `toml:"hub_ring_radius"`
	ClusterRadius float64 `toml:"cluster_radius"`

	// Chain strategy.
	ChainSpacing  float64 `toml:"chain_spacing"`
	BranchSpacing float64 `toml:"branch_spacing"`

	// Grid strategy.
	GridCellWidth  float64 `toml:"grid_cell_width"`
	GridCellHeight float64 `toml:"grid_cell_height"`

	// Force strategy. Iterations bound the simulation; there is no
	// convergence check, so runtime is predictable.
	ForceIterations int     `toml:"force_iterations"`
	ForceRepulsion  float64 `toml:"force_repulsion"`
	ForceSpring     float64 `toml:"force_spring"`
	ForceRestLength float64 `toml:"force_rest_length"`
	ForceDamping    float64 `toml:"force_damping"`
	ForceMaxStep    float64 `toml:"force_max_step"`

	// Layered strategy, forwarded to Graphviz as nodesep/ranksep
	// (converted to inches).
	LayerNodeSep float64 `toml:"layer_node_sep"`
	LayerRankSep float64 `toml:"layer_rank_sep"`

	// Refinement.
	MinSeparation      float64 `toml:"min_separation"`
	ProximityThreshold float64 `toml:"proximity_threshold"`
	ProximityPull      float64 `toml:"proximity_pull"`
	LineBuffer         float64 `toml:"line_buffer"`
	Margin             float64 `toml:"margin"`

	// Seed for the force simulation's jitter. Fixed by default so
	// repeated runs produce identical coordinates.
	Seed int64 `toml:"seed"`
}

// DefaultConfig returns the tuning used when no overrides are supplied.
func DefaultConfig() Config {
	return Config{
		CanvasWidth:  800,
		CanvasHeight: 600,

		HubRingRadius: 180,
		ClusterRadius: 110,

		ChainSpacing:  180,
		BranchSpacing: 140,

		GridCellWidth:  200,
		GridCellHeight: 140,

		ForceIterations: 120,
		ForceRepulsion:  90000,
		ForceSpring:     0.015,
		ForceRestLength: 180,
		ForceDamping:    0.85,
		ForceMaxStep:    50,

		LayerNodeSep: 60,
		LayerRankSep: 90,

		MinSeparation:      160,
		ProximityThreshold: 420,
		ProximityPull:      0.10,
		LineBuffer:         48,
		Margin:             40,

		Seed: 42,
	}
}

// Center is the midpoint of the configured canvas.
func (c Config) Center() er.Point {
	return er.Point{X: c.CanvasWidth / 2, Y: c.CanvasHeight / 2}
}
