// Package layout assigns 2D canvas positions to diagram entities.
//
// Five strategy engines share one contract: given a diagram and its
// connectivity analysis they produce exactly one position per entity and
// never fail - engines fall back internally instead of raising.
//
//   - custom-radial: hub-and-spoke placement for centralized topologies
//   - sequential-chain: dominant path left-to-right, branches perpendicular
//   - adaptive-force: bounded-iteration force simulation for small and
//     medium distributed/mixed graphs
//   - elk-layered: delegation to the external Graphviz layout engine,
//     with a grid fallback when the engine fails
//   - grid-fallback: degree-sorted row-major grid for trivial graphs
//
// The [Engine] dispatches on the recommended strategy (or an explicit
// override) and guarantees completeness: entities no strategy reached are
// placed near the centroid of their relationship partners via a
// deterministic candidate-angle search.
//
// [Refine] post-processes a position map in four fixed passes: pairwise
// collision avoidance, connected-entity proximity tightening, line-to-node
// overlap mitigation, and bounds correction.
//
// All coordinates are plain float64 canvas units. Every code path is
// deterministic: randomness (force jitter) comes from a fixed seed in
// [Config], never from system entropy, so identical input yields identical
// coordinates on every run.
package layout
