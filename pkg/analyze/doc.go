// Package analyze classifies the connectivity shape of a diagram and
// recommends a layout strategy.
//
// The analyzer builds an undirected adjacency structure from the
// relationships (direction and cardinality are irrelevant to topology),
// then extracts four categories:
//
//   - Hubs: entities with degree ≥ 2, sorted by degree descending
//   - Chains: maximal paths of degree-≤2 entities, length ≥ 3
//   - Clusters: connected groups of degree-≥2 entities, size ≥ 3, with an
//     internal edge density
//   - Isolated: entities with no relationships at all
//
// Coverage ratios over these categories yield an overall topology
// [Pattern] (centralized, linear, distributed, mixed) and a recommended
// [Strategy]. Analyze is total: it never fails, and an empty diagram
// yields empty categories with pattern "mixed".
//
// Traversal is iterative (explicit worklists over integer indices into an
// entity arena), so chain and cluster expansion is stack-safe and visits
// entities in a deterministic order.
package analyze
