package analyze

import (
	"sort"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/er"
)

// Pattern is the overall topology class of a diagram.
type Pattern string

// Topology patterns derived from category coverage ratios.
const (
	PatternCentralized Pattern = "centralized"
	PatternLinear      Pattern = "linear"
	PatternDistributed Pattern = "distributed"
	PatternMixed       Pattern = "mixed"
)

// Strategy identifies a layout strategy engine.
type Strategy string

// Layout strategies. StrategyChain is never recommended automatically but
// remains selectable as an explicit override.
const (
	StrategyGrid    Strategy = "grid-fallback"
	StrategyRadial  Strategy = "custom-radial"
	StrategyLayered Strategy = "elk-layered"
	StrategyForce   Strategy = "adaptive-force"
	StrategyChain   Strategy = "sequential-chain"
)

// Coverage thresholds and size cutoffs for pattern and strategy selection.
const (
	hubCoverageThreshold     = 0.6
	chainCoverageThreshold   = 0.6
	clusterCoverageThreshold = 0.5

	gridMaxEntities     = 3  // at or below: trivial, grid regardless of shape
	forceMaxDistributed = 15 // distributed graphs larger than this go layered
	forceMaxMixed       = 10 // mixed graphs larger than this go layered
	minChainLength      = 3
	minClusterSize      = 3
	hubMinDegree        = 2
)

// Hub is a high-degree entity with its direct neighbors.
type Hub struct {
	Entity    string
	Degree    int
	Neighbors []string
}

// Chain is an ordered path of entities. Linear reports the strict form:
// interior entities of degree exactly 2 with degree-1 endpoints.
type Chain struct {
	Entities []string
	Linear   bool
}

// Cluster is a connected group of degree-≥2 entities with its internal
// edge density (internal edges / maximum possible edges).
type Cluster struct {
	Entities []string
	Density  float64
}

// Analysis is the full connectivity classification of one diagram.
// It is an ephemeral value: rebuilt on every generation request and
// discarded once layout completes.
type Analysis struct {
	Order     []string            // entity names in diagram order
	Degree    map[string]int      // distinct-neighbor degree per entity
	Adjacency map[string][]string // undirected, deduplicated, discovery order

	Hubs     []Hub
	Chains   []Chain
	Clusters []Cluster
	Isolated []string

	HubCoverage     float64
	ChainCoverage   float64
	ClusterCoverage float64

	Pattern  Pattern
	Strategy Strategy
}

// Analyze classifies the connectivity of d. It always succeeds; see the
// package documentation for the category definitions.
func Analyze(d *er.Diagram) *Analysis {
	g := buildArena(d)

	a := &Analysis{
		Order:     g.names,
		Degree:    make(map[string]int, len(g.names)),
		Adjacency: make(map[string][]string, len(g.names)),
	}
	for i, name := range g.names {
		a.Degree[name] = len(g.adj[i])
		nbrs := make([]string, len(g.adj[i]))
		for j, n := range g.adj[i] {
			nbrs[j] = g.names[n]
		}
		a.Adjacency[name] = nbrs
	}

	a.Hubs = findHubs(g)
	a.Chains = findChains(g)
	a.Clusters = findClusters(g)
	a.Isolated = findIsolated(g)

	a.HubCoverage, a.ChainCoverage, a.ClusterCoverage = coverage(g, a)
	a.Pattern = classifyPattern(g, a)
	a.Strategy = recommendStrategy(d, a)
	return a
}

// =============================================================================
// Entity Arena
// =============================================================================

// arena holds the diagram as an integer-indexed undirected simple graph.
// Index order is entity discovery order, which makes every traversal
// below deterministic without sorting names.
type arena struct {
	names []string
	index map[string]int
	adj   [][]int // deduplicated, in edge discovery order
}

func buildArena(d *er.Diagram) *arena {
	g := &arena{
		names: d.EntityNames(),
		index: make(map[string]int, len(d.Entities)),
	}
	for i, name := range g.names {
		g.index[name] = i
	}
	g.adj = make([][]int, len(g.names))

	seen := make(map[[2]int]bool)
	for _, r := range d.Relationships {
		u, v := g.index[r.From], g.index[r.To]
		if u == v {
			continue // self-loops carry no topology
		}
		key := [2]int{min(u, v), max(u, v)}
		if seen[key] {
			continue // parallel relationships count once
		}
		seen[key] = true
		g.adj[u] = append(g.adj[u], v)
		g.adj[v] = append(g.adj[v], u)
	}
	return g
}

func (g *arena) degree(i int) int { return len(g.adj[i]) }

// edgeCount returns the number of unique undirected edges inside the set.
func (g *arena) edgeCount(set map[int]bool) int {
	count := 0
	for u := range set {
		for _, v := range g.adj[u] {
			if u < v && set[v] {
				count++
			}
		}
	}
	return count
}

// =============================================================================
// Category Extraction
// =============================================================================

func findHubs(g *arena) []Hub {
	var hubs []Hub
	for i, name := range g.names {
		if g.degree(i) < hubMinDegree {
			continue
		}
		nbrs := make([]string, len(g.adj[i]))
		for j, n := range g.adj[i] {
			nbrs[j] = g.names[n]
		}
		hubs = append(hubs, Hub{Entity: name, Degree: g.degree(i), Neighbors: nbrs})
	}
	// Degree descending, arena order as the tie-break.
	sort.SliceStable(hubs, func(a, b int) bool { return hubs[a].Degree > hubs[b].Degree })
	return hubs
}

// findChains extracts maximal degree-≤2 paths. Starting from each unvisited
// entity of degree 1 or 2 (in arena order), the path is grown in both
// directions while the next entity is unvisited and has degree ≤ 2.
func findChains(g *arena) []Chain {
	visited := make([]bool, len(g.names))
	var chains []Chain

	for start := range g.names {
		deg := g.degree(start)
		if visited[start] || deg == 0 || deg > 2 {
			continue
		}
		path := growPath(g, start, visited)
		if len(path) < minChainLength {
			continue
		}

		linear := g.degree(path[0]) == 1 && g.degree(path[len(path)-1]) == 1
		for _, i := range path[1 : len(path)-1] {
			if g.degree(i) != 2 {
				linear = false
				break
			}
		}

		names := make([]string, len(path))
		for i, idx := range path {
			names[i] = g.names[idx]
		}
		chains = append(chains, Chain{Entities: names, Linear: linear})
	}
	return chains
}

// growPath extends a path from start in both directions using an explicit
// worklist. Visited entities are claimed by the path that reaches them first.
func growPath(g *arena, start int, visited []bool) []int {
	path := []int{start}
	visited[start] = true

	// Extend forward, then backward from the starting entity.
	for _, backward := range []bool{false, true} {
		cur := start
		for {
			next := -1
			for _, n := range g.adj[cur] {
				if !visited[n] && g.degree(n) <= 2 {
					next = n
					break
				}
			}
			if next == -1 {
				break
			}
			visited[next] = true
			if backward {
				path = append([]int{next}, path...)
			} else {
				path = append(path, next)
			}
			cur = next
		}
	}
	return path
}

// findClusters groups connected degree-≥2 entities via iterative BFS.
func findClusters(g *arena) []Cluster {
	visited := make([]bool, len(g.names))
	var clusters []Cluster

	for start := range g.names {
		if visited[start] || g.degree(start) < 2 {
			continue
		}

		group := map[int]bool{start: true}
		order := []int{start}
		visited[start] = true
		queue := []int{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, n := range g.adj[cur] {
				if visited[n] || g.degree(n) < 2 {
					continue
				}
				visited[n] = true
				group[n] = true
				order = append(order, n)
				queue = append(queue, n)
			}
		}

		if len(group) < minClusterSize {
			continue
		}

		n := len(group)
		maxEdges := n * (n - 1) / 2
		names := make([]string, len(order))
		for i, idx := range order {
			names[i] = g.names[idx]
		}
		clusters = append(clusters, Cluster{
			Entities: names,
			Density:  float64(g.edgeCount(group)) / float64(maxEdges),
		})
	}
	return clusters
}

func findIsolated(g *arena) []string {
	var isolated []string
	for i, name := range g.names {
		if g.degree(i) == 0 {
			isolated = append(isolated, name)
		}
	}
	return isolated
}

// =============================================================================
// Pattern Classification
// =============================================================================

// coverage computes the fraction of entities covered by each category.
// Hub coverage counts hubs together with their direct neighbors: a star of
// one hub and four leaves is fully hub-covered. A hub that is itself a
// chain member never seeds hub coverage — degree-2 chain interiors qualify
// as hubs by degree alone, and counting them would claim every pure chain
// for the centralized pattern.
func coverage(g *arena, a *Analysis) (hub, chain, cluster float64) {
	if len(g.names) == 0 {
		return 0, 0, 0
	}
	total := float64(len(g.names))

	chainSet := make(map[string]bool)
	for _, c := range a.Chains {
		for _, n := range c.Entities {
			chainSet[n] = true
		}
	}
	hubSet := make(map[string]bool)
	for _, h := range a.Hubs {
		if chainSet[h.Entity] {
			continue
		}
		hubSet[h.Entity] = true
		for _, n := range h.Neighbors {
			hubSet[n] = true
		}
	}
	clusterSet := make(map[string]bool)
	for _, c := range a.Clusters {
		for _, n := range c.Entities {
			clusterSet[n] = true
		}
	}
	return float64(len(hubSet)) / total,
		float64(len(chainSet)) / total,
		float64(len(clusterSet)) / total
}

func classifyPattern(g *arena, a *Analysis) Pattern {
	switch {
	case a.HubCoverage > hubCoverageThreshold:
		return PatternCentralized
	case a.ChainCoverage > chainCoverageThreshold:
		return PatternLinear
	case a.ClusterCoverage > clusterCoverageThreshold:
		return PatternDistributed
	default:
		return PatternMixed
	}
}

// recommendStrategy chooses the layout engine for the detected pattern.
// Degenerate graphs (tiny, or without a single relationship) always take
// the grid: there is no structure for the other engines to exploit.
func recommendStrategy(d *er.Diagram, a *Analysis) Strategy {
	n := len(d.Entities)
	if n <= gridMaxEntities || len(d.Relationships) == 0 {
		return StrategyGrid
	}
	switch a.Pattern {
	case PatternCentralized:
		return StrategyRadial
	case PatternLinear:
		return StrategyLayered
	case PatternDistributed:
		if n <= forceMaxDistributed {
			return StrategyForce
		}
		return StrategyLayered
	default: // mixed
		if n <= forceMaxMixed {
			return StrategyForce
		}
		return StrategyLayered
	}
}

// ParseStrategy validates a strategy name from external input ("auto" is
// not a strategy; callers map it to the recommendation).
func ParseStrategy(s string) (Strategy, bool) {
	switch Strategy(s) {
	case StrategyGrid, StrategyRadial, StrategyLayered, StrategyForce, StrategyChain:
		return Strategy(s), true
	default:
		return "", false
	}
}
