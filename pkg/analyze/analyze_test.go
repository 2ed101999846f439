package analyze

import (
	"reflect"
	"testing"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/er"
)

// buildDiagram assembles a diagram from entity names and undirected edges.
// Edge cardinality is irrelevant to the analyzer.
func buildDiagram(entities []string, edges [][2]string) *er.Diagram {
	d := er.NewDiagram()
	for _, name := range entities {
		d.EnsureEntity(name)
	}
	for _, e := range edges {
		d.AddRelationship(er.Relationship{
			From:        e[0],
			To:          e[1],
			Cardinality: er.CardinalityFor(er.One, er.ZeroOrMany),
		})
	}
	return d
}

func TestAnalyzeEmptyDiagram(t *testing.T) {
	a := Analyze(er.NewDiagram())
	if a.Pattern != PatternMixed {
		t.Errorf("Pattern = %q, want mixed", a.Pattern)
	}
	if a.Strategy != StrategyGrid {
		t.Errorf("Strategy = %q, want grid-fallback", a.Strategy)
	}
	if len(a.Hubs)+len(a.Chains)+len(a.Clusters)+len(a.Isolated) != 0 {
		t.Error("empty diagram should have all-empty categories")
	}
}

func TestAnalyzeHubStar(t *testing.T) {
	d := buildDiagram(nil, [][2]string{
		{"Hub", "A"}, {"Hub", "B"}, {"Hub", "C"}, {"Hub", "D"},
	})
	a := Analyze(d)

	if len(a.Hubs) != 1 || a.Hubs[0].Entity != "Hub" || a.Hubs[0].Degree != 4 {
		t.Fatalf("Hubs = %+v, want single Hub of degree 4", a.Hubs)
	}
	if a.HubCoverage != 1.0 {
		t.Errorf("HubCoverage = %v, want 1.0 (hub plus its leaves)", a.HubCoverage)
	}
	if a.Pattern != PatternCentralized {
		t.Errorf("Pattern = %q, want centralized", a.Pattern)
	}
	if a.Strategy != StrategyRadial {
		t.Errorf("Strategy = %q, want custom-radial", a.Strategy)
	}
}

func TestAnalyzeIsolated(t *testing.T) {
	d := buildDiagram([]string{"A", "B", "C", "D", "E"}, nil)
	a := Analyze(d)

	if !reflect.DeepEqual(a.Isolated, []string{"A", "B", "C", "D", "E"}) {
		t.Errorf("Isolated = %v, want all five", a.Isolated)
	}
	if a.Pattern != PatternMixed {
		t.Errorf("Pattern = %q, want mixed", a.Pattern)
	}
	if a.Strategy != StrategyGrid {
		t.Errorf("Strategy = %q, want grid-fallback (no relationships)", a.Strategy)
	}
}

func TestAnalyzeLinearChain(t *testing.T) {
	d := buildDiagram(nil, [][2]string{
		{"A", "B"}, {"B", "C"}, {"C", "D"}, {"D", "E"},
	})
	a := Analyze(d)

	if len(a.Chains) != 1 {
		t.Fatalf("Chains = %+v, want one", a.Chains)
	}
	c := a.Chains[0]
	if len(c.Entities) != 5 {
		t.Errorf("chain length = %d, want 5", len(c.Entities))
	}
	if !c.Linear {
		t.Error("chain should be linear (degree-1 endpoints, degree-2 interior)")
	}
	if a.ChainCoverage != 1.0 {
		t.Errorf("ChainCoverage = %v, want 1.0", a.ChainCoverage)
	}
	if a.Pattern != PatternLinear {
		t.Errorf("Pattern = %q, want linear", a.Pattern)
	}
	if a.Strategy != StrategyLayered {
		t.Errorf("Strategy = %q, want elk-layered", a.Strategy)
	}
}

func TestAnalyzeDistributedRing(t *testing.T) {
	// Ring of six (every degree exactly 2) plus four isolated entities:
	// the ring is one non-linear chain, so hub coverage is zero and chain
	// coverage sits exactly at 0.6 (not above); cluster coverage at 0.6
	// clears the 0.5 bar.
	d := buildDiagram([]string{"I1", "I2", "I3", "I4"}, [][2]string{
		{"R1", "R2"}, {"R2", "R3"}, {"R3", "R4"}, {"R4", "R5"}, {"R5", "R6"}, {"R6", "R1"},
	})
	a := Analyze(d)

	if len(a.Clusters) != 1 || len(a.Clusters[0].Entities) != 6 {
		t.Fatalf("Clusters = %+v, want one of six", a.Clusters)
	}
	// Ring of n has n edges out of n(n-1)/2 possible: 6/15.
	if got := a.Clusters[0].Density; got < 0.39 || got > 0.41 {
		t.Errorf("Density = %v, want 0.4", got)
	}
	if a.Pattern != PatternDistributed {
		t.Errorf("Pattern = %q, want distributed (coverage %v/%v/%v)",
			a.Pattern, a.HubCoverage, a.ChainCoverage, a.ClusterCoverage)
	}
	if a.Strategy != StrategyForce {
		t.Errorf("Strategy = %q, want adaptive-force (10 entities)", a.Strategy)
	}
}

func TestAnalyzeMixedSparse(t *testing.T) {
	d := buildDiagram([]string{"E"}, [][2]string{{"A", "B"}, {"C", "D"}})
	a := Analyze(d)

	if a.Pattern != PatternMixed {
		t.Errorf("Pattern = %q, want mixed", a.Pattern)
	}
	if a.Strategy != StrategyForce {
		t.Errorf("Strategy = %q, want adaptive-force (5 entities)", a.Strategy)
	}
}

func TestAnalyzeLargeMixedGoesLayered(t *testing.T) {
	// Eleven entities, mixed shape: beyond the force cutoff of ten.
	edges := [][2]string{
		{"A", "B"}, {"C", "D"}, {"E", "F"}, {"G", "H"}, {"I", "J"},
	}
	d := buildDiagram([]string{"K"}, edges)
	a := Analyze(d)

	if a.Pattern != PatternMixed {
		t.Errorf("Pattern = %q, want mixed", a.Pattern)
	}
	if a.Strategy != StrategyLayered {
		t.Errorf("Strategy = %q, want elk-layered for 11 mixed entities", a.Strategy)
	}
}

func TestAnalyzeTinyGraphIsGrid(t *testing.T) {
	d := buildDiagram(nil, [][2]string{{"A", "B"}, {"B", "C"}})
	if a := Analyze(d); a.Strategy != StrategyGrid {
		t.Errorf("Strategy = %q, want grid-fallback for 3 entities", a.Strategy)
	}
}

func TestAnalyzeHubOrdering(t *testing.T) {
	// Two hubs of different degree: ordering is degree-descending.
	d := buildDiagram(nil, [][2]string{
		{"Big", "A"}, {"Big", "B"}, {"Big", "C"},
		{"Small", "A"}, {"Small", "B"},
	})
	a := Analyze(d)
	if len(a.Hubs) != 2 {
		t.Fatalf("Hubs = %+v, want 2", a.Hubs)
	}
	if a.Hubs[0].Entity != "Big" || a.Hubs[1].Entity != "Small" {
		t.Errorf("hub order = [%s %s], want [Big Small]", a.Hubs[0].Entity, a.Hubs[1].Entity)
	}
}

func TestAnalyzeDeduplicatesParallelEdges(t *testing.T) {
	d := buildDiagram(nil, [][2]string{{"A", "B"}, {"B", "A"}, {"A", "B"}})
	a := Analyze(d)
	if a.Degree["A"] != 1 || a.Degree["B"] != 1 {
		t.Errorf("degrees = %v, parallel relationships must count once", a.Degree)
	}
}

func TestAnalyzeDeterminism(t *testing.T) {
	d := buildDiagram([]string{"Z"}, [][2]string{
		{"A", "B"}, {"B", "C"}, {"C", "A"}, {"C", "D"}, {"D", "E"},
	})
	a1, a2 := Analyze(d), Analyze(d)
	if !reflect.DeepEqual(a1, a2) {
		t.Error("repeated analysis of the same diagram differs")
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range []string{"grid-fallback", "custom-radial", "elk-layered", "adaptive-force", "sequential-chain"} {
		if _, ok := ParseStrategy(s); !ok {
			t.Errorf("ParseStrategy(%q) rejected", s)
		}
	}
	if _, ok := ParseStrategy("auto"); ok {
		t.Error(`ParseStrategy("auto") accepted; "auto" is not a concrete strategy`)
	}
}
