package layout

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/analyze"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/er"
)

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

// failingLayouter stands in for an external engine that cannot run.
type failingLayouter struct{}

func (failingLayouter) layout(context.Context, string) (map[string]er.Point, error) {
	return nil, errors.New("engine unavailable")
}

// canned replays fixed positions regardless of the DOT input.
type cannedLayouter map[string]er.Point

func (c cannedLayouter) layout(context.Context, string) (map[string]er.Point, error) {
	return c, nil
}

func testEngine(l dotLayouter) *Engine {
	return &Engine{cfg: DefaultConfig(), layered: l}
}

func checkComplete(t *testing.T, pm PositionMap, d *er.Diagram) {
	t.Helper()
	if len(pm) != len(d.Entities) {
		t.Fatalf("got %d positions for %d entities", len(pm), len(d.Entities))
	}
	for _, ent := range d.Entities {
		p, ok := pm[ent.Name]
		if !ok {
			t.Fatalf("entity %q has no position", ent.Name)
		}
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			t.Fatalf("entity %q has non-finite position %+v", ent.Name, p)
		}
	}
}

func TestRadialHubStar(t *testing.T) {
	d := buildDiagram(nil, [][2]string{
		{"Hub", "A"}, {"Hub", "B"}, {"Hub", "C"}, {"Hub", "D"},
	})
	a := analyze.Analyze(d)
	if a.Strategy != analyze.StrategyRadial {
		t.Fatalf("Strategy = %q, want custom-radial", a.Strategy)
	}

	eng := New(DefaultConfig())
	pm := Refine(eng.Layout(context.Background(), d, a), d, eng.Config())
	checkComplete(t, pm, d)

	center := eng.Config().Center()
	if distance(pm["Hub"], center) > 1e-6 {
		t.Errorf("hub at %+v, want canvas center %+v", pm["Hub"], center)
	}

	var radii []float64
	for _, leaf := range []string{"A", "B", "C", "D"} {
		radii = append(radii, distance(pm[leaf], pm["Hub"]))
	}
	for _, r := range radii[1:] {
		if math.Abs(r-radii[0]) > 1.0 {
			t.Errorf("leaf radii not equidistant: %v", radii)
		}
	}
}

func TestGridIsolatedRowMajor(t *testing.T) {
	d := buildDiagram([]string{"A", "B", "C", "D", "E"}, nil)
	a := analyze.Analyze(d)
	if a.Strategy != analyze.StrategyGrid {
		t.Fatalf("Strategy = %q, want grid-fallback", a.Strategy)
	}

	eng := New(DefaultConfig())
	cfg := eng.Config()
	pm := eng.Layout(context.Background(), d, a)
	checkComplete(t, pm, d)

	// Five entities in a 3-wide grid: A B C on the first row, D E on
	// the second, left to right.
	if pm["A"].Y != pm["B"].Y || pm["B"].Y != pm["C"].Y {
		t.Errorf("first row not aligned: A=%+v B=%+v C=%+v", pm["A"], pm["B"], pm["C"])
	}
	if pm["D"].Y != pm["E"].Y || pm["D"].Y <= pm["A"].Y {
		t.Errorf("second row misplaced: D=%+v E=%+v", pm["D"], pm["E"])
	}
	if !(pm["A"].X < pm["B"].X && pm["B"].X < pm["C"].X) {
		t.Errorf("first row not left-to-right: A=%+v B=%+v C=%+v", pm["A"], pm["B"], pm["C"])
	}

	names := d.EntityNames()
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			if dist := distance(pm[names[i]], pm[names[j]]); dist < cfg.GridCellHeight {
				t.Errorf("%s and %s overlap: distance %.1f", names[i], names[j], dist)
			}
		}
	}
}

func TestForceMinSeparationAfterRefine(t *testing.T) {
	// Ring of six plus four isolated: distributed, small enough for the
	// force engine.
	d := buildDiagram([]string{"X1", "X2", "X3", "X4"}, [][2]string{
		{"R1", "R2"}, {"R2", "R3"}, {"R3", "R4"},
		{"R4", "R5"}, {"R5", "R6"}, {"R6", "R1"},
	})
	a := analyze.Analyze(d)
	if a.Strategy != analyze.StrategyForce {
		t.Fatalf("Strategy = %q, want adaptive-force", a.Strategy)
	}

	eng := New(DefaultConfig())
	cfg := eng.Config()
	pm := Refine(eng.Layout(context.Background(), d, a), d, cfg)
	checkComplete(t, pm, d)

	// The collision sweep enforces the minimum; the overlap and bounds
	// passes that follow may nudge entities by at most the line buffer.
	floor := cfg.MinSeparation - cfg.LineBuffer
	names := d.EntityNames()
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			dist := distance(pm[names[i]], pm[names[j]])
			if dist < floor {
				t.Errorf("%s-%s separation %.2f below %.2f",
					names[i], names[j], dist, floor)
			}
		}
	}
}

func TestForceDeterministic(t *testing.T) {
	d := buildDiagram(nil, [][2]string{
		{"A", "B"}, {"B", "C"}, {"C", "A"}, {"C", "D"}, {"D", "E"},
	})
	a := analyze.Analyze(d)
	cfg := DefaultConfig()

	first := forceLayout(d, a, cfg)
	second := forceLayout(d, a, cfg)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated force layouts differ")
	}
}

func TestChainLayoutRow(t *testing.T) {
	d := buildDiagram(nil, [][2]string{
		{"A", "B"}, {"B", "C"}, {"C", "D"}, {"D", "E"},
	})
	a := analyze.Analyze(d)

	eng := New(DefaultConfig())
	pm := eng.LayoutStrategy(context.Background(), d, a, analyze.StrategyChain)
	checkComplete(t, pm, d)

	order := []string{"A", "B", "C", "D", "E"}
	for i := 1; i < len(order); i++ {
		if pm[order[i]].X <= pm[order[i-1]].X {
			t.Errorf("chain not left-to-right at %s: %+v then %+v",
				order[i], pm[order[i-1]], pm[order[i]])
		}
		if pm[order[i]].Y != pm[order[0]].Y {
			t.Errorf("chain member %s off the main row: %+v", order[i], pm[order[i]])
		}
	}
}

func TestLayeredFallsBackToGrid(t *testing.T) {
	d := buildDiagram(nil, [][2]string{
		{"A", "B"}, {"B", "C"}, {"C", "D"}, {"D", "E"},
	})
	a := analyze.Analyze(d)
	if a.Strategy != analyze.StrategyLayered {
		t.Fatalf("Strategy = %q, want elk-layered", a.Strategy)
	}

	eng := testEngine(failingLayouter{})
	pm := eng.Layout(context.Background(), d, a)
	checkComplete(t, pm, d)

	want := gridLayout(d, a, eng.Config())
	if !reflect.DeepEqual(pm, want) {
		t.Error("failed layered engine should produce the grid layout")
	}
}

func TestLayeredUsesEnginePositions(t *testing.T) {
	d := buildDiagram(nil, [][2]string{
		{"A", "B"}, {"B", "C"}, {"C", "D"},
	})
	a := analyze.Analyze(d)

	eng := testEngine(cannedLayouter{
		"A": {X: 0, Y: 300},
		"B": {X: 200, Y: 200},
		"C": {X: 400, Y: 100},
		"D": {X: 600, Y: 0},
	})
	pm := eng.LayoutStrategy(context.Background(), d, a, analyze.StrategyLayered)
	checkComplete(t, pm, d)

	margin := eng.Config().Margin
	// Y flips: the engine's topmost node (A) lands at the canvas top.
	if got := pm["A"]; got != (er.Point{X: 0 + margin, Y: 0 + margin}) {
		t.Errorf("A = %+v, want flipped origin", got)
	}
	if got := pm["D"]; got != (er.Point{X: 600 + margin, Y: 300 + margin}) {
		t.Errorf("D = %+v, want flipped bottom", got)
	}
}

func TestLayeredIncompleteOutputFallsBack(t *testing.T) {
	d := buildDiagram(nil, [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}})
	a := analyze.Analyze(d)

	eng := testEngine(cannedLayouter{"A": {X: 10, Y: 10}})
	pm := eng.LayoutStrategy(context.Background(), d, a, analyze.StrategyLayered)
	checkComplete(t, pm, d)

	want := gridLayout(d, a, eng.Config())
	if !reflect.DeepEqual(pm, want) {
		t.Error("partial engine output should produce the grid layout")
	}
}

func TestCompletePositionsCoverEveryEntity(t *testing.T) {
	for _, strategy := range []analyze.Strategy{
		analyze.StrategyGrid,
		analyze.StrategyRadial,
		analyze.StrategyChain,
		analyze.StrategyForce,
	} {
		t.Run(string(strategy), func(t *testing.T) {
			d := buildDiagram([]string{"Lone1", "Lone2"}, [][2]string{
				{"Hub", "A"}, {"Hub", "B"}, {"Hub", "C"},
				{"P", "Q"}, {"Q", "R"}, {"R", "S"},
			})
			a := analyze.Analyze(d)
			eng := New(DefaultConfig())
			pm := eng.LayoutStrategy(context.Background(), d, a, strategy)
			checkComplete(t, pm, d)
		})
	}
}

func TestLayoutDeterministicAcrossRuns(t *testing.T) {
	d := buildDiagram([]string{"Solo"}, [][2]string{
		{"Hub", "A"}, {"Hub", "B"}, {"Hub", "C"}, {"A", "B"},
	})
	a := analyze.Analyze(d)
	eng := New(DefaultConfig())

	first := Refine(eng.Layout(context.Background(), d, a), d, eng.Config())
	second := Refine(eng.Layout(context.Background(), d, a), d, eng.Config())
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated layout runs differ")
	}
}

func TestRefineCollision(t *testing.T) {
	d := buildDiagram([]string{"A", "B"}, nil)
	cfg := DefaultConfig()
	pm := PositionMap{
		"A": {X: 400, Y: 300},
		"B": {X: 410, Y: 300},
	}
	Refine(pm, d, cfg)
	if dist := distance(pm["A"], pm["B"]); dist < cfg.MinSeparation-1e-6 {
		t.Errorf("separation %.2f after refine, want >= %.2f", dist, cfg.MinSeparation)
	}
	// Symmetric push keeps the midpoint.
	mid := midpoint(pm["A"], pm["B"])
	if math.Abs(mid.X-405) > 1e-6 || math.Abs(mid.Y-300) > 1e-6 {
		t.Errorf("midpoint drifted to %+v", mid)
	}
}

func TestRefineProximityPull(t *testing.T) {
	d := buildDiagram(nil, [][2]string{{"A", "B"}})
	cfg := DefaultConfig()
	pm := PositionMap{
		"A": {X: 100, Y: 300},
		"B": {X: 700, Y: 300},
	}
	before := distance(pm["A"], pm["B"])
	tightenProximity(pm, d, cfg)
	after := distance(pm["A"], pm["B"])

	want := before * (1 - cfg.ProximityPull)
	if math.Abs(after-want) > 1e-6 {
		t.Errorf("distance after pull = %.2f, want %.2f", after, want)
	}
}

func TestRefineLineOverlap(t *testing.T) {
	d := buildDiagram([]string{"Mid"}, [][2]string{{"A", "B"}})
	cfg := DefaultConfig()
	pm := PositionMap{
		"A":   {X: 100, Y: 300},
		"B":   {X: 700, Y: 300},
		"Mid": {X: 400, Y: 310},
	}
	clearLineOverlaps(pm, d, cfg)
	dist, _ := pointSegment(pm["Mid"], pm["A"], pm["B"])
	if dist < cfg.LineBuffer-1e-6 {
		t.Errorf("entity still %.2f from line, want >= %.2f", dist, cfg.LineBuffer)
	}
	if pm["Mid"].Y <= 310 {
		t.Errorf("expected displacement away from the line, got %+v", pm["Mid"])
	}
}

func TestRefineBoundsClamp(t *testing.T) {
	d := buildDiagram([]string{"A"}, nil)
	cfg := DefaultConfig()
	pm := PositionMap{"A": {X: -50, Y: 5}}
	Refine(pm, d, cfg)
	if pm["A"].X < cfg.Margin || pm["A"].Y < cfg.Margin {
		t.Errorf("position %+v outside margin %.0f", pm["A"], cfg.Margin)
	}
}

func TestParseDotPositions(t *testing.T) {
	out := `digraph ER {
	graph [bb="0,0,622,150"];
	node [label="\N", shape=box];
	A	[height=1.11, pos="75,111", width=2.08];
	B	[height=1.11, pos="275,111", width=2.08];
	"Order Item"	[height=1.11, pos="475,39", width=2.08];
	A -> B	[pos="e,200,111 150,111 163,111 177,111 190,111"];
}`
	got, err := parseDotPositions(out)
	if err != nil {
		t.Fatalf("parseDotPositions: %v", err)
	}
	want := map[string]er.Point{
		"A":          {X: 75, Y: 111},
		"B":          {X: 275, Y: 111},
		"Order Item": {X: 475, Y: 39},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("positions = %v, want %v", got, want)
	}
}

func TestParseDotPositionsEmpty(t *testing.T) {
	if _, err := parseDotPositions("digraph {}"); err == nil {
		t.Error("expected error for output without positions")
	}
}

func TestBuildLayeredDOT(t *testing.T) {
	d := buildDiagram(nil, [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}})
	a := analyze.Analyze(d)
	dot := buildLayeredDOT(d, a, DefaultConfig())

	if a.Pattern != analyze.PatternLinear {
		t.Fatalf("Pattern = %q, want linear", a.Pattern)
	}
	for _, want := range []string{"rankdir=LR", `"A";`, `"A" -> "B";`} {
		if !strings.Contains(dot, want) {
			t.Errorf("dot output missing %q:\n%s", want, dot)
		}
	}
}
