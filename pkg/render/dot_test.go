package render

import (
	"strings"
	"testing"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/canvas"
)

func sampleDocument() *canvas.Document {
	return &canvas.Document{
		Title:  "Shop",
		Width:  800,
		Height: 600,
		Entities: []canvas.Entity{
			{
				Name: "Customer", X: 200, Y: 300, Width: 150, Height: 80,
				Attributes: []canvas.Attribute{
					{Name: "id", Type: "int", PrimaryKey: true},
					{Name: "email", Type: "string", Required: true},
				},
			},
			{Name: "Order", X: 560, Y: 300, Width: 150, Height: 80},
		},
		Relationships: []canvas.Relationship{
			{
				From: "Customer", To: "Order",
				Symbol:     "||--o{",
				SourceMult: "1", TargetMult: "0..*",
				Identifying: true,
				Label:       "places",
			},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleDocument())

	for _, want := range []string{
		"graph ER {",
		"layout=neato;",
		`label="Shop";`,
		`pos="200.00,300.00!"`,
		`pos="560.00,300.00!"`,
		"arrowtail=teetee",
		"arrowhead=crowodot",
		`label="places"`,
		`"Customer" -- "Order"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTRecordLabels(t *testing.T) {
	dot := ToDOT(sampleDocument())
	if !strings.Contains(dot, `{Customer|id int PK\l`) {
		t.Errorf("DOT missing record label rows:\n%s", dot)
	}
	if !strings.Contains(dot, `email string NN\l`) {
		t.Errorf("DOT missing second attribute row:\n%s", dot)
	}
}

func TestToDOTNonIdentifyingDashed(t *testing.T) {
	doc := sampleDocument()
	doc.Relationships[0].Identifying = false
	if !strings.Contains(ToDOT(doc), "style=dashed") {
		t.Error("non-identifying relationship should render dashed")
	}
}

func TestArrowShapeFallback(t *testing.T) {
	tests := []struct {
		mult string
		want string
	}{
		{"1", "teetee"},
		{"0..1", "teeodot"},
		{"1..*", "crowtee"},
		{"0..*", "crowodot"},
		{"garbage", "none"},
	}
	for _, tt := range tests {
		if got := arrowShape(tt.mult); got != tt.want {
			t.Errorf("arrowShape(%q) = %q, want %q", tt.mult, got, tt.want)
		}
	}
}

func TestEscapeRecord(t *testing.T) {
	got := escapeRecord("a|b{c}")
	if got != `a\|b\{c\}` {
		t.Errorf("escapeRecord = %q", got)
	}
}
