package parse

import (
	"reflect"
	"strings"
	"testing"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/er"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/errors"
)

func TestParseTitleAndRelationship(t *testing.T) {
	d, err := Parse("title: \"T\"\nA ||--o{ B : owns")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if d.Title != "T" {
		t.Errorf("Title = %q, want %q", d.Title, "T")
	}
	if got := d.EntityNames(); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("entities = %v, want [A B]", got)
	}
	for _, e := range d.Entities {
		if len(e.Attributes) != 0 {
			t.Errorf("entity %q has attributes %v, want none", e.Name, e.Attributes)
		}
	}
	if len(d.Relationships) != 1 {
		t.Fatalf("relationships = %d, want 1", len(d.Relationships))
	}
	r := d.Relationships[0]
	if r.From != "A" || r.To != "B" {
		t.Errorf("endpoints = %s→%s, want A→B", r.From, r.To)
	}
	if r.Cardinality.Symbol != "||--o{" {
		t.Errorf("cardinality = %q, want ||--o{", r.Cardinality.Symbol)
	}
	if r.Label != "owns" {
		t.Errorf("label = %q, want owns", r.Label)
	}
	if !r.Cardinality.Identifying {
		t.Error("Identifying = false, want true (solid line)")
	}
}

func TestParseUnrecognizedCardinality(t *testing.T) {
	_, err := Parse("title: x\nA XX--XX B")
	if err == nil {
		t.Fatal("Parse should fail on unrecognized cardinality")
	}
	se, ok := errors.AsSyntax(err)
	if !ok {
		t.Fatalf("error should be a SyntaxError, got %T: %v", err, err)
	}
	if se.Line != 2 {
		t.Errorf("Line = %d, want 2", se.Line)
	}
	if !strings.Contains(se.Message, "XX--XX") {
		t.Errorf("message %q should name the offending token", se.Message)
	}
}

func TestParseShapedButInvalidCardinality(t *testing.T) {
	_, err := Parse("A ||--|o B")
	se, ok := errors.AsSyntax(err)
	if !ok {
		t.Fatalf("want SyntaxError, got %v", err)
	}
	if se.Line != 1 {
		t.Errorf("Line = %d, want 1", se.Line)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t\n"} {
		_, err := Parse(text)
		if !errors.Is(err, errors.ErrCodeEmptyInput) {
			t.Errorf("Parse(%q) error = %v, want EMPTY_INPUT", text, err)
		}
	}
}

func TestParseAttributeBlock(t *testing.T) {
	src := `title: Shop
Customer {
  id int PK
  name string NN
  nickname
  address string CMP
}
Customer ||--o{ Order : places`

	d, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	c := d.Entity("Customer")
	if c == nil {
		t.Fatal("entity Customer missing")
	}
	want := []er.Attribute{
		{Name: "id", Type: "int", PrimaryKey: true},
		{Name: "name", Type: "string", Required: true},
		{Name: "nickname"},
		{Name: "address", Type: "string", Composite: true},
	}
	if !reflect.DeepEqual(c.Attributes, want) {
		t.Errorf("attributes = %+v, want %+v", c.Attributes, want)
	}
	if d.Entity("Order") == nil {
		t.Error("entity Order should be synthesized from the relationship")
	}
}

func TestParseSnakeCaseNames(t *testing.T) {
	src := `Order {
  placed_at timestamp NN
  unit_price decimal
}
Order ||--o{ line_item : ships_to`

	d, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	o := d.Entity("Order")
	if o == nil {
		t.Fatal("entity Order missing")
	}
	want := []er.Attribute{
		{Name: "placed_at", Type: "timestamp", Required: true},
		{Name: "unit_price", Type: "decimal"},
	}
	if !reflect.DeepEqual(o.Attributes, want) {
		t.Errorf("attributes = %+v, want %+v", o.Attributes, want)
	}
	if d.Entity("line_item") == nil {
		t.Error("entity line_item should be synthesized from the relationship")
	}
	if got := d.Relationships[0].Label; got != "ships_to" {
		t.Errorf("label = %q, want ships_to", got)
	}
}

func TestParseBlockErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine int
	}{
		{"Unclosed", "Customer {\n  id int PK", 1},
		{"Unmatched", "}\n", 1},
		{"UnknownFlag", "A {\n  id int PK XYZ9\n}", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			se, ok := errors.AsSyntax(err)
			if !ok {
				t.Fatalf("want SyntaxError, got %v", err)
			}
			if se.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", se.Line, tt.wantLine)
			}
		})
	}
}

func TestParseNoRecognizedKey(t *testing.T) {
	_, err := Parse("foo: bar\nbaz: qux")
	se, ok := errors.AsSyntax(err)
	if !ok {
		t.Fatalf("want SyntaxError, got %v", err)
	}
	if se.Line != 1 {
		t.Errorf("Line = %d, want 1", se.Line)
	}
}

func TestParseStructuredDocument(t *testing.T) {
	src := `title: Shop
entities:
  Customer:
    id: int PK
    name: string NN
  Order:
relationships:
  - Customer ||--o{ Order : places
  - Order }o--|| Product
`
	d, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if d.Title != "Shop" {
		t.Errorf("Title = %q, want Shop", d.Title)
	}
	// Declared entities come first in declaration order; Product is
	// synthesized afterwards.
	if got := d.EntityNames(); !reflect.DeepEqual(got, []string{"Customer", "Order", "Product"}) {
		t.Errorf("entities = %v", got)
	}
	c := d.Entity("Customer")
	if len(c.Attributes) != 2 || !c.Attributes[0].PrimaryKey || !c.Attributes[1].Required {
		t.Errorf("Customer attributes = %+v", c.Attributes)
	}
	if len(d.Relationships) != 2 {
		t.Fatalf("relationships = %d, want 2", len(d.Relationships))
	}
	if d.Relationships[1].Cardinality.Symbol != "}o--||" {
		t.Errorf("second cardinality = %q", d.Relationships[1].Cardinality.Symbol)
	}
}

func TestParseStructuredBadRelationship(t *testing.T) {
	src := `entities:
  A:
relationships:
  - A ZZ--ZZ B
`
	_, err := Parse(src)
	se, ok := errors.AsSyntax(err)
	if !ok {
		t.Fatalf("want SyntaxError, got %v", err)
	}
	if se.Line != 4 {
		t.Errorf("Line = %d, want 4 (the offending sequence entry)", se.Line)
	}
}

func TestParseDeterminism(t *testing.T) {
	src := "title: D\nA ||--|| B\nC }o--o{ A : links\nC {\n x int\n}"
	d1, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	d2, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(d1.EntityNames(), d2.EntityNames()) {
		t.Error("entity order differs between identical parses")
	}
	if !reflect.DeepEqual(d1.Relationships, d2.Relationships) {
		t.Error("relationships differ between identical parses")
	}
}

func TestParseHeaderAndComments(t *testing.T) {
	src := "erDiagram\n# a comment\nA ||--|| B\n"
	d, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.Entity("erDiagram") != nil {
		t.Error("erDiagram header must not become an entity")
	}
	if len(d.Entities) != 2 || len(d.Relationships) != 1 {
		t.Errorf("got %d entities, %d relationships", len(d.Entities), len(d.Relationships))
	}
}

func TestParseEmptyButValidDiagram(t *testing.T) {
	d, err := Parse("title: Nothing Here")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(d.Entities) != 0 || len(d.Relationships) != 0 {
		t.Errorf("want an empty diagram, got %d entities, %d relationships",
			len(d.Entities), len(d.Relationships))
	}
}
