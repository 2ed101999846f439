package canvas

import (
	"github.com/drlldiego/diagrammer-web-sub004/pkg/er"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/errors"
)

// =============================================================================
// Document - Positioned Diagram Serialization
// =============================================================================

// Document is the canonical serialization format for positioned diagrams.
// Entities appear in definition order with absolute center coordinates;
// relationships reference entities by name.
type Document struct {
	Title         string         `json:"title,omitempty"`
	Width         float64        `json:"width"`
	Height        float64        `json:"height"`
	Entities      []Entity       `json:"entities"`
	Relationships []Relationship `json:"relationships"`
}

// Entity is a positioned entity box.
type Entity struct {
	Name       string      `json:"name"`
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

// Attribute mirrors one attribute row inside an entity box.
type Attribute struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	PrimaryKey  bool   `json:"primary_key,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Multivalued bool   `json:"multivalued,omitempty"`
	Derived     bool   `json:"derived,omitempty"`
	Composite   bool   `json:"composite,omitempty"`
}

// Relationship is a connection between two entities. Symbol is the
// compact cardinality notation; the per-endpoint multiplicity strings
// ("1", "0..1", "1..*", "0..*") are carried alongside it so consumers
// never need the symbol table.
type Relationship struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Symbol      string `json:"symbol"`
	SourceMult  string `json:"source_multiplicity"`
	TargetMult  string `json:"target_multiplicity"`
	Identifying bool   `json:"identifying"`
	Label       string `json:"label,omitempty"`
}

// =============================================================================
// Model ↔ Document Conversion
// =============================================================================

// FromDiagram builds a document from a diagram and its computed
// positions. Entities missing from the position map keep a zero
// position; callers using the layout engine never hit that case.
func FromDiagram(d *er.Diagram, positions map[string]er.Point, width, height float64) *Document {
	doc := &Document{
		Title:         d.Title,
		Width:         width,
		Height:        height,
		Entities:      make([]Entity, len(d.Entities)),
		Relationships: make([]Relationship, len(d.Relationships)),
	}
	for i, ent := range d.Entities {
		e := Entity{
			Name:   ent.Name,
			Width:  ent.Width,
			Height: ent.Height,
		}
		if e.Width == 0 {
			e.Width = er.DefaultEntityWidth
		}
		if e.Height == 0 {
			e.Height = er.DefaultEntityHeight
		}
		if p, ok := positions[ent.Name]; ok {
			e.X, e.Y = p.X, p.Y
		}
		for _, attr := range ent.Attributes {
			e.Attributes = append(e.Attributes, Attribute{
				Name:        attr.Name,
				Type:        attr.Type,
				PrimaryKey:  attr.PrimaryKey,
				Required:    attr.Required,
				Multivalued: attr.Multivalued,
				Derived:     attr.Derived,
				Composite:   attr.Composite,
			})
		}
		doc.Entities[i] = e
	}
	for i, rel := range d.Relationships {
		doc.Relationships[i] = Relationship{
			From:        rel.From,
			To:          rel.To,
			Symbol:      rel.Cardinality.Symbol,
			SourceMult:  rel.Cardinality.Source.String(),
			TargetMult:  rel.Cardinality.Target.String(),
			Identifying: rel.Cardinality.Identifying,
			Label:       rel.Label,
		}
	}
	return doc
}

// ToDiagram rebuilds the diagram model and position map from a
// document. The symbol is authoritative when recognized; otherwise the
// multiplicity strings are normalized, so hand-edited documents that
// carry only multiplicities still import.
func (doc *Document) ToDiagram() (*er.Diagram, map[string]er.Point, error) {
	d := er.NewDiagram()
	d.Title = doc.Title
	positions := make(map[string]er.Point, len(doc.Entities))

	for _, e := range doc.Entities {
		if e.Name == "" {
			return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "document entity with empty name")
		}
		ent := d.EnsureEntity(e.Name)
		ent.Width, ent.Height = e.Width, e.Height
		for _, attr := range e.Attributes {
			ent.Attributes = append(ent.Attributes, er.Attribute{
				Name:        attr.Name,
				Type:        attr.Type,
				PrimaryKey:  attr.PrimaryKey,
				Required:    attr.Required,
				Multivalued: attr.Multivalued,
				Derived:     attr.Derived,
				Composite:   attr.Composite,
			})
		}
		positions[e.Name] = er.Point{X: e.X, Y: e.Y}
	}

	for _, rel := range doc.Relationships {
		if rel.From == "" || rel.To == "" {
			return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "document relationship with missing endpoint")
		}
		card, ok := er.LookupCardinality(rel.Symbol)
		if !ok {
			card = er.CardinalityFor(
				er.NormalizeMultiplicity(rel.SourceMult),
				er.NormalizeMultiplicity(rel.TargetMult),
			)
		}
		d.AddRelationship(er.Relationship{
			From:        rel.From,
			To:          rel.To,
			Cardinality: card,
			Label:       rel.Label,
		})
	}
	return d, positions, nil
}
