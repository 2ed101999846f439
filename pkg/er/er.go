package er

// Nominal entity box dimensions in canvas units. Layout treats entity size
// as a constant - strategies position centers and never negotiate sizes.
const (
	DefaultEntityWidth  = 150.0
	DefaultEntityHeight = 80.0
)

// Point is a 2D coordinate in abstract canvas units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Attribute is a single attribute of an entity. The boolean flags mirror the
// classic ER decorations (key, participation, structure).
type Attribute struct {
	Name        string
	Type        string // data-type hint, free-form ("int", "string", ...)
	PrimaryKey  bool
	Required    bool
	Multivalued bool
	Derived     bool
	Composite   bool
}

// Entity is a named node in the diagram. Names are case-sensitive and unique
// within a diagram; they are the join key across the whole pipeline.
// Attributes are optional decoration and play no part in graph topology.
type Entity struct {
	Name       string
	Attributes []Attribute

	// Pos is nil until layout runs.
	Pos *Point

	// Width and Height are fixed nominal dimensions.
	Width  float64
	Height float64
}

// Relationship connects two entities with a typed cardinality and an
// optional label. From and To always resolve to entities in the diagram -
// the parser synthesizes missing endpoints.
type Relationship struct {
	From        string
	To          string
	Cardinality Cardinality
	Label       string
}

// Diagram is the complete in-memory model: an optional title, entities in
// first-seen order, and relationships in declaration order. Insertion order
// is preserved so that serialization is deterministic; it carries no other
// meaning.
type Diagram struct {
	Title         string
	Entities      []*Entity
	Relationships []Relationship

	index map[string]*Entity
}

// NewDiagram creates an empty diagram.
func NewDiagram() *Diagram {
	return &Diagram{index: make(map[string]*Entity)}
}

// Entity returns the entity with the given name, or nil.
func (d *Diagram) Entity(name string) *Entity {
	return d.index[name]
}

// EnsureEntity returns the entity with the given name, creating it with no
// attributes if it does not exist yet. Creation order is discovery order.
func (d *Diagram) EnsureEntity(name string) *Entity {
	if d.index == nil {
		d.index = make(map[string]*Entity)
	}
	if e, ok := d.index[name]; ok {
		return e
	}
	e := &Entity{Name: name, Width: DefaultEntityWidth, Height: DefaultEntityHeight}
	d.Entities = append(d.Entities, e)
	d.index[name] = e
	return e
}

// AddRelationship appends a relationship, synthesizing missing endpoints.
func (d *Diagram) AddRelationship(r Relationship) {
	d.EnsureEntity(r.From)
	d.EnsureEntity(r.To)
	d.Relationships = append(d.Relationships, r)
}

// EntityNames returns entity names in first-seen order.
func (d *Diagram) EntityNames() []string {
	names := make([]string, len(d.Entities))
	for i, e := range d.Entities {
		names[i] = e.Name
	}
	return names
}

// Partners returns the names of entities directly related to name, in
// relationship declaration order, without duplicates.
func (d *Diagram) Partners(name string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range d.Relationships {
		var other string
		switch name {
		case r.From:
			other = r.To
		case r.To:
			other = r.From
		default:
			continue
		}
		if other != name && !seen[other] {
			seen[other] = true
			out = append(out, other)
		}
	}
	return out
}
