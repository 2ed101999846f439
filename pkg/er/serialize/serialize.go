// Package serialize renders a diagram model back into its text
// definition. Output is deterministic: titles first, then entity
// attribute blocks in definition order, then relationship lines.
// Re-parsing the output reconstructs an equivalent model.
package serialize

import (
	"fmt"
	"strings"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/er"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/errors"
)

// Serialize renders d as diagram text. A diagram with neither entities
// nor relationships has nothing to express and fails with a
// serialization error.
func Serialize(d *er.Diagram) (string, error) {
	if d == nil || (len(d.Entities) == 0 && len(d.Relationships) == 0) {
		return "", errors.New(errors.ErrCodeSerialization, "diagram has no entities or relationships")
	}

	var b strings.Builder
	if d.Title != "" {
		fmt.Fprintf(&b, "title: %q\n", d.Title)
		b.WriteString("\n")
	}

	wroteBlock := false
	for _, ent := range d.Entities {
		if len(ent.Attributes) == 0 {
			continue
		}
		writeEntityBlock(&b, ent)
		wroteBlock = true
	}
	if wroteBlock && len(d.Relationships) > 0 {
		b.WriteString("\n")
	}

	related := make(map[string]bool, len(d.Entities))
	for _, rel := range d.Relationships {
		related[rel.From] = true
		related[rel.To] = true
		b.WriteString(relationshipLine(rel))
		b.WriteString("\n")
	}

	// Bare entities: no attributes, no relationships. Declared by name
	// so they survive the round trip.
	for _, ent := range d.Entities {
		if len(ent.Attributes) == 0 && !related[ent.Name] {
			b.WriteString(ent.Name)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

func writeEntityBlock(b *strings.Builder, ent *er.Entity) {
	fmt.Fprintf(b, "%s {\n", ent.Name)
	for _, attr := range ent.Attributes {
		b.WriteString("  ")
		b.WriteString(attr.Name)
		if attr.Type != "" {
			b.WriteString(" ")
			b.WriteString(attr.Type)
		}
		for _, flag := range attributeFlags(attr) {
			b.WriteString(" ")
			b.WriteString(flag)
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")
}

func attributeFlags(attr er.Attribute) []string {
	var flags []string
	if attr.PrimaryKey {
		flags = append(flags, "PK")
	}
	if attr.Required {
		flags = append(flags, "NN")
	}
	if attr.Multivalued {
		flags = append(flags, "MV")
	}
	if attr.Derived {
		flags = append(flags, "DRV")
	}
	if attr.Composite {
		flags = append(flags, "CMP")
	}
	return flags
}

// relationshipLine renders one relationship. The symbol is rebuilt
// from the endpoint multiplicities rather than echoed, so models
// assembled programmatically with only multiplicities serialize too.
func relationshipLine(rel er.Relationship) string {
	symbol := rel.Cardinality.Symbol
	if _, ok := er.LookupCardinality(symbol); !ok {
		symbol = er.SymbolFor(rel.Cardinality.Source, rel.Cardinality.Target)
	}
	line := fmt.Sprintf("%s %s %s", rel.From, symbol, rel.To)
	if rel.Label != "" {
		line += " : " + rel.Label
	}
	return line
}
