package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/canvas"
)

// Crow's-foot arrow shapes, first modifier closest to the node.
var arrowShapes = map[string]string{
	"1":    "teetee",
	"0..1": "teeodot",
	"1..*": "crowtee",
	"0..*": "crowodot",
}

// ToDOT converts a positioned document to Graphviz DOT. Node positions
// are pinned so the neato engine reproduces the computed layout instead
// of recomputing one; coordinates flip vertically because the document
// origin is top-left and Graphviz grows Y upward.
func ToDOT(doc *canvas.Document) string {
	var buf bytes.Buffer
	buf.WriteString("graph ER {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=record, style=filled, fillcolor=white, fontsize=12];\n")
	if doc.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", doc.Title)
		buf.WriteString("  labelloc=t;\n")
	}
	buf.WriteString("\n")

	for _, ent := range doc.Entities {
		// The record label is emitted raw: it already carries DOT
		// escapes that %q would double.
		fmt.Fprintf(&buf, "  %q [label=\"%s\", pos=\"%.2f,%.2f!\"];\n",
			ent.Name, recordLabel(ent), ent.X, doc.Height-ent.Y)
	}

	buf.WriteString("\n")
	for _, rel := range doc.Relationships {
		attrs := []string{
			"dir=both",
			fmt.Sprintf("arrowtail=%s", arrowShape(rel.SourceMult)),
			fmt.Sprintf("arrowhead=%s", arrowShape(rel.TargetMult)),
		}
		if rel.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", rel.Label))
		}
		if !rel.Identifying {
			attrs = append(attrs, "style=dashed")
		}
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", rel.From, rel.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func arrowShape(mult string) string {
	if shape, ok := arrowShapes[mult]; ok {
		return shape
	}
	return "none"
}

// recordLabel formats an entity as a record: name header, one row per
// attribute with its type hint and flag annotations.
func recordLabel(ent canvas.Entity) string {
	if len(ent.Attributes) == 0 {
		return ent.Name
	}
	rows := make([]string, 0, len(ent.Attributes))
	for _, attr := range ent.Attributes {
		row := attr.Name
		if attr.Type != "" {
			row += " " + attr.Type
		}
		if marks := attrMarks(attr); marks != "" {
			row += " " + marks
		}
		rows = append(rows, escapeRecord(row)+"\\l")
	}
	return "{" + escapeRecord(ent.Name) + "|" + strings.Join(rows, "") + "}"
}

func attrMarks(attr canvas.Attribute) string {
	var marks []string
	if attr.PrimaryKey {
		marks = append(marks, "PK")
	}
	if attr.Required {
		marks = append(marks, "NN")
	}
	if attr.Multivalued {
		marks = append(marks, "MV")
	}
	if attr.Derived {
		marks = append(marks, "DRV")
	}
	if attr.Composite {
		marks = append(marks, "CMP")
	}
	return strings.Join(marks, " ")
}

// escapeRecord protects record-syntax metacharacters in labels.
func escapeRecord(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		"\"", "\\\"",
		"{", "\\{",
		"}", "\\}",
		"|", "\\|",
		"<", "\\<",
		">", "\\>",
	)
	return r.Replace(s)
}
