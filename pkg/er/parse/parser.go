package parse

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/er"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/errors"
)

// Parse compiles declarative source text into an unpositioned diagram.
//
// Structured YAML documents (carrying an "entities" or "relationships" key)
// are decoded first; everything else goes through the plain line syntax.
// Parse is pure: it has no side effects and identical input always yields
// an identical diagram.
func Parse(text string) (*er.Diagram, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New(errors.ErrCodeEmptyInput, "empty diagram source")
	}

	if doc, ok := structuredDocument(text); ok {
		return parseStructured(doc)
	}
	return parseLines(text)
}

// =============================================================================
// Plain Line Syntax
// =============================================================================

func parseLines(text string) (*er.Diagram, error) {
	d := er.NewDiagram()

	var (
		blockEntity    *er.Entity // non-nil inside an attribute block
		blockOpenLine  int
		firstDirective *statement // first unknown "key: value" line
		sawContent     bool
	)

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		st, err := classifyLine(scanLine(line), lineNo, blockEntity != nil)
		if err != nil {
			return nil, err
		}

		switch st.kind {
		case lineBlank, lineHeader:
			// nothing to do

		case lineTitle:
			d.Title = st.value
			sawContent = true

		case lineDirective:
			if firstDirective == nil {
				s := st
				firstDirective = &s
			}

		case lineEntityDecl:
			d.EnsureEntity(st.name)
			sawContent = true

		case lineEntityOpen:
			blockEntity = d.EnsureEntity(st.name)
			blockOpenLine = st.line
			sawContent = true

		case lineBlockClose:
			if blockEntity == nil {
				return nil, errors.Syntax(st.line, "unmatched '}'")
			}
			blockEntity = nil

		case lineAttribute:
			blockEntity.Attributes = append(blockEntity.Attributes, st.attr)

		case lineRelationship:
			d.AddRelationship(st.rel)
			sawContent = true
		}
	}

	if blockEntity != nil {
		return nil, errors.Syntax(blockOpenLine, "unclosed attribute block for entity %q", blockEntity.Name)
	}

	// A document made only of unrecognized key-value lines has no usable
	// top-level key; surface the first offender.
	if !sawContent && firstDirective != nil {
		return nil, errors.Syntax(firstDirective.line, "no recognized top-level key (found %q)", firstDirective.key)
	}

	return d, nil
}

// =============================================================================
// Structured YAML Form
// =============================================================================

// structuredDocument reports whether text is a YAML mapping with an explicit
// "entities" or "relationships" key, returning the mapping node.
//
// Plain line syntax often happens to be valid YAML too ("A ||--o{ B : owns"
// parses as a key-value pair), so the decision is made on the recognized
// keys, never on whether the YAML decoder succeeds.
func structuredDocument(text string) (*yaml.Node, bool) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, false
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, false
	}
	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, false
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		switch m.Content[i].Value {
		case "entities", "relationships":
			return m, true
		}
	}
	return nil, false
}

func parseStructured(m *yaml.Node) (*er.Diagram, error) {
	d := er.NewDiagram()

	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], m.Content[i+1]
		switch key.Value {
		case "title":
			d.Title = val.Value
		case "entities":
			if err := parseEntitiesNode(d, val); err != nil {
				return nil, err
			}
		case "relationships":
			if err := parseRelationshipsNode(d, val); err != nil {
				return nil, err
			}
		default:
			// Unknown keys are tolerated: the document already carries a
			// recognized key or we would not be in the structured path.
		}
	}

	return d, nil
}

// parseEntitiesNode decodes the "entities" mapping: name → attribute map.
// A null value declares an entity with no attributes. Mapping order is
// preserved, so entity order is deterministic.
func parseEntitiesNode(d *er.Diagram, node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return errors.Syntax(node.Line, "entities must be a mapping of name to attributes")
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		nameNode, attrsNode := node.Content[i], node.Content[i+1]
		e := d.EnsureEntity(nameNode.Value)

		if attrsNode.Kind == yaml.ScalarNode && attrsNode.Tag == "!!null" {
			continue
		}
		if attrsNode.Kind != yaml.MappingNode {
			return errors.Syntax(attrsNode.Line, "attributes of %q must be a mapping", nameNode.Value)
		}
		for j := 0; j+1 < len(attrsNode.Content); j += 2 {
			attrName, spec := attrsNode.Content[j], attrsNode.Content[j+1]
			if spec.Kind != yaml.ScalarNode {
				return errors.Syntax(spec.Line, "attribute %q must be a scalar type spec", attrName.Value)
			}
			attr, err := attributeFromTokens(attrName.Value, scanLine(spec.Value), spec.Line)
			if err != nil {
				return err
			}
			e.Attributes = append(e.Attributes, attr)
		}
	}
	return nil
}

// parseRelationshipsNode decodes the "relationships" sequence. Each element
// is one relationship line in the same line syntax; YAML node positions give
// the 1-based source line for syntax errors.
func parseRelationshipsNode(d *er.Diagram, node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		return errors.Syntax(node.Line, "relationships must be a sequence of relationship lines")
	}

	for _, item := range node.Content {
		line, err := relationshipLine(item)
		if err != nil {
			return err
		}
		st, err := classifyRelationship(scanLine(line), item.Line)
		if err != nil {
			return err
		}
		d.AddRelationship(st.rel)
	}
	return nil
}

// relationshipLine recovers the raw relationship line from a YAML node.
// An unquoted "A ||--o{ B : label" entry is parsed by YAML as a one-pair
// mapping (the " : " reads as a key-value separator), so both shapes are
// accepted and normalized back to a single line.
func relationshipLine(item *yaml.Node) (string, error) {
	switch item.Kind {
	case yaml.ScalarNode:
		return item.Value, nil
	case yaml.MappingNode:
		if len(item.Content) == 2 &&
			item.Content[0].Kind == yaml.ScalarNode &&
			item.Content[1].Kind == yaml.ScalarNode {
			if item.Content[1].Tag == "!!null" {
				return item.Content[0].Value, nil
			}
			return item.Content[0].Value + " : " + item.Content[1].Value, nil
		}
	}
	return "", errors.Syntax(item.Line, "relationship entries must be strings")
}
