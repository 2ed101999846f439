package parse

import (
	"strings"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/er"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/errors"
)

// lineKind is the classified shape of a single source line.
type lineKind int

const (
	lineBlank lineKind = iota
	lineHeader
	lineTitle
	lineDirective
	lineEntityDecl
	lineEntityOpen
	lineBlockClose
	lineAttribute
	lineRelationship
)

// statement is the classified form of one line. Fields are populated
// according to kind: Title for lineTitle/lineDirective (value/key),
// Name for entity and attribute lines, Rel for relationship lines.
type statement struct {
	kind lineKind
	line int // 1-based source line

	key   string // directive key (lineTitle, lineDirective)
	value string // directive value

	name string       // entity name (decl/open) or attribute name
	attr er.Attribute // lineAttribute

	rel er.Relationship // lineRelationship
}

// headerKeyword is tolerated as a bare leading line for compatibility with
// mermaid-style sources; it declares nothing.
const headerKeyword = "erDiagram"

// classifyLine classifies one tokenized line. inBlock selects the attribute
// grammar; outside a block the relationship/declaration grammar applies.
func classifyLine(tokens []Token, lineNo int, inBlock bool) (statement, error) {
	if len(tokens) == 0 {
		return statement{kind: lineBlank, line: lineNo}, nil
	}
	if inBlock {
		return classifyBlockLine(tokens, lineNo)
	}
	return classifyTopLine(tokens, lineNo)
}

func classifyTopLine(tokens []Token, lineNo int) (statement, error) {
	first := tokens[0]

	// Closing brace may appear alone even when block tracking got lost;
	// let the parser report the imbalance with a precise line.
	if first.Kind == TokenRBrace && len(tokens) == 1 {
		return statement{kind: lineBlockClose, line: lineNo}, nil
	}

	if first.Kind != TokenIdent {
		return statement{}, errors.Syntax(lineNo, "unexpected token %q", first.Text)
	}

	// Single identifier: a bare entity declaration (or the tolerated header).
	if len(tokens) == 1 {
		if first.Text == headerKeyword {
			return statement{kind: lineHeader, line: lineNo}, nil
		}
		return statement{kind: lineEntityDecl, line: lineNo, name: first.Text}, nil
	}

	// "key: value" directive.
	if tokens[1].Kind == TokenColon {
		value := joinText(tokens[2:])
		kind := lineDirective
		if first.Text == "title" {
			kind = lineTitle
		}
		return statement{kind: kind, line: lineNo, key: first.Text, value: unquote(value)}, nil
	}

	// "Entity {" opens an attribute block.
	if tokens[1].Kind == TokenLBrace && len(tokens) == 2 {
		return statement{kind: lineEntityOpen, line: lineNo, name: first.Text}, nil
	}

	// Anything of the form <token> <token> <token>... is relationship-shaped.
	return classifyRelationship(tokens, lineNo)
}

// classifyRelationship validates a relationship-shaped line:
// <entity> <cardinality> <entity> [: label]
func classifyRelationship(tokens []Token, lineNo int) (statement, error) {
	if len(tokens) < 3 {
		return statement{}, errors.Syntax(lineNo, "malformed statement %q", joinText(tokens))
	}

	card, ok := er.LookupCardinality(tokens[1].Text)
	if !ok {
		return statement{}, errors.Syntax(lineNo, "unrecognized cardinality symbol %q", tokens[1].Text)
	}
	if tokens[2].Kind != TokenIdent {
		return statement{}, errors.Syntax(lineNo, "invalid entity token %q", tokens[2].Text)
	}

	rel := er.Relationship{
		From:        tokens[0].Text,
		To:          tokens[2].Text,
		Cardinality: card,
	}

	rest := tokens[3:]
	if len(rest) > 0 {
		if rest[0].Kind != TokenColon {
			return statement{}, errors.Syntax(lineNo, "expected ':' before relationship label, got %q", rest[0].Text)
		}
		rel.Label = unquote(joinText(rest[1:]))
	}

	return statement{kind: lineRelationship, line: lineNo, rel: rel}, nil
}

// classifyBlockLine classifies a line inside an entity attribute block:
// <name> [<type words>] [PK] [NN] [MV] [DRV] [CMP]
func classifyBlockLine(tokens []Token, lineNo int) (statement, error) {
	if tokens[0].Kind == TokenRBrace && len(tokens) == 1 {
		return statement{kind: lineBlockClose, line: lineNo}, nil
	}
	if tokens[0].Kind != TokenIdent {
		return statement{}, errors.Syntax(lineNo, "invalid attribute name %q", tokens[0].Text)
	}

	attr, err := attributeFromTokens(tokens[0].Text, tokens[1:], lineNo)
	if err != nil {
		return statement{}, err
	}
	return statement{kind: lineAttribute, line: lineNo, name: tokens[0].Text, attr: attr}, nil
}

// attributeFromTokens assembles an attribute from its trailing tokens.
// Type words come first; flag tokens follow. Once a flag is seen, further
// type words are rejected so that a typoed flag cannot silently become part
// of the type hint.
func attributeFromTokens(name string, rest []Token, lineNo int) (er.Attribute, error) {
	attr := er.Attribute{Name: name}
	var typeWords []string
	flagsSeen := false

	for _, tok := range rest {
		if flag, ok := attributeFlag(tok.Text); ok {
			flag(&attr)
			flagsSeen = true
			continue
		}
		if flagsSeen {
			return er.Attribute{}, errors.Syntax(lineNo, "unknown attribute flag %q", tok.Text)
		}
		typeWords = append(typeWords, tok.Text)
	}

	attr.Type = strings.Join(typeWords, " ")
	return attr, nil
}

// attributeFlag maps a flag token to its setter. Flags are case-insensitive.
func attributeFlag(s string) (func(*er.Attribute), bool) {
	switch strings.ToUpper(s) {
	case "PK":
		return func(a *er.Attribute) { a.PrimaryKey = true }, true
	case "NN":
		return func(a *er.Attribute) { a.Required = true }, true
	case "MV":
		return func(a *er.Attribute) { a.Multivalued = true }, true
	case "DRV":
		return func(a *er.Attribute) { a.Derived = true }, true
	case "CMP":
		return func(a *er.Attribute) { a.Composite = true }, true
	default:
		return nil, false
	}
}

func joinText(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

// unquote strips one pair of surrounding double or single quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
