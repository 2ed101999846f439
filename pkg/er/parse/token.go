package parse

import "strings"

// TokenKind discriminates the small token vocabulary of the line syntax.
type TokenKind int

const (
	// TokenIdent is an entity or attribute token: letters, digits,
	// hyphens, underscores.
	TokenIdent TokenKind = iota
	// TokenCardinality is one of the sixteen canonical Crow's-Foot symbols.
	TokenCardinality
	// TokenColon separates a relationship from its label, or a key from
	// its value in directive lines.
	TokenColon
	// TokenLBrace opens an entity attribute block.
	TokenLBrace
	// TokenRBrace closes an entity attribute block.
	TokenRBrace
	// TokenWord is any other run of non-space characters (type hints,
	// label words, malformed cardinalities).
	TokenWord
)

// Token is a single lexeme with its source column (0-based, for messages).
type Token struct {
	Kind TokenKind
	Text string
	Col  int
}

// scanLine splits a raw source line into tokens. The scanner never fails:
// classification decisions (and errors) belong to the line classifier.
func scanLine(line string) []Token {
	var tokens []Token
	i := 0
	for i < len(line) {
		if line[i] == ' ' || line[i] == '\t' {
			i++
			continue
		}
		start := i
		for i < len(line) && line[i] != ' ' && line[i] != '\t' {
			i++
		}
		tokens = append(tokens, splitRun(line[start:i], start)...)
	}
	return tokens
}

// splitRun classifies one whitespace-delimited run, peeling off structural
// suffixes ("title:" → Ident + Colon).
func splitRun(run string, col int) []Token {
	switch run {
	case "{":
		return []Token{{Kind: TokenLBrace, Text: run, Col: col}}
	case "}":
		return []Token{{Kind: TokenRBrace, Text: run, Col: col}}
	case ":":
		return []Token{{Kind: TokenColon, Text: run, Col: col}}
	}

	// Key-value shorthand: an identifier with an attached trailing colon.
	if head, ok := strings.CutSuffix(run, ":"); ok && isIdent(head) {
		return []Token{
			{Kind: TokenIdent, Text: head, Col: col},
			{Kind: TokenColon, Text: ":", Col: col + len(head)},
		}
	}

	kind := TokenWord
	switch {
	case isCardinalityShaped(run):
		kind = TokenCardinality
	case isIdent(run):
		kind = TokenIdent
	}
	return []Token{{Kind: kind, Text: run, Col: col}}
}

// isIdent reports whether s is a valid entity/attribute token: letters,
// digits, hyphens, and underscores, with at least one letter or digit.
// Underscores keep snake_case schema names (placed_at, unit_price) valid.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	alnum := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			alnum = true
		case r == '-', r == '_':
		default:
			return false
		}
	}
	return alnum
}

// isCardinalityShaped reports whether a run is built solely from the
// Crow's-Foot marker alphabet with a connector in the middle. Shape-matching
// is deliberately wider than the sixteen-symbol table: a shaped-but-invalid
// token ("||--|o") must surface as an unrecognized-cardinality error, not
// fall through to another line class.
func isCardinalityShaped(s string) bool {
	if !strings.Contains(s, "--") && !strings.Contains(s, "..") {
		return false
	}
	for _, r := range s {
		switch r {
		case '|', '{', '}', 'o', '-', '.':
		default:
			return false
		}
	}
	return true
}
