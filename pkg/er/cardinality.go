package er

import "strings"

// Multiplicity is one of the four canonical Crow's-Foot multiplicity
// classes. The zero value is One.
type Multiplicity int

const (
	// One means exactly one.
	One Multiplicity = iota
	// ZeroOrOne means optional participation, at most one.
	ZeroOrOne
	// OneOrMany means mandatory participation, unbounded.
	OneOrMany
	// ZeroOrMany means optional participation, unbounded.
	ZeroOrMany
)

// String returns the conventional range notation for the class.
func (m Multiplicity) String() string {
	switch m {
	case One:
		return "1"
	case ZeroOrOne:
		return "0..1"
	case OneOrMany:
		return "1..*"
	default:
		return "0..*"
	}
}

// Cardinality is a decoded Crow's-Foot symbol: the source and target
// multiplicity classes plus the line style. All sixteen canonical symbols
// use a solid connector, so Identifying is true for every table entry;
// it is kept as an explicit field because the rendering collaborator keys
// solid/dashed styling off it.
type Cardinality struct {
	Symbol      string
	Source      Multiplicity
	Target      Multiplicity
	Identifying bool
}

// Source-end markers, read left-to-right at the start of a symbol.
var sourceMarks = map[string]Multiplicity{
	"||": One,
	"|o": ZeroOrOne,
	"}|": OneOrMany,
	"}o": ZeroOrMany,
}

// Target-end markers, read left-to-right at the end of a symbol.
var targetMarks = map[string]Multiplicity{
	"||": One,
	"o|": ZeroOrOne,
	"|{": OneOrMany,
	"o{": ZeroOrMany,
}

func markForSource(m Multiplicity) string {
	switch m {
	case One:
		return "||"
	case ZeroOrOne:
		return "|o"
	case OneOrMany:
		return "}|"
	default:
		return "}o"
	}
}

func markForTarget(m Multiplicity) string {
	switch m {
	case One:
		return "||"
	case ZeroOrOne:
		return "o|"
	case OneOrMany:
		return "|{"
	default:
		return "o{"
	}
}

// LookupCardinality decodes one of the sixteen canonical symbols.
// It reports false for anything else, including dashed (`..`) connectors.
func LookupCardinality(symbol string) (Cardinality, bool) {
	if len(symbol) != 6 || symbol[2:4] != "--" {
		return Cardinality{}, false
	}
	src, ok := sourceMarks[symbol[:2]]
	if !ok {
		return Cardinality{}, false
	}
	dst, ok := targetMarks[symbol[4:]]
	if !ok {
		return Cardinality{}, false
	}
	return Cardinality{Symbol: symbol, Source: src, Target: dst, Identifying: true}, true
}

// SymbolFor returns the canonical symbol encoding the given multiplicity
// pair. Every pair maps to exactly one of the sixteen symbols.
func SymbolFor(src, dst Multiplicity) string {
	return markForSource(src) + "--" + markForTarget(dst)
}

// CardinalityFor builds the full Cardinality for a multiplicity pair.
func CardinalityFor(src, dst Multiplicity) Cardinality {
	return Cardinality{Symbol: SymbolFor(src, dst), Source: src, Target: dst, Identifying: true}
}

// NormalizeMultiplicity maps an externally stored multiplicity string to a
// canonical class. Canvas-extracted graphs carry free-form values, so the
// mapping accepts the common synonyms and range notations. Unrecognized
// strings default to ZeroOrMany, the most permissive class - serialization
// is best-effort on external input and must not fail here.
func NormalizeMultiplicity(s string) Multiplicity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "one", "exactly-one", "exactly one", "1..1":
		return One
	case "0..1", "01", "zero-or-one", "zero or one", "optional", "?", "0,1":
		return ZeroOrOne
	case "1..*", "1..n", "1..m", "one-or-many", "one or many", "many", "+", "1+":
		return OneOrMany
	case "0..*", "0..n", "0..m", "zero-or-many", "zero or many", "*", "n", "m":
		return ZeroOrMany
	default:
		return ZeroOrMany
	}
}
