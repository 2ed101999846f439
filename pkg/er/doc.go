// Package er defines the core entity-relationship diagram model.
//
// This package is the single source of truth for the data types that flow
// through the whole pipeline: [Entity], [Relationship], [Diagram], and the
// Crow's-Foot [Cardinality] table.
//
// # Cardinality
//
// Crow's-Foot notation encodes a (source, target) multiplicity pair in a
// fixed textual symbol such as "||--o{". Exactly sixteen symbols are valid,
// one for every combination of the four [Multiplicity] classes. Symbols
// outside the table are a hard parse error - they are never coerced.
//
// Common operations:
//
//	card, ok := er.LookupCardinality("||--o{")  // symbol → Cardinality
//	sym := er.SymbolFor(er.One, er.ZeroOrMany)  // multiplicities → symbol
//	m := er.NormalizeMultiplicity("optional")   // free-form string → class
//
// # Lifecycle
//
// A Diagram is built fresh on every parse and handed to the rendering
// collaborator after layout. Positions are attached by the layout engine;
// an unpositioned diagram has a nil Pos on every entity.
package er
