// Package parse turns declarative Crow's-Foot notation into an [er.Diagram].
//
// Two document shapes are accepted:
//
//  1. Plain line syntax: an optional "title:" line followed by relationship
//     lines, bare entity declarations, and mermaid-style attribute blocks:
//
//     title: "Shop"
//     Customer ||--o{ Order : places
//     Customer {
//     id int PK
//     name string NN
//     }
//
//  2. A structured YAML document with explicit "entities" (name → attribute
//     map) and "relationships" (array of relationship-line strings):
//
//     title: Shop
//     entities:
//     Customer:
//     id: int PK
//     relationships:
//     - Customer ||--o{ Order : places
//
// Lines are classified by an explicit tokenizer rather than overlapping
// regular expressions: each line is scanned into a small typed token stream
// and a single-pass classifier switches on token shape. A line that matches
// relationship shape but carries an unrecognized cardinality token is a hard
// [errors.SyntaxError] with its 1-based line number - invalid symbols are
// never coerced.
//
// Parsing is a pure function of the input text: identical text always yields
// an identical unpositioned diagram, with entities in first-seen order.
package parse
