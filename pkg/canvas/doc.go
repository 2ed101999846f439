// Package canvas defines the positioned-document wire format.
//
// A [Document] is the canonical JSON output of diagram generation: every
// entity carries its computed center position and box dimensions, every
// relationship carries per-endpoint multiplicities alongside the compact
// cardinality symbol. The format is designed for round-trip fidelity:
// generate → export → re-import → serialize reproduces an equivalent
// text definition.
//
// Common operations:
//
//	doc := canvas.FromDiagram(d, positions)          // model → document
//	data, _ := canvas.Marshal(doc)                   // document → []byte
//	doc, _ = canvas.ReadFile("diagram.json")         // file → document
//	d, pos, _ := doc.ToDiagram()                     // document → model
//
// All functions are safe for concurrent reads but not concurrent writes.
package canvas
