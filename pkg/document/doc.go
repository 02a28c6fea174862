// Package document reads and writes task graph diagrams as JSON or TOML.
//
// A document lists items and dependency edges:
//
//	{
//	  "items": [
//	    {"id": "etl", "kind": "container", "width": 300, "height": 150},
//	    {"id": "fetch", "type": "http", "width": 200, "height": 100, "container": "etl"},
//	    {"id": "store", "type": "sql", "width": 200, "height": 100}
//	  ],
//	  "edges": [{"from": "etl", "to": "store"}]
//	}
//
// [ToScene] turns a document into a [diagram.Scene] ready for layout, and
// [FromScene] turns the laid-out scene back into a document. A container's
// width and height in the document become its default rectangle when no
// explicit "default" is given.
//
// [Read] checks the input against [SchemaJSON] before decoding, in both
// encodings, so unknown fields and malformed values are rejected with the
// location of each violation.
//
// [diagram.Scene]: github.com/matzehuels/graphnest/pkg/diagram.Scene
package document
