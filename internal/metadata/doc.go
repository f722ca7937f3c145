// Package metadata validates, migrates and scaffolds content package
// metadata documents (info.json).
//
// # Documents
//
// A Document is a flat JSON object. Each schema version is a generation;
// generation 0 documents carry no tag, later ones store it under "gen".
//
//	{
//	    "title": "Hello",
//	    "url": "http://example.com/",
//	    "timestamp": "2015-04-29 13:22:00 UTC",
//	    "broadcast": "2015-04-29",
//	    "license": "CC-BY",
//	    "gen": 1,
//	    "content": {"html": {"main": "index.html", "keep_formatting": false}}
//	}
//
// # Rules
//
// Each field of a Specification has a Chain of rules evaluated in order.
// A rule either passes, ends the chain early (Optional on an absent field),
// or fails with a reason. Only the first failure of a field is reported.
// Whole-document checks are Invariants, written as CEL expressions over the
// variable "doc".
//
// # Usage
//
//	doc, err := metadata.Load(fsys, "pkg/info.json")
//	if err != nil {
//	    return err
//	}
//	doc, err = metadata.MigrateToLatest(doc)
//	if err != nil {
//	    return err
//	}
//	report := metadata.Validate(doc, metadata.LatestSpecification())
//	for _, line := range report.Lines() {
//	    fmt.Println(line)
//	}
//
// Specifications and the generation registry are immutable after package
// initialization and safe for concurrent use.
package metadata
