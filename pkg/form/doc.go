// Package form owns the mutable state of a single provenance form session.
//
// A Controller is seeded with the default record (one blank approved source,
// content type Book) or an existing record, and is mutated only through typed
// commands: SetField, SetSource, AddSource, RemoveSource and ToggleAttestation.
// Validation is deferred until Validate or Submit is called; failures are
// reported as an Errors mapping keyed by field and never escape the
// controller as Go errors. Returned errors are reserved for command
// precondition violations (unknown fields, out-of-range indexes, ids outside
// the catalog) and for failures of the optional address issuer or hand-off
// collaborators.
//
// A Controller is owned by one session and is not safe for concurrent use.
package form
