// Package document maps a validated provenance record onto the fixed layout of
// a provenance artifact. Builder.Build is pure: it never mutates the record
// and, for identical input, produces an identical Document apart from the
// generation timestamp taken from the injected clock.
//
// Optional fields are resolved through a single presence policy table so
// every renderer omits the same sections. Attestation ids that the catalog
// cannot resolve are surfaced as Defects (or as a CatalogDriftError in strict
// mode) instead of being dropped.
package document
