// Package model defines the provenance record captured by the form controller
// and consumed by the document builder, together with the static catalogs
// (content types and attestation options) both sides resolve against. Records
// carry JSON and YAML tags using the camelCase names exposed by the HTTP API so
// a record round-trips through files and requests without loss. Identity
// helpers format the contract address line, optionally qualified by a chain id.
package model
