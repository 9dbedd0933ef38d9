// Package catalog loads the content-type and attestation catalogs used by the
// form controller and the document builder. Catalog files are JSON or YAML;
// the canonical seven-option catalog is embedded and returned by Default.
package catalog
