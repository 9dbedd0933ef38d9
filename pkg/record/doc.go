// Package record describes where provenance records come from (files, fs.FS
// entries, URLs) and decodes their JSON or YAML payloads. The loader
// implementation lives in internal/record/loader; construct it through the
// root provenance package.
package record
