package catalog

import (
	"embed"
	"io/fs"
)

//go:embed catalogs/*
var embeddedCatalogs embed.FS

// DefaultName is the file name of the bundled catalog inside EmbeddedFS.
const DefaultName = "default.yaml"

// EmbeddedFS returns the bundled catalog files. Callers may pass this
// filesystem to LoadFS to start from the canonical options.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedCatalogs, "catalogs")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}
