package openapi

import (
	"embed"
	"io/fs"
)

//go:embed spec/provenance.yaml
var embeddedSpec embed.FS

// SpecName is the embedded contract's file name.
const SpecName = "provenance.yaml"

// SpecFS exposes the embedded contract for serving.
func SpecFS() fs.FS {
	sub, err := fs.Sub(embeddedSpec, "spec")
	if err != nil {
		return embeddedSpec
	}
	return sub
}

// Spec returns the raw contract bytes.
func Spec() []byte {
	data, err := fs.ReadFile(SpecFS(), SpecName)
	if err != nil {
		return nil
	}
	return data
}
