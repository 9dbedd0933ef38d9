package orchestrator

import (
	"embed"
	"io/fs"

	"github.com/PageDAO/PageProvenanceService/pkg/render"
)

//go:embed assets/*
var embeddedAssets embed.FS

// Default logo file names under AssetsFS.
const (
	DefaultVectorLogo = "page-logo.svg"
	DefaultRasterLogo = "page-logo.png"
)

// AssetsFS exposes the embedded brand assets.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

// DefaultLogos returns the PageDAO mark as SVG (for HTML) and PNG (for PDF).
func DefaultLogos() []*render.Logo {
	var logos []*render.Logo
	for _, name := range []string{DefaultVectorLogo, DefaultRasterLogo} {
		logo, err := LoadLogo(AssetsFS(), name)
		if err != nil {
			continue
		}
		logos = append(logos, logo)
	}
	return logos
}

// LoadLogo reads a logo from fsys, inferring the media type from its name.
func LoadLogo(fsys fs.FS, name string) (*render.Logo, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	return &render.Logo{Name: name, MediaType: render.MediaTypeFor(name), Data: data}, nil
}

// pickLogo chooses the logo a renderer can show. PDF output needs a bitmap;
// markup renderers prefer vector art.
func pickLogo(rendererName string, logos []*render.Logo) *render.Logo {
	var raster *render.Logo
	for _, logo := range logos {
		switch {
		case logo.IsSVG() && rendererName != "pdf":
			return logo
		case logo.IsRaster() && raster == nil:
			raster = logo
		}
	}
	return raster
}
