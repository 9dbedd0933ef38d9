package html

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/PageDAO/PageProvenanceService/pkg/render"
)

var (
	logoPolicyOnce sync.Once
	logoPolicy     *bluemonday.Policy
)

type logoView struct {
	SVG string `json:"svg,omitempty"`
	Src string `json:"src,omitempty"`
	Alt string `json:"alt,omitempty"`
}

// buildLogoView inlines sanitised SVG markup, or falls back to a data URI for
// raster images. Unsupported or empty logos produce no view.
func buildLogoView(logo *render.Logo) *logoView {
	if logo == nil || len(logo.Data) == 0 {
		return nil
	}
	alt := strings.TrimSpace(logo.Name)
	if alt == "" {
		alt = "Logo"
	}
	switch {
	case logo.IsSVG():
		cleaned := sanitizeLogoMarkup(string(logo.Data))
		if cleaned == "" {
			return nil
		}
		return &logoView{SVG: cleaned, Alt: alt}
	case logo.IsRaster():
		return &logoView{Src: logo.DataURI(), Alt: alt}
	default:
		return nil
	}
}

func sanitizeLogoMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(logoSanitizer().Sanitize(trimmed))
}

func logoSanitizer() *bluemonday.Policy {
	logoPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"svg", "g", "path", "circle", "rect", "line", "polyline", "polygon",
			"ellipse", "title", "desc", "defs", "text", "tspan",
		)

		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "aria-hidden", "role", "focusable", "class",
		).OnElements("svg")

		for _, el := range []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse", "g"} {
			policy.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
				"points", "rx", "ry", "width", "height", "fill", "stroke",
				"stroke-width", "stroke-linecap", "stroke-linejoin", "transform", "class",
			).OnElements(el)
		}
		policy.AllowAttrs(
			"x", "y", "dx", "dy", "fill", "font-size", "font-family", "font-weight", "text-anchor",
		).OnElements("text", "tspan")

		logoPolicy = policy
	})
	return logoPolicy
}
