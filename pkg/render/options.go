package render

import (
	"encoding/base64"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// RenderOptions carry per-request presentation data. None of it changes the
// document content.
type RenderOptions struct {
	// Theme holds the resolved theme tokens. Renderers fall back to their
	// built-in palette when nil.
	Theme *theme.RendererConfig
	// Logo is printed in the artifact header when set.
	Logo *Logo
	// Download, when set, asks the HTML preview to include a form that posts
	// the record back for export in one of the listed formats.
	Download *DownloadForm
}

// Logo is an image shown next to the artifact heading.
type Logo struct {
	Name      string
	MediaType string
	Data      []byte
}

// Media types accepted for logos.
const (
	MediaTypeSVG  = "image/svg+xml"
	MediaTypePNG  = "image/png"
	MediaTypeJPEG = "image/jpeg"
)

// IsSVG reports whether the logo is vector markup.
func (l *Logo) IsSVG() bool {
	return l != nil && l.MediaType == MediaTypeSVG
}

// IsRaster reports whether the logo can be embedded as a bitmap.
func (l *Logo) IsRaster() bool {
	return l != nil && (l.MediaType == MediaTypePNG || l.MediaType == MediaTypeJPEG)
}

// ImageType returns the short image type used by PDF writers ("PNG", "JPG").
func (l *Logo) ImageType() string {
	switch {
	case l == nil:
		return ""
	case l.MediaType == MediaTypePNG:
		return "PNG"
	case l.MediaType == MediaTypeJPEG:
		return "JPG"
	default:
		return ""
	}
}

// DataURI encodes the logo for inline use in markup.
func (l *Logo) DataURI() string {
	if l == nil || len(l.Data) == 0 {
		return ""
	}
	return "data:" + l.MediaType + ";base64," + base64.StdEncoding.EncodeToString(l.Data)
}

// MediaTypeFor guesses a logo media type from a file name.
func MediaTypeFor(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	switch {
	case strings.HasSuffix(lower, ".svg"):
		return MediaTypeSVG
	case strings.HasSuffix(lower, ".png"):
		return MediaTypePNG
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return MediaTypeJPEG
	default:
		return ""
	}
}

// DownloadForm describes the export form rendered under a preview.
type DownloadForm struct {
	Action  string
	Fields  []HiddenField
	Formats []string
}
