package pdf

import (
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
)

type rgb struct{ r, g, b int }

type palette struct {
	brand  rgb
	ink    rgb
	muted  rgb
	danger rgb
}

var defaultPalette = palette{
	brand:  rgb{79, 70, 229},
	ink:    rgb{31, 41, 55},
	muted:  rgb{107, 114, 128},
	danger: rgb{185, 28, 28},
}

// paletteFor overlays theme tokens ("brand", "ink", "muted", "danger") on the
// default palette. Tokens that are not #rgb or #rrggbb colours are ignored.
func paletteFor(cfg *theme.RendererConfig) palette {
	p := defaultPalette
	if cfg == nil {
		return p
	}
	apply := func(token string, dst *rgb) {
		if c, ok := parseHex(cfg.Tokens[token]); ok {
			*dst = c
		}
	}
	apply("brand", &p.brand)
	apply("ink", &p.ink)
	apply("muted", &p.muted)
	apply("danger", &p.danger)
	return p
}

func parseHex(raw string) (rgb, bool) {
	value := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(value) == 3 {
		value = string([]byte{value[0], value[0], value[1], value[1], value[2], value[2]})
	}
	if len(value) != 6 {
		return rgb{}, false
	}
	n, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return rgb{}, false
	}
	return rgb{int(n >> 16 & 0xff), int(n >> 8 & 0xff), int(n & 0xff)}, true
}
