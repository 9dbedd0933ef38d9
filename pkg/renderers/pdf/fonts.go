package pdf

import (
	"embed"
	"errors"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
)

const fontFamily = "body"

//go:embed fonts/*.ttf
var embeddedFonts embed.FS

// Fonts holds TrueType faces used for every string in the artifact. Bold and
// Italic fall back to Regular when empty.
type Fonts struct {
	Regular []byte
	Bold    []byte
	Italic  []byte
}

// DefaultFonts returns the embedded DejaVu Sans Condensed faces. They cover
// Latin, Greek, Cyrillic, Armenian, Georgian, Hebrew and Arabic; CJK text
// needs a font supplied through WithFonts.
func DefaultFonts() Fonts {
	return Fonts{
		Regular: mustFont("fonts/DejaVuSansCondensed.ttf"),
		Bold:    mustFont("fonts/DejaVuSansCondensed-Bold.ttf"),
		Italic:  mustFont("fonts/DejaVuSansCondensed-Oblique.ttf"),
	}
}

// LoadFontFile reads a single TrueType face and uses it for every style.
func LoadFontFile(path string) (Fonts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fonts{}, fmt.Errorf("pdf renderer: read font: %w", err)
	}
	return Fonts{Regular: data}, nil
}

func mustFont(name string) []byte {
	data, err := embeddedFonts.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("pdf renderer: embedded font %s: %v", name, err))
	}
	return data
}

func (f Fonts) register(pdf *fpdf.Fpdf) error {
	if len(f.Regular) == 0 {
		return errors.New("pdf renderer: regular font is empty")
	}
	bold, italic := f.Bold, f.Italic
	if len(bold) == 0 {
		bold = f.Regular
	}
	if len(italic) == 0 {
		italic = f.Regular
	}
	faces := []struct {
		style string
		data  []byte
	}{{"regular", f.Regular}, {"bold", bold}, {"italic", italic}}
	for _, face := range faces {
		if !isTrueType(face.data) {
			return fmt.Errorf("pdf renderer: load fonts: %s face is not a TrueType font", face.style)
		}
	}
	pdf.AddUTF8FontFromBytes(fontFamily, "", f.Regular)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", bold)
	pdf.AddUTF8FontFromBytes(fontFamily, "I", italic)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("pdf renderer: load fonts: %w", err)
	}
	return nil
}

// isTrueType checks the sfnt version tag. fpdf skips faces it cannot parse
// without recording an error.
func isTrueType(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	tag := string(data[:4])
	return tag == "\x00\x01\x00\x00" || tag == "true"
}
