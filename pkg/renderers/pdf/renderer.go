package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/PageDAO/PageProvenanceService/pkg/document"
	"github.com/PageDAO/PageProvenanceService/pkg/render"
)

const (
	margin     = 56.0
	logoSize   = 48.0
	lineHeight = 16.0
	logoName   = "artifact-logo"
)

// Option customises the PDF renderer.
type Option func(*Renderer)

// WithCompression toggles content stream compression. Enabled by default.
func WithCompression(enabled bool) Option {
	return func(r *Renderer) {
		r.compress = enabled
	}
}

// WithPageSize selects an fpdf page size name such as "A4" or "Letter".
func WithPageSize(size string) Option {
	return func(r *Renderer) {
		if size = strings.TrimSpace(size); size != "" {
			r.pageSize = size
		}
	}
}

// WithFonts replaces the embedded faces, e.g. with a CJK font.
func WithFonts(fonts Fonts) Option {
	return func(r *Renderer) {
		if len(fonts.Regular) > 0 {
			r.fonts = fonts
		}
	}
}

// Renderer writes documents as PDF.
type Renderer struct {
	compress bool
	pageSize string
	fonts    Fonts
}

var _ render.FileRenderer = (*Renderer)(nil)

// New constructs the PDF renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{compress: true, pageSize: "A4", fonts: DefaultFonts()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return "pdf"
}

func (r *Renderer) ContentType() string {
	return "application/pdf"
}

func (r *Renderer) FileExtension() string {
	return "pdf"
}

// Render lays out doc on as many pages as needed.
func (r *Renderer) Render(ctx context.Context, doc document.Document, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	colors := paletteFor(opts.Theme)
	pdf := fpdf.New("P", "pt", r.pageSize, "")
	if err := r.fonts.register(pdf); err != nil {
		return nil, err
	}

	pdf.SetCompression(r.compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(doc.Footer.GeneratedAt)
	pdf.SetModificationDate(doc.Footer.GeneratedAt)
	pdf.SetTitle(doc.Header.Heading, true)
	pdf.SetSubject(doc.Header.Statement, true)
	pdf.SetAuthor(doc.Header.ServiceTitle, true)
	pdf.SetCreator(doc.Header.ServiceTitle, true)
	pdf.SetKeywords("provenance "+doc.Serial, true)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin+lineHeight*3)
	pdf.AliasNbPages("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-(margin + lineHeight*2))
		pdf.SetFont(fontFamily, "", 8)
		setText(pdf, colors.muted)
		pdf.MultiCell(0, 10, doc.Footer.Statement, "", "C", false)
		pdf.CellFormat(0, 10, "Generated on: "+doc.Footer.Timestamp(), "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("Serial %s  |  Page %d/{nb}", doc.Serial, pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	r.header(pdf, doc, opts.Logo, colors)

	if doc.HasDefects() {
		defects(pdf, doc.Defects, colors)
	}

	for _, section := range doc.Sections {
		writeSection(pdf, section, colors)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf renderer: output: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) header(pdf *fpdf.Fpdf, doc document.Document, logo *render.Logo, colors palette) {
	left, top, _, _ := pdf.GetMargins()
	textX := left

	if logo.IsRaster() && len(logo.Data) > 0 {
		options := fpdf.ImageOptions{ImageType: logo.ImageType()}
		pdf.RegisterImageOptionsReader(logoName, options, bytes.NewReader(logo.Data))
		if pdf.Ok() {
			pdf.ImageOptions(logoName, left, top, logoSize, logoSize, false, options, 0, "")
			textX = left + logoSize + 12
		} else {
			// An unreadable logo should not block the artifact.
			pdf.ClearError()
		}
	}

	pdf.SetXY(textX, top+6)
	pdf.SetFont(fontFamily, "", 9)
	setText(pdf, colors.muted)
	pdf.CellFormat(0, 12, strings.ToUpper(doc.Header.ServiceTitle), "", 2, "L", false, 0, "")
	pdf.SetX(textX)
	pdf.SetFont(fontFamily, "B", 22)
	setText(pdf, colors.brand)
	pdf.CellFormat(0, 26, doc.Header.Heading, "", 1, "L", false, 0, "")

	pdf.SetY(top + logoSize + 10)
	pdf.SetDrawColor(colors.brand.r, colors.brand.g, colors.brand.b)
	pdf.SetLineWidth(1)
	width, _ := pdf.GetPageSize()
	pdf.Line(left, pdf.GetY(), width-left, pdf.GetY())
	pdf.Ln(10)

	pdf.SetFont(fontFamily, "I", 11)
	setText(pdf, colors.ink)
	pdf.MultiCell(0, 14, doc.Header.Statement, "", "L", false)
	pdf.Ln(6)
}

func defects(pdf *fpdf.Fpdf, list []document.Defect, colors palette) {
	pdf.SetDrawColor(colors.danger.r, colors.danger.g, colors.danger.b)
	setText(pdf, colors.danger)
	pdf.SetFont(fontFamily, "B", 10)
	pdf.CellFormat(0, 14, "Internal error: catalog drift detected", "LTR", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 9)
	for i, defect := range list {
		border := "LR"
		if i == len(list)-1 {
			border = "LRB"
		}
		pdf.MultiCell(0, 12, defect.Message, border, "L", false)
	}
	pdf.Ln(8)
}

func writeSection(pdf *fpdf.Fpdf, section document.Section, colors palette) {
	pdf.SetFont(fontFamily, "B", 9)
	setText(pdf, colors.muted)
	pdf.CellFormat(0, 14, strings.ToUpper(section.Label), "", 1, "L", false, 0, "")

	pdf.SetFont(fontFamily, "", 11)
	setText(pdf, colors.ink)
	for _, line := range section.Lines {
		text := line
		if section.Kind == document.SectionBullets {
			text = "• " + line
		}
		pdf.MultiCell(0, lineHeight-2, text, "", "L", false)
	}
	pdf.Ln(6)
}

func setText(pdf *fpdf.Fpdf, c rgb) {
	pdf.SetTextColor(c.r, c.g, c.b)
}
