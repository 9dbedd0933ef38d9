package text

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	theme "github.com/goliatone/go-theme"

	"github.com/PageDAO/PageProvenanceService/pkg/document"
	"github.com/PageDAO/PageProvenanceService/pkg/render"
)

const defaultWidth = 76

// Option customises the text renderer.
type Option func(*Renderer)

// WithWidth sets the wrap width in cells.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width > 20 {
			r.width = width
		}
	}
}

// WithStyleRenderer supplies the lipgloss renderer used for styling. Pass one
// bound to a terminal to get colours.
func WithStyleRenderer(styles *lipgloss.Renderer) Option {
	return func(r *Renderer) {
		if styles != nil {
			r.styles = styles
		}
	}
}

// Renderer writes documents as styled text.
type Renderer struct {
	width  int
	styles *lipgloss.Renderer
}

var _ render.FileRenderer = (*Renderer)(nil)

// New constructs a text renderer. Without WithStyleRenderer output carries
// no escape sequences.
func New(options ...Option) *Renderer {
	r := &Renderer{
		width:  defaultWidth,
		styles: lipgloss.NewRenderer(io.Discard),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return "text"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) FileExtension() string {
	return "txt"
}

type styles struct {
	kicker    lipgloss.Style
	heading   lipgloss.Style
	statement lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	defect    lipgloss.Style
	rule      lipgloss.Style
	footer    lipgloss.Style
}

func (r *Renderer) palette(cfg *theme.RendererConfig) styles {
	brand := lipgloss.Color("#4F46E5")
	muted := lipgloss.Color("#6B7280")
	danger := lipgloss.Color("#B91C1C")
	if cfg != nil {
		if v := strings.TrimSpace(cfg.Tokens["brand"]); v != "" {
			brand = lipgloss.Color(v)
		}
		if v := strings.TrimSpace(cfg.Tokens["muted"]); v != "" {
			muted = lipgloss.Color(v)
		}
		if v := strings.TrimSpace(cfg.Tokens["danger"]); v != "" {
			danger = lipgloss.Color(v)
		}
	}

	base := r.styles.NewStyle().Width(r.width)
	return styles{
		kicker:    base.Foreground(muted),
		heading:   base.Bold(true).Foreground(brand),
		statement: base.Italic(true),
		label:     r.styles.NewStyle().Bold(true).Foreground(muted),
		value:     base.PaddingLeft(2),
		defect: r.styles.NewStyle().
			Width(r.width - 2).
			Border(lipgloss.NormalBorder()).
			BorderForeground(danger).
			Foreground(danger),
		rule:   r.styles.NewStyle().Foreground(brand),
		footer: base.Faint(true),
	}
}

// Render lays doc out as a top-to-bottom list of labelled blocks.
func (r *Renderer) Render(ctx context.Context, doc document.Document, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st := r.palette(opts.Theme)
	rule := st.rule.Render(strings.Repeat("=", r.width))

	blocks := []string{
		st.kicker.Render(strings.ToUpper(doc.Header.ServiceTitle)),
		st.heading.Render(doc.Header.Heading),
		rule,
		st.statement.Render(doc.Header.Statement),
		"",
	}

	if doc.HasDefects() {
		messages := []string{"Internal error: catalog drift detected"}
		for _, defect := range doc.Defects {
			messages = append(messages, defect.Message)
		}
		blocks = append(blocks, st.defect.Render(strings.Join(messages, "\n")), "")
	}

	for _, section := range doc.Sections {
		blocks = append(blocks, st.label.Render(strings.ToUpper(section.Label)))
		for _, line := range section.Lines {
			if section.Kind == document.SectionBullets || section.Kind == document.SectionList {
				line = "- " + line
			}
			blocks = append(blocks, st.value.Render(line))
		}
		blocks = append(blocks, "")
	}

	blocks = append(blocks,
		rule,
		st.footer.Render(doc.Footer.Statement),
		st.footer.Render("Generated on: "+doc.Footer.Timestamp()),
		st.footer.Render("Serial "+doc.Serial),
	)

	out := lipgloss.JoinVertical(lipgloss.Left, blocks...)
	return []byte(trimLines(out) + "\n"), nil
}

// trimLines drops the padding lipgloss adds to reach the block width.
func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
