package orchestrator

import (
	"fmt"
	"strings"

	"github.com/PageDAO/PageProvenanceService/pkg/document"
	"github.com/PageDAO/PageProvenanceService/pkg/render/template/gotemplate"
)

// WithFooterTemplate replaces the footer statement of every artifact with
// content rendered for its document. The template sees service_title,
// heading, serial, generated_at and one key per field section (title,
// author, identity, contentType, license, ...) holding its text. A blank
// template keeps the built-in statement.
func WithFooterTemplate(content string) Option {
	return func(o *Orchestrator) {
		o.footerTemplate = strings.TrimSpace(content)
	}
}

func (o *Orchestrator) initFooter() error {
	if o.footerTemplate == "" {
		return nil
	}
	inline, err := gotemplate.NewInline(nil)
	if err != nil {
		return fmt.Errorf("orchestrator: footer template: %w", err)
	}
	o.footer = inline
	return nil
}

func (o *Orchestrator) applyFooter(doc *document.Document) error {
	if o.footer == nil {
		return nil
	}
	statement, err := o.footer.Render(o.footerTemplate, footerData(*doc))
	if err != nil {
		return fmt.Errorf("orchestrator: footer template: %w", err)
	}
	if statement != "" {
		doc.Footer.Statement = statement
	}
	return nil
}

func footerData(doc document.Document) map[string]any {
	data := map[string]any{
		"service_title": doc.Header.ServiceTitle,
		"heading":       doc.Header.Heading,
		"serial":        doc.Serial,
		"generated_at":  doc.Footer.Timestamp(),
	}
	for _, section := range doc.Sections {
		if section.Kind == document.SectionField {
			data[section.Key] = strings.Join(section.Lines, " ")
		}
	}
	return data
}
