package document

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PageDAO/PageProvenanceService/pkg/model"
)

// serialNamespace scopes artifact serials so they never collide with other
// name-based UUIDs derived from the same bytes.
var serialNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://pagedao.org/provenance/artifact"))

// Option customises a Builder.
type Option func(*Builder)

// WithClock overrides the source of the generation timestamp.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithServiceTitle replaces the header service title.
func WithServiceTitle(title string) Option {
	return func(b *Builder) {
		if title = strings.TrimSpace(title); title != "" {
			b.serviceTitle = title
		}
	}
}

// WithStrictCatalog makes unresolved attestation ids fail the build with a
// CatalogDriftError instead of rendering placeholders.
func WithStrictCatalog() Option {
	return func(b *Builder) {
		b.strict = true
	}
}

// WithLogger attaches a logger used to report catalog drift.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Builder maps records onto Documents.
type Builder struct {
	catalog      model.Catalog
	now          func() time.Time
	serviceTitle string
	strict       bool
	logger       *zap.Logger
}

// NewBuilder constructs a Builder resolving attestation text from catalog.
func NewBuilder(catalog model.Catalog, options ...Option) *Builder {
	b := &Builder{
		catalog:      catalog,
		now:          time.Now,
		serviceTitle: DefaultServiceTitle,
		logger:       zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// Catalog returns the catalog used to resolve attestations.
func (b *Builder) Catalog() model.Catalog {
	return b.catalog
}

// Build lays out record. The record is expected to have passed form
// validation.
func (b *Builder) Build(record model.ProvenanceRecord) (Document, error) {
	serial, err := Serial(record)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		Serial: serial,
		Header: Header{
			ServiceTitle: b.serviceTitle,
			Heading:      Heading,
			Statement:    Statement,
		},
	}

	identity := record.Identity()
	doc.Sections = append(doc.Sections,
		Section{Key: "identity", Label: identity.Label(), Kind: SectionField, Lines: []string{identity.Display()}},
		Section{Key: "title", Label: "Title", Kind: SectionField, Lines: []string{strings.TrimSpace(record.Title)}},
		Section{Key: "author", Label: "Author", Kind: SectionField, Lines: []string{strings.TrimSpace(record.Author)}},
	)

	for _, field := range detailFields {
		if section, ok := field.section(record); ok {
			doc.Sections = append(doc.Sections, section)
		}
	}

	doc.Sections = append(doc.Sections,
		Section{Key: "contentType", Label: "Content Type", Kind: SectionField, Lines: []string{string(record.ContentType)}},
		Section{Key: "license", Label: "License", Kind: SectionField, Lines: []string{record.License()}},
		sourcesSection(record.ApprovedSources),
	)

	if section, ok := notesField.section(record); ok {
		doc.Sections = append(doc.Sections, section)
	}

	attestations, defects, unresolved := b.attestationsSection(record.Attestations)
	if len(unresolved) > 0 {
		if b.strict {
			return Document{}, &CatalogDriftError{IDs: unresolved}
		}
		b.logger.Error("attestation ids missing from catalog",
			zap.Strings("ids", unresolved),
			zap.String("serial", serial),
		)
	}
	doc.Sections = append(doc.Sections, attestations)
	doc.Defects = defects

	doc.Footer = Footer{
		Statement:   FooterStatement,
		GeneratedAt: b.now(),
	}
	return doc, nil
}

func sourcesSection(sources []string) Section {
	lines := make([]string, 0, len(sources))
	for _, source := range sources {
		lines = append(lines, strings.TrimSpace(source))
	}
	if len(lines) == 0 {
		lines = append(lines, NoSourcesLine)
	}
	return Section{Key: "approvedSources", Label: "Approved Sources", Kind: SectionList, Lines: lines}
}

func (b *Builder) attestationsSection(ids []string) (Section, []Defect, []string) {
	section := Section{Key: "attestations", Label: "Attestations", Kind: SectionBullets}
	var defects []Defect
	var unresolved []string
	for _, id := range ids {
		option, ok := b.catalog.Attestation(id)
		if !ok {
			section.Lines = append(section.Lines, fmt.Sprintf("[unknown attestation: %s]", id))
			defects = append(defects, Defect{
				Section: section.Key,
				Message: fmt.Sprintf("attestation id %q is not in the catalog", id),
			})
			unresolved = append(unresolved, id)
			continue
		}
		section.Lines = append(section.Lines, option.Text)
	}
	return section, defects, unresolved
}

// Serial derives the artifact serial from the record content. Identical
// records always produce the same serial.
func Serial(record model.ProvenanceRecord) (string, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("document: encode record: %w", err)
	}
	return uuid.NewSHA1(serialNamespace, payload).String(), nil
}
