package document

import "time"

// Fixed artifact copy.
const (
	DefaultServiceTitle = "Page Provenance Service"
	Heading             = "Provenance Artifact"
	Statement           = "This document certifies the legitimacy and provenance of the associated content."
	FooterStatement     = "This is a 1/1 Page Provenance Service artifact. Its existence certifies the legitimacy of the associated content."
	NoSourcesLine       = "None declared"
	TimestampLayout     = "January 2, 2006 15:04:05 MST"
)

// SectionKind tells renderers how to lay out a section's lines.
type SectionKind string

const (
	// SectionField is a labelled single value.
	SectionField SectionKind = "field"
	// SectionList is a labelled list, one line per entry.
	SectionList SectionKind = "list"
	// SectionText is a labelled free-text paragraph.
	SectionText SectionKind = "text"
	// SectionBullets is a labelled list rendered with bullet markers.
	SectionBullets SectionKind = "bullets"
)

// Section is one labelled block of the artifact body.
type Section struct {
	Key   string      `json:"key"`
	Label string      `json:"label"`
	Kind  SectionKind `json:"kind"`
	Lines []string    `json:"lines"`
}

// Header is the block printed above the body.
type Header struct {
	ServiceTitle string `json:"serviceTitle"`
	Heading      string `json:"heading"`
	Statement    string `json:"statement"`
}

// Footer closes the artifact.
type Footer struct {
	Statement   string    `json:"statement"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Timestamp formats the generation time for display.
func (f Footer) Timestamp() string {
	return f.GeneratedAt.Format(TimestampLayout)
}

// Defect records catalog or state drift discovered while building.
type Defect struct {
	Section string `json:"section"`
	Message string `json:"message"`
}

// Document is the renderer-neutral artifact.
type Document struct {
	Serial   string    `json:"serial"`
	Header   Header    `json:"header"`
	Sections []Section `json:"sections"`
	Footer   Footer    `json:"footer"`
	Defects  []Defect  `json:"defects,omitempty"`
}

// Section returns the section with key.
func (d Document) Section(key string) (Section, bool) {
	for _, section := range d.Sections {
		if section.Key == key {
			return section, true
		}
	}
	return Section{}, false
}

// HasDefects reports whether the build recorded any drift.
func (d Document) HasDefects() bool {
	return len(d.Defects) > 0
}
