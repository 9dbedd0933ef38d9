// Package text renders provenance documents for terminals and plain-text
// exports. Styling goes through lipgloss; when the configured lipgloss
// renderer has no colour support the output is plain ASCII text.
package text
