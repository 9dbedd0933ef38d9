// Package html renders provenance documents as a standalone preview page and
// renders the provenance form itself. Templates are pongo2 files executed
// through the gotemplate adapter; theme tokens become CSS custom properties
// and SVG logos are sanitised before being inlined.
package html
