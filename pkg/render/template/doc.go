// Package template is the seam between the HTML renderer and its template
// engine. The gotemplate subpackage provides the pongo2 engine that executes
// the embedded document and form templates.
package template
