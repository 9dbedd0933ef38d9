// Package orchestrator runs the rendering pipeline for a validated record:
// the document builder produces the certified document, the theme selector
// picks colours and logo, and the named renderer serialises the result.
//
// Preview adapts the pipeline to form.Handoff so a controller can deliver
// its accepted record straight into rendering.
package orchestrator
