// Package server exposes the provenance form, its preview and the artifact
// API over HTTP using a chi router.
//
// The server keeps no session state. Each form post carries the whole record,
// is replayed into a fresh form.Controller and rendered back, so the add and
// remove source buttons work without JavaScript. Successful submissions hand
// the record to the orchestrator, which renders the HTML preview with a
// download form posting to /artifact.
package server
