// Package openapi embeds the HTTP contract of the provenance service and uses
// kin-openapi to check record payloads against it before they reach the form
// controller. Only structure is checked here: value types and unknown keys.
// Missing or blank fields are left to form validation so the API and the
// form page report them with the same messages.
package openapi
