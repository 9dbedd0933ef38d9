// Package tui fills a provenance record from the terminal.
//
// A Session drives a form.Controller through survey prompts in page order,
// submits it, and on failure prints each message and asks again for the
// failing fields only. Tests replace the terminal with a scripted
// PromptDriver.
package tui
