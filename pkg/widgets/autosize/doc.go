// Package autosize provides presentation adapters that size text controls to
// their content. An adapter owns nothing but the transient size: every change
// is forwarded to the caller's handler exactly as received, then the size is
// recomputed.
//
// The same measurements seed the size and rows attributes of the HTML form;
// the browser keeps them current through the data-autosize runtime script.
package autosize
