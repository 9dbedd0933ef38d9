// Package pdf renders provenance documents as single-column A4 PDF files
// using go-pdf/fpdf. Text is set in embedded UTF-8 TrueType faces so record
// values keep their characters; WithFonts swaps in faces for other scripts.
// Output is deterministic for a given document: the PDF creation and
// modification dates come from the document's generation timestamp.
package pdf
