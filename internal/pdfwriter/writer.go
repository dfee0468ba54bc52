// Package pdfwriter serializes a LayoutDocument directly into PDF 1.7
// bytes: no general-purpose PDF toolkit is used (spec.md section 4.6/9
// forbids one), so this package owns the object table, xref, trailer,
// content-stream operator emission, font embedding, bookmarks, and link
// annotations from scratch.
package pdfwriter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Writer accumulates a PDF file body one object at a time, in the same
// sequential append-only style as cdvelop-tinypdf's DocPDF.out/newobj:
// object numbers are assigned in emission order and their byte offsets are
// recorded for the xref table.
type Writer struct {
	buf     bytes.Buffer
	offsets []int // offsets[n] is the byte offset of object n; index 0 unused
	nextObj int
}

// New starts a fresh PDF body with the required header, including the
// binary marker bytes per PDF 1.7 section 7.5.2 so naive tools that sniff
// for binary content treat the file correctly.
func New() *Writer {
	w := &Writer{offsets: []int{0}, nextObj: 0}
	w.line("%PDF-1.7")
	w.buf.Write([]byte{'%', 0xE2, 0xE3, 0xCF, 0xD3, '\n'})
	return w
}

func (w *Writer) line(s string) {
	w.buf.WriteString(s)
	w.buf.WriteByte('\n')
}

// NewObject reserves the next object number and writes its "N 0 obj"
// opener. The caller writes the object body and must call EndObject.
func (w *Writer) NewObject() int {
	w.nextObj++
	n := w.nextObj
	for len(w.offsets) <= n {
		w.offsets = append(w.offsets, 0)
	}
	w.offsets[n] = w.buf.Len()
	w.line(fmt.Sprintf("%d 0 obj", n))
	return n
}

// Write appends a raw line to the current object's body.
func (w *Writer) Write(s string) { w.line(s) }

// Writef appends a formatted line to the current object's body.
func (w *Writer) Writef(format string, args ...any) { w.line(fmt.Sprintf(format, args...)) }

// EndObject closes the object opened by the most recent NewObject.
func (w *Writer) EndObject() { w.line("endobj") }

// Stream writes a stream dictionary's /Length entry, then the stream body
// between "stream"/"endstream" keywords, per PDF section 7.3.8.
func (w *Writer) Stream(data []byte) {
	w.Writef("/Length %d", len(data))
	w.line(">>")
	w.line("stream")
	w.buf.Write(data)
	if len(data) == 0 || data[len(data)-1] != '\n' {
		w.buf.WriteByte('\n')
	}
	w.line("endstream")
}

// Reserve allocates an object number without writing it yet, for forward
// references (e.g. a Catalog referencing a Pages tree built afterward).
func (w *Writer) Reserve() int {
	w.nextObj++
	n := w.nextObj
	for len(w.offsets) <= n {
		w.offsets = append(w.offsets, 0)
	}
	return n
}

// PatchObject begins object n (previously obtained via Reserve) at the
// writer's current position. Only valid for the next unwritten reserved
// object in sequence, matching this writer's append-only model.
func (w *Writer) PatchObject(n int) {
	w.offsets[n] = w.buf.Len()
	w.line(fmt.Sprintf("%d 0 obj", n))
}

// Escape backslash-escapes a PDF literal string's special characters, per
// cdvelop-tinypdf's escape().
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "(", `\(`)
	s = strings.ReplaceAll(s, ")", `\)`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	return s
}

// Literal wraps s as a PDF literal string "(...)".
func Literal(s string) string { return "(" + Escape(s) + ")" }

// Finish writes the xref table and trailer and returns the complete PDF
// byte stream. contentHash is the document's deterministic content digest
// (spec.md section 5 Determinism); when it lacks enough entropy (an empty
// or near-empty document) a random UUID contributes to the /ID instead, per
// SPEC_FULL.md's domain-stack note on google/uuid.
func (w *Writer) Finish(rootObj, infoObj int, contentHash []byte) []byte {
	xrefOffset := w.buf.Len()
	count := len(w.offsets)
	w.line("xref")
	w.line(fmt.Sprintf("0 %d", count))
	w.line("0000000000 65535 f ")
	for i := 1; i < count; i++ {
		w.line(fmt.Sprintf("%010d 00000 n ", w.offsets[i]))
	}
	w.line("trailer")
	w.line("<<")
	w.Writef("/Size %d", count)
	w.Writef("/Root %d 0 R", rootObj)
	if infoObj > 0 {
		w.Writef("/Info %d 0 R", infoObj)
	}
	id := documentID(contentHash)
	w.Writef("/ID [<%s> <%s>]", id, id)
	w.line(">>")
	w.line("startxref")
	w.line(fmt.Sprintf("%d", xrefOffset))
	w.line("%%EOF")
	return w.buf.Bytes()
}

// documentID derives the trailer /ID hex string from the content hash, or
// from a fresh UUID when the hash is degenerate (all-zero / too short),
// which happens for documents with no meaningfully hashable content.
func documentID(hash []byte) string {
	if len(hash) >= 16 && !allZero(hash) {
		return fmt.Sprintf("%X", hash[:16])
	}
	u := uuid.New()
	return fmt.Sprintf("%X", u[:])
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
