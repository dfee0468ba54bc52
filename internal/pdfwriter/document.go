package pdfwriter

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"strings"

	"github.com/danmolitor/forme/internal/layoutengine"
	"github.com/danmolitor/forme/internal/model"
	"github.com/danmolitor/forme/internal/text"
)

// resourceName turns a zero-based index into a PDF resource dictionary key
// (F1, F2, ... or Im1, Im2, ...).
func resourceName(prefix string, i int) string {
	return prefix + strconv.Itoa(i+1)
}

// ImageXObject is raw decoded pixel data ready to embed as a PDF Image
// XObject: 8-bit DeviceRGB, optionally with a separate alpha channel
// emitted as an /SMask. The caller (forme.imageResolver) decodes whatever
// source format it accepts; this package only knows how to write pixels.
type ImageXObject struct {
	Width, Height int
	RGB           []byte // len == Width*Height*3
	Alpha         []byte // len == Width*Height, nil if fully opaque
}

// Bookmark is one outline entry: a destination page index (0-based) and
// title, collected from Node.Bookmark during layout.
type Bookmark struct {
	Title string
	Page  int
	Y     float64
}

// AssembleOptions bundles everything document assembly needs beyond the
// laid-out pages themselves.
type AssembleOptions struct {
	Metadata  model.Metadata
	Images    map[string]ImageXObject // keyed by LayoutElement.Draw.ImageHandle
	Bookmarks []Bookmark
}

// Assemble walks a complete LayoutDocument and writes a full PDF 1.7 file:
// one object per font/image/page/content-stream, a Pages tree, an Outline
// tree if there are bookmarks, and the Catalog/trailer, in the object-table
// style cdvelop-tinypdf's docpdf.go builds incrementally as it walks cells
// and pages.
func Assemble(doc *layoutengine.LayoutDocument, opts AssembleOptions) ([]byte, error) {
	w := New()

	totalPages := len(doc.Pages)
	for pageIdx, page := range doc.Pages {
		substitutePageNumbers(page.Elements, pageIdx+1, totalPages)
	}

	fontRefs, fontObjs := collectAndEmitFonts(w, doc)
	xobjectRefs, xobjectObjs, err := emitImageXObjects(w, doc, opts.Images)
	if err != nil {
		return nil, err
	}

	// Page object numbers are reserved up front, not assigned as each page is
	// written, so an internal link (href starting with "#") on an earlier
	// page can /Dest into a later one before that page's object exists yet.
	pagesRootObj := w.Reserve()
	pageObjs := make([]int, len(doc.Pages))
	for i := range doc.Pages {
		pageObjs[i] = w.Reserve()
	}

	destsByTitle := make(map[string]Bookmark, len(opts.Bookmarks))
	for _, m := range opts.Bookmarks {
		destsByTitle[m.Title] = m
	}

	for pageIdx, page := range doc.Pages {
		cb := NewContentBuilder(page.Height, fontRefs, xobjectRefs)
		for _, el := range page.Elements {
			cb.EmitElement(el)
		}
		contentObj := w.NewObject()
		w.line("<<")
		w.line("/Filter /FlateDecode")
		w.Stream(Deflate(cb.Bytes()))
		w.EndObject()

		var links []pageLink
		for _, el := range page.Elements {
			collectLinks(el, &links)
		}
		annotObjs := make([]int, 0, len(links))
		for _, link := range links {
			annotObjs = append(annotObjs, emitLinkAnnotation(w, link, page.Height, pageObjs, destsByTitle))
		}

		w.PatchObject(pageObjs[pageIdx])
		w.line("<<")
		w.line("/Type /Page")
		w.Writef("/Parent %d 0 R", pagesRootObj)
		w.Writef("/MediaBox [0 0 %.2f %.2f]", page.Width, page.Height)
		w.Writef("/Contents %d 0 R", contentObj)
		w.line("/Resources <<")
		w.line(resourcesSubDict("Font", fontRefs, fontObjs))
		w.line(resourcesSubDict("XObject", xobjectRefs, xobjectObjs))
		w.line(">>")
		if len(annotObjs) > 0 {
			w.Write("/Annots [")
			for _, obj := range annotObjs {
				w.Writef("%d 0 R ", obj)
			}
			w.line("]")
		}
		w.line(">>")
		w.EndObject()
	}

	w.PatchObject(pagesRootObj)
	w.line("<<")
	w.line("/Type /Pages")
	w.Writef("/Count %d", len(pageObjs))
	w.Write("/Kids [")
	for _, p := range pageObjs {
		w.Writef("%d 0 R ", p)
	}
	w.line("]")
	w.line(">>")
	w.EndObject()

	outlineObj := 0
	if len(opts.Bookmarks) > 0 {
		outlineObj = emitOutline(w, opts.Bookmarks, pageObjs)
	}

	infoObj := emitInfo(w, opts.Metadata)

	rootObj := w.NewObject()
	w.line("<<")
	w.line("/Type /Catalog")
	w.Writef("/Pages %d 0 R", pagesRootObj)
	if outlineObj != 0 {
		w.Writef("/Outlines %d 0 R", outlineObj)
	}
	if opts.Metadata.Lang != "" {
		w.Writef("/Lang (%s)", Escape(opts.Metadata.Lang))
	}
	w.line(">>")
	w.EndObject()

	hash := sha256.Sum256(contentFingerprint(doc))
	return w.Finish(rootObj, infoObj, hash[:]), nil
}

func contentFingerprint(doc *layoutengine.LayoutDocument) []byte {
	var sum []byte
	for _, page := range doc.Pages {
		sum = append(sum, byte(len(page.Elements)))
	}
	return sum
}

func emitInfo(w *Writer, meta model.Metadata) int {
	obj := w.NewObject()
	w.line("<<")
	if meta.Title != "" {
		w.Writef("/Title (%s)", Escape(meta.Title))
	}
	if meta.Author != "" {
		w.Writef("/Author (%s)", Escape(meta.Author))
	}
	if meta.Subject != "" {
		w.Writef("/Subject (%s)", Escape(meta.Subject))
	}
	if meta.Creator != "" {
		w.Writef("/Creator (%s)", Escape(meta.Creator))
	}
	w.line(">>")
	w.EndObject()
	return obj
}

// collectAndEmitFonts walks every GlyphRun across the document, emits one
// PDF font dictionary per distinct Font.Name(), and returns (font name ->
// resource name, resource name -> object number) — the first feeds
// ContentBuilder's /Tf operator lookups, the second feeds each page's
// Resources dictionary.
func collectAndEmitFonts(w *Writer, doc *layoutengine.LayoutDocument) (map[string]string, map[string]int) {
	seen := make(map[string]text.Font)
	for _, page := range doc.Pages {
		for _, el := range page.Elements {
			collectFonts(el, seen)
		}
	}
	fontRefs := make(map[string]string)
	fontObjs := make(map[string]int)
	i := 0
	for name, font := range seen {
		resName := resourceName("F", i)
		i++
		base, tt := font.Source()
		var obj int
		if tt != nil {
			obj = w.EmitTrueTypeFont(tt)
		} else {
			obj = w.EmitStandard14Font(base)
		}
		fontRefs[name] = resName
		fontObjs[resName] = obj
	}
	return fontRefs, fontObjs
}

func collectFonts(el *layoutengine.LayoutElement, seen map[string]text.Font) {
	if el.Draw.Kind == layoutengine.DrawTextLine {
		for _, run := range el.Draw.GlyphRuns {
			if run.Font != nil {
				seen[run.Font.Name()] = run.Font
			}
		}
	}
	for _, child := range el.Children {
		collectFonts(child, seen)
	}
}

// emitImageXObjects returns (handle -> resource name, resource name ->
// object number) so both the content-stream operators and the page's
// Resources dictionary can reference the same image by a stable name.
func emitImageXObjects(w *Writer, doc *layoutengine.LayoutDocument, images map[string]ImageXObject) (map[string]string, map[string]int, error) {
	seen := make(map[string]bool)
	for _, page := range doc.Pages {
		for _, el := range page.Elements {
			collectImageHandles(el, seen)
		}
	}
	refs := make(map[string]string)
	objs := make(map[string]int)
	i := 0
	for handle := range seen {
		img, ok := images[handle]
		if !ok {
			continue
		}
		resName := resourceName("Im", i)
		i++
		refs[handle] = resName
		objs[resName] = w.emitImageXObject(img)
	}
	return refs, objs, nil
}

// pageLink is one link-annotation candidate in page-local coordinates,
// gathered from either a block LayoutElement.LinkHref (spec.md section 4.6)
// or a single inline GlyphRun.Href within a text line.
type pageLink struct {
	href       string
	x, y, w, h float64
}

// collectLinks walks el's subtree collecting every href, at block level and
// at the per-run level within DrawTextLine content, reconstructing each
// run's horizontal span the same way emitTextLine advances x run by run.
func collectLinks(el *layoutengine.LayoutElement, links *[]pageLink) {
	if el.LinkHref != "" {
		*links = append(*links, pageLink{href: el.LinkHref, x: el.X, y: el.Y, w: el.Width, h: el.Height})
	}
	if el.Draw.Kind == layoutengine.DrawTextLine {
		x := el.X
		for _, run := range el.Draw.GlyphRuns {
			width := estimateRunWidth(run)
			if run.Href != "" {
				*links = append(*links, pageLink{href: run.Href, x: x, y: el.Y, w: width, h: el.Height})
			}
			x += width
		}
	}
	for _, child := range el.Children {
		collectLinks(child, links)
	}
}

// emitLinkAnnotation writes one /Link annotation per spec.md section 4.6: an
// href starting with "#" names a bookmark title and becomes an internal
// /Dest, anything else becomes an external /URI action. A dest naming a
// bookmark that was never collected (typo, dropped heading) degrades to a
// borderless no-op link rather than a malformed reference.
func emitLinkAnnotation(w *Writer, link pageLink, pageHeight float64, pageObjs []int, destsByTitle map[string]Bookmark) int {
	lly := pageHeight - link.y - link.h
	ury := pageHeight - link.y
	obj := w.NewObject()
	w.line("<<")
	w.line("/Type /Annot")
	w.line("/Subtype /Link")
	w.Writef("/Rect [%.2f %.2f %.2f %.2f]", link.x, lly, link.x+link.w, ury)
	w.line("/Border [0 0 0]")
	if title, ok := strings.CutPrefix(link.href, "#"); ok {
		if mark, found := destsByTitle[title]; found && mark.Page >= 0 && mark.Page < len(pageObjs) {
			w.Writef("/Dest [%d 0 R /XYZ 0 %.2f 0]", pageObjs[mark.Page], mark.Y)
		}
	} else {
		w.line("/A <<")
		w.line("/Type /Action")
		w.line("/S /URI")
		w.Writef("/URI (%s)", Escape(link.href))
		w.line(">>")
	}
	w.line(">>")
	w.EndObject()
	return obj
}

func collectImageHandles(el *layoutengine.LayoutElement, seen map[string]bool) {
	if el.Draw.Kind == layoutengine.DrawImage && el.Draw.ImageHandle != "" {
		seen[el.Draw.ImageHandle] = true
	}
	for _, child := range el.Children {
		collectImageHandles(child, seen)
	}
}

func (w *Writer) emitImageXObject(img ImageXObject) int {
	var smaskObj int
	if len(img.Alpha) == img.Width*img.Height {
		smaskObj = w.emitSMask(img)
	}

	obj := w.NewObject()
	w.line("<<")
	w.line("/Type /XObject")
	w.line("/Subtype /Image")
	w.Writef("/Width %d", img.Width)
	w.Writef("/Height %d", img.Height)
	w.line("/ColorSpace /DeviceRGB")
	w.line("/BitsPerComponent 8")
	if smaskObj != 0 {
		w.Writef("/SMask %d 0 R", smaskObj)
	}
	w.line("/Filter /FlateDecode")
	w.Stream(Deflate(img.RGB))
	w.EndObject()
	return obj
}

// emitSMask writes img.Alpha as a separate grayscale Image XObject, per PDF
// 1.7 section 11.6.5.1 (soft masks for transparency): one byte per pixel,
// DeviceGray, referenced from the color image's /SMask entry.
func (w *Writer) emitSMask(img ImageXObject) int {
	obj := w.NewObject()
	w.line("<<")
	w.line("/Type /XObject")
	w.line("/Subtype /Image")
	w.Writef("/Width %d", img.Width)
	w.Writef("/Height %d", img.Height)
	w.line("/ColorSpace /DeviceGray")
	w.line("/BitsPerComponent 8")
	w.line("/Filter /FlateDecode")
	w.Stream(Deflate(img.Alpha))
	w.EndObject()
	return obj
}

// resourcesSubDict writes one Resources sub-dictionary (/Font or
// /XObject): nameToResource maps a lookup key (font name or image handle)
// to its resource name, resourceToObj maps that resource name to its PDF
// object number. Iterating nameToResource's values avoids emitting the
// same resource name twice.
func resourcesSubDict(key string, nameToResource map[string]string, resourceToObj map[string]int) string {
	written := make(map[string]bool, len(resourceToObj))
	s := "/" + key + " <<"
	for _, resName := range nameToResource {
		if written[resName] {
			continue
		}
		written[resName] = true
		s += fmt.Sprintf(" /%s %d 0 R", resName, resourceToObj[resName])
	}
	return s + " >>"
}

func emitOutline(w *Writer, marks []Bookmark, pageObjs []int) int {
	root := w.Reserve()
	children := make([]int, 0, len(marks))
	for _, m := range marks {
		if m.Page < 0 || m.Page >= len(pageObjs) {
			continue
		}
		obj := w.NewObject()
		w.line("<<")
		w.Writef("/Title (%s)", Escape(m.Title))
		w.Writef("/Parent %d 0 R", root)
		w.Writef("/Dest [%d 0 R /XYZ 0 %.2f 0]", pageObjs[m.Page], m.Y)
		w.line(">>")
		w.EndObject()
		children = append(children, obj)
	}
	w.PatchObject(root)
	w.line("<<")
	w.Writef("/Count %d", len(children))
	if len(children) > 0 {
		w.Writef("/First %d 0 R", children[0])
		w.Writef("/Last %d 0 R", children[len(children)-1])
	}
	w.line(">>")
	w.EndObject()
	return root
}

// substitutePageNumbers replaces {{pageNumber}}/{{totalPages}} tokens in
// every GlyphRun's text, now that the complete page count is known, per
// spec.md section 6.
func substitutePageNumbers(elements []*layoutengine.LayoutElement, pageNumber, totalPages int) {
	for _, el := range elements {
		if el.Draw.Kind == layoutengine.DrawTextLine {
			for i := range el.Draw.GlyphRuns {
				run := &el.Draw.GlyphRuns[i]
				if text.HasPlaceholder(run.Text) {
					run.Text = text.SubstitutePlaceholders(run.Text, pageNumber, totalPages)
				}
			}
		}
		if text.HasPlaceholder(el.TextContent) {
			el.TextContent = text.SubstitutePlaceholders(el.TextContent, pageNumber, totalPages)
		}
		substitutePageNumbers(el.Children, pageNumber, totalPages)
	}
}
