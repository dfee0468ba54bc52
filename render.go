package forme

import (
	"encoding/base64"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/danmolitor/forme/internal/fontreg"
	"github.com/danmolitor/forme/internal/layoutengine"
	"github.com/danmolitor/forme/internal/logging"
	"github.com/danmolitor/forme/internal/pdfwriter"
)

// RenderOptions configures one Render/RenderWithLayout call. Each call
// builds its own *fontreg.Registry from Document.Fonts and takes its logger
// from here, rather than this package keeping process-wide state, per
// SPEC_FULL.md's Open Question decision 4.
type RenderOptions struct {
	Logger *zap.Logger
}

// Render lays out doc and serializes it to PDF 1.7 bytes. Parse and font
// errors are fatal (spec.md section 7); image and layout issues degrade
// gracefully: each is logged at Warn through opts.Logger, and only
// RenderWithLayout also returns them as its warnings.
func Render(doc *Document, opts RenderOptions) ([]byte, error) {
	pdf, _, err := renderAll(doc, opts)
	return pdf, err
}

// RenderWithLayout is Render plus the LayoutInfo ground-truth tree
// (spec.md section 6) and any accumulated warnings.
func RenderWithLayout(doc *Document, opts RenderOptions) (pdfBytes []byte, layout LayoutInfo, warnings error, err error) {
	pdf, result, err := renderAll(doc, opts)
	if err != nil {
		return nil, LayoutInfo{}, nil, err
	}
	return pdf, result.layout, result.warnings, nil
}

type renderResult struct {
	layout   LayoutInfo
	warnings error
}

func renderAll(doc *Document, opts RenderOptions) ([]byte, renderResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	registry := fontreg.New()
	for _, spec := range doc.Fonts {
		data, err := decodeFontSrc(spec.Src)
		if err != nil {
			return nil, renderResult{}, &FontError{Family: spec.Family, Err: err}
		}
		if err := registry.Register(spec, data); err != nil {
			return nil, renderResult{}, &FontError{Family: spec.Family, Err: err}
		}
	}

	images := newImageResolver()
	eng := &layoutengine.Engine{Fonts: registry, Images: images}

	laidOut, err := eng.Layout(doc)
	if err != nil {
		return nil, renderResult{}, &InternalError{Context: err.Error()}
	}

	var warnings error
	for _, w := range laidOut.Warnings {
		logger.Warn("degraded render path",
			zap.String("node", string(w.NodeKind)),
			zap.String("message", w.Message),
		)
		warnings = multierr.Append(warnings, &LayoutWarning{NodeKind: string(w.NodeKind), Message: w.Message})
	}

	bookmarks := collectBookmarks(laidOut)

	pdfBytes, err := pdfwriter.Assemble(laidOut, pdfwriter.AssembleOptions{
		Metadata:  doc.Metadata,
		Images:    images.allXObjects(),
		Bookmarks: bookmarks,
	})
	if err != nil {
		return nil, renderResult{}, &InternalError{Context: err.Error()}
	}

	return pdfBytes, renderResult{layout: buildLayoutInfo(laidOut), warnings: warnings}, nil
}

func collectBookmarks(doc *layoutengine.LayoutDocument) []pdfwriter.Bookmark {
	var marks []pdfwriter.Bookmark
	for pageIdx, page := range doc.Pages {
		for _, el := range page.Elements {
			collectBookmarksFrom(el, pageIdx, &marks)
		}
	}
	return marks
}

func collectBookmarksFrom(el *layoutengine.LayoutElement, pageIdx int, marks *[]pdfwriter.Bookmark) {
	if el.Bookmark != "" {
		*marks = append(*marks, pdfwriter.Bookmark{Title: el.Bookmark, Page: pageIdx, Y: el.Y})
	}
	for _, child := range el.Children {
		collectBookmarksFrom(child, pageIdx, marks)
	}
}

// decodeFontSrc accepts either a data URI or a bare base64 string, per
// spec.md section 4.1's FontSpec.src.
func decodeFontSrc(src string) ([]byte, error) {
	if strings.HasPrefix(src, "data:") {
		comma := strings.IndexByte(src, ',')
		if comma < 0 {
			return nil, fmt.Errorf("malformed font data URI")
		}
		return base64.StdEncoding.DecodeString(src[comma+1:])
	}
	return base64.StdEncoding.DecodeString(src)
}
