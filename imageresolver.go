package forme

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"

	"github.com/danmolitor/forme/internal/pdfwriter"
)

// imageResolver implements layoutengine.ImageResolver over the data URIs
// spec.md section 3 allows an Image node's src to carry. Resolved paths
// are out of scope: spec.md section 5 is explicit that the engine itself
// performs no I/O, so a non-data-URI src is an ImageError rather than a
// filesystem read.
type imageResolver struct {
	mu      sync.Mutex
	decoded map[string]image.Image
}

func newImageResolver() *imageResolver {
	return &imageResolver{decoded: make(map[string]image.Image)}
}

func (r *imageResolver) Resolve(src string) (handle string, w, h float64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if img, ok := r.decoded[src]; ok {
		b := img.Bounds()
		return src, float64(b.Dx()), float64(b.Dy()), nil
	}

	data, decodeErr := decodeDataURI(src)
	if decodeErr != nil {
		return "", 0, 0, &ImageError{Src: src, Err: decodeErr}
	}
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "", 0, 0, &ImageError{Src: src, Err: fmt.Errorf("unrecognized image format")}
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", 0, 0, &ImageError{Src: src, Err: err}
	}
	r.decoded[src] = img
	b := img.Bounds()
	return src, float64(b.Dx()), float64(b.Dy()), nil
}

// decodeDataURI extracts the raw bytes from a "data:<mime>;base64,<payload>"
// string, the wire form spec.md section 3 specifies for Image.src.
func decodeDataURI(src string) ([]byte, error) {
	const prefix = "data:"
	if !strings.HasPrefix(src, prefix) {
		return nil, fmt.Errorf("src is not a data URI (path resolution is an external collaborator's job)")
	}
	comma := strings.IndexByte(src, ',')
	if comma < 0 {
		return nil, fmt.Errorf("malformed data URI: no comma separator")
	}
	meta, payload := src[len(prefix):comma], src[comma+1:]
	if !strings.Contains(meta, "base64") {
		return nil, fmt.Errorf("unsupported data URI encoding (only base64 is supported)")
	}
	return base64.StdEncoding.DecodeString(payload)
}

// allXObjects decodes every resolved image's pixels into the flat
// DeviceRGB buffer internal/pdfwriter embeds directly, re-encoding
// regardless of source format rather than passing original bytes through —
// simpler than branching per-format at the PDF layer.
func (r *imageResolver) allXObjects() map[string]pdfwriter.ImageXObject {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]pdfwriter.ImageXObject, len(r.decoded))
	for key, img := range r.decoded {
		bounds := img.Bounds()
		w, h := bounds.Dx(), bounds.Dy()
		rgb := make([]byte, w*h*3)
		alpha := make([]byte, w*h)
		hasAlpha := false
		i := 0
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				cr, cg, cb, ca := img.At(x, y).RGBA()
				rgb[i*3] = byte(cr >> 8)
				rgb[i*3+1] = byte(cg >> 8)
				rgb[i*3+2] = byte(cb >> 8)
				a := byte(ca >> 8)
				alpha[i] = a
				if a != 255 {
					hasAlpha = true
				}
				i++
			}
		}
		xobj := pdfwriter.ImageXObject{Width: w, Height: h, RGB: rgb}
		if hasAlpha {
			xobj.Alpha = alpha
		}
		out[key] = xobj
	}
	return out
}
