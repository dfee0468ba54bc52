package forme

import (
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	var buf []byte
	pw := &byteSliceWriter{&buf}
	if err := png.Encode(pw, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf)
}

type byteSliceWriter struct{ buf *[]byte }

func (w *byteSliceWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}

func TestImageResolverDecodesDataURI(t *testing.T) {
	r := newImageResolver()
	src := pngDataURI(t, 4, 3)

	handle, w, h, err := r.Resolve(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handle != src {
		t.Fatalf("expected handle to be the src itself, got %q", handle)
	}
	if w != 4 || h != 3 {
		t.Fatalf("expected 4x3, got %vx%v", w, h)
	}

	xobjs := r.allXObjects()
	xo, ok := xobjs[src]
	if !ok {
		t.Fatalf("expected an XObject for %q", src)
	}
	if xo.Width != 4 || xo.Height != 3 {
		t.Fatalf("expected 4x3 XObject, got %dx%d", xo.Width, xo.Height)
	}
	if len(xo.RGB) != 4*3*3 {
		t.Fatalf("expected %d RGB bytes, got %d", 4*3*3, len(xo.RGB))
	}
	if xo.Alpha != nil {
		t.Fatalf("expected no alpha channel for a fully opaque image")
	}
}

func TestImageResolverRejectsNonDataURI(t *testing.T) {
	r := newImageResolver()
	_, _, _, err := r.Resolve("/etc/passwd")
	var ierr *ImageError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected *ImageError, got %v (%T)", err, err)
	}
}

func TestImageResolverCachesBySrc(t *testing.T) {
	r := newImageResolver()
	src := pngDataURI(t, 2, 2)

	if _, _, _, err := r.Resolve(src); err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	if _, _, _, err := r.Resolve(src); err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if len(r.allXObjects()) != 1 {
		t.Fatalf("expected a single cached entry, got %d", len(r.allXObjects()))
	}
}
