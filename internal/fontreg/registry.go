// Package fontreg resolves (family, weight, italic) style triples to a
// concrete text.Font, backed by registered TrueType files with a fallback
// chain down to the standard 14 — the same resolve-with-fallback shape
// internal/style's cascade (resolve.go) uses for style inheritance, applied
// here to font lookup instead.
package fontreg

import (
	"fmt"

	"github.com/danmolitor/forme/internal/model"
	"github.com/danmolitor/forme/internal/text"
)

// face is one registered TrueType font.
type face struct {
	family string
	weight int
	italic bool
	tt     *text.TrueType
	font   text.Font
}

// Registry resolves style triples to fonts, preferring registered TrueType
// faces and falling back to the standard 14 when nothing registered
// matches closely enough.
type Registry struct {
	faces []face
}

func New() *Registry {
	return &Registry{}
}

// Register parses a TrueType font file's bytes and adds it under the given
// family/weight/italic triple. The caller decodes the bytes carried inline
// in a model.FontSpec's Src (a data URI or bare base64 string).
func (r *Registry) Register(spec model.FontSpec, data []byte) error {
	tt, err := text.ParseTrueType(data)
	if err != nil {
		return fmt.Errorf("fontreg: parsing %q: %w", spec.Src, err)
	}
	r.faces = append(r.faces, face{
		family: spec.Family,
		weight: spec.Weight,
		italic: spec.Italic,
		tt:     tt,
		font:   text.NewTrueTypeFont(tt),
	})
	return nil
}

// Resolve implements layoutengine.FontResolver: exact family/weight/italic
// match first, then closest registered weight in the same family and
// italic-ness, then any registered face in the family, then a standard-14
// font at the nearest weight, then plain Helvetica.
func (r *Registry) Resolve(family string, weight int, italic bool) (text.Font, error) {
	if f, ok := r.exactMatch(family, weight, italic); ok {
		return f.font, nil
	}
	if f, ok := r.closestWeightMatch(family, weight, italic); ok {
		return f.font, nil
	}
	if f, ok := r.anyFamilyMatch(family); ok {
		return f.font, nil
	}
	base, ok := text.ResolveStandard14(family, weight, italic)
	if !ok {
		base = text.Helvetica
	}
	return text.NewStandard14Font(base), nil
}

func (r *Registry) exactMatch(family string, weight int, italic bool) (face, bool) {
	for _, f := range r.faces {
		if f.family == family && f.weight == weight && f.italic == italic {
			return f, true
		}
	}
	return face{}, false
}

func (r *Registry) closestWeightMatch(family string, weight int, italic bool) (face, bool) {
	var best face
	found := false
	bestDelta := 0
	for _, f := range r.faces {
		if f.family != family || f.italic != italic {
			continue
		}
		delta := f.weight - weight
		if delta < 0 {
			delta = -delta
		}
		if !found || delta < bestDelta {
			best, bestDelta, found = f, delta, true
		}
	}
	return best, found
}

func (r *Registry) anyFamilyMatch(family string) (face, bool) {
	for _, f := range r.faces {
		if f.family == family {
			return f, true
		}
	}
	return face{}, false
}
