package forme

import "fmt"

// ParseError reports malformed input JSON or an unrecognized node kind.
// Fatal: no render is attempted once parsing fails, per spec.md section 7.
type ParseError struct {
	Context string
	Err     error
}

func (e *ParseError) Error() string { return fmt.Sprintf("ParseError: %s: %v", e.Context, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// FontError reports unreadable custom font bytes or a required TrueType
// table missing. Fatal: spec.md section 7 is explicit that a requested
// font has "no fallback substitute."
type FontError struct {
	Family string
	Err    error
}

func (e *FontError) Error() string {
	return fmt.Sprintf("FontError: font %q: %v", e.Family, e.Err)
}
func (e *FontError) Unwrap() error { return e.Err }

// ImageError reports unrecognized or malformed image bytes. Non-fatal: the
// caller continues with an ImagePlaceholder draw command and the error is
// recorded as a warning rather than returned as a hard failure.
type ImageError struct {
	Src string
	Err error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("ImageError: %s: %v", e.Src, e.Err)
}
func (e *ImageError) Unwrap() error { return e.Err }

// LayoutWarning reports degenerate input (zero column width, a cyclic auto
// dimension) that was clamped and continued rather than failing the
// render.
type LayoutWarning struct {
	NodeKind string
	Message  string
}

func (e *LayoutWarning) Error() string {
	return fmt.Sprintf("LayoutWarning: %s: %s", e.NodeKind, e.Message)
}

// InternalError reports a violated invariant mid-render — a bug in this
// module, not a problem with the input.
type InternalError struct {
	Context string
}

func (e *InternalError) Error() string { return fmt.Sprintf("InternalError: %s", e.Context) }
