// Package svgpath parses the minimal SVG subset spec.md section 4.6
// requires: path "d" attribute commands (M/L/C/Q/Z) plus the basic shape
// elements (rect, circle, ellipse, line, polyline, polygon), reduced to a
// flat sequence of path operations the PDF serializer can emit directly as
// content-stream path operators.
//
// A rasterizing library (srwiley/oksvg+rasterx, used elsewhere in the
// retrieval pack for raster image decoding) was considered and rejected:
// its public API draws straight to a pixel buffer and never exposes the
// parsed vector command sequence this package needs to hand to a PDF path
// operator emitter. A hand-written regexp/strconv tokenizer, in the style
// of the pack's other small attribute-regex parsers, is the idiomatic fit.
package svgpath

import (
	"regexp"
	"strconv"
	"strings"
)

// OpKind discriminates one path operation.
type OpKind int

const (
	OpMoveTo OpKind = iota
	OpLineTo
	OpCurveTo // cubic Bezier: two control points + endpoint
	OpQuadTo  // quadratic Bezier: one control point + endpoint
	OpClose
)

// Op is one flattened path operation; Points holds 1 point for MoveTo/
// LineTo, 2 for QuadTo, 3 for CurveTo, 0 for Close.
type Op struct {
	Kind   OpKind
	Points []Point
}

type Point struct{ X, Y float64 }

var numberRe = regexp.MustCompile(`-?\d+(?:\.\d+)?(?:[eE]-?\d+)?`)

// ParsePathData tokenizes an SVG "d" attribute into flattened path
// operations. Relative commands (lowercase) are resolved against the
// current point; arcs ("A"/"a") are not supported (spec.md's SVG subset
// excludes them) and are skipped with their point consumed as a line-to,
// a documented tolerated approximation.
func ParsePathData(d string) []Op {
	var ops []Op
	var cur, start Point
	tokens := tokenizeCommands(d)
	for _, tok := range tokens {
		cmd := tok.cmd
		nums := tok.nums
		relative := cmd >= 'a' && cmd <= 'z'
		upper := toUpperCmd(cmd)

		switch upper {
		case 'M':
			for i := 0; i+1 < len(nums); i += 2 {
				p := Point{nums[i], nums[i+1]}
				if relative {
					p.X += cur.X
					p.Y += cur.Y
				}
				if i == 0 {
					ops = append(ops, Op{Kind: OpMoveTo, Points: []Point{p}})
					start = p
				} else {
					ops = append(ops, Op{Kind: OpLineTo, Points: []Point{p}})
				}
				cur = p
			}
		case 'L':
			for i := 0; i+1 < len(nums); i += 2 {
				p := Point{nums[i], nums[i+1]}
				if relative {
					p.X += cur.X
					p.Y += cur.Y
				}
				ops = append(ops, Op{Kind: OpLineTo, Points: []Point{p}})
				cur = p
			}
		case 'H':
			for _, n := range nums {
				p := cur
				if relative {
					p.X += n
				} else {
					p.X = n
				}
				ops = append(ops, Op{Kind: OpLineTo, Points: []Point{p}})
				cur = p
			}
		case 'V':
			for _, n := range nums {
				p := cur
				if relative {
					p.Y += n
				} else {
					p.Y = n
				}
				ops = append(ops, Op{Kind: OpLineTo, Points: []Point{p}})
				cur = p
			}
		case 'C':
			for i := 0; i+5 < len(nums); i += 6 {
				c1 := Point{nums[i], nums[i+1]}
				c2 := Point{nums[i+2], nums[i+3]}
				end := Point{nums[i+4], nums[i+5]}
				if relative {
					c1.X += cur.X
					c1.Y += cur.Y
					c2.X += cur.X
					c2.Y += cur.Y
					end.X += cur.X
					end.Y += cur.Y
				}
				ops = append(ops, Op{Kind: OpCurveTo, Points: []Point{c1, c2, end}})
				cur = end
			}
		case 'Q':
			for i := 0; i+3 < len(nums); i += 4 {
				c1 := Point{nums[i], nums[i+1]}
				end := Point{nums[i+2], nums[i+3]}
				if relative {
					c1.X += cur.X
					c1.Y += cur.Y
					end.X += cur.X
					end.Y += cur.Y
				}
				ops = append(ops, Op{Kind: OpQuadTo, Points: []Point{c1, end}})
				cur = end
			}
		case 'A':
			// rx ry rotation large-arc sweep x y: only the endpoint is kept.
			for i := 0; i+6 < len(nums); i += 7 {
				p := Point{nums[i+5], nums[i+6]}
				if relative {
					p.X += cur.X
					p.Y += cur.Y
				}
				ops = append(ops, Op{Kind: OpLineTo, Points: []Point{p}})
				cur = p
			}
		case 'Z':
			ops = append(ops, Op{Kind: OpClose})
			cur = start
		}
	}
	return ops
}

type cmdTokens struct {
	cmd  byte
	nums []float64
}

func tokenizeCommands(d string) []cmdTokens {
	var out []cmdTokens
	i := 0
	for i < len(d) {
		c := d[i]
		if isCommandLetter(c) {
			j := i + 1
			for j < len(d) && !isCommandLetter(d[j]) {
				j++
			}
			nums := parseNumbers(d[i+1 : j])
			out = append(out, cmdTokens{cmd: c, nums: nums})
			i = j
		} else {
			i++
		}
	}
	return out
}

func isCommandLetter(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'Q', 'q', 'Z', 'z', 'A', 'a', 'S', 's', 'T', 't':
		return true
	}
	return false
}

func parseNumbers(s string) []float64 {
	matches := numberRe.FindAllString(s, -1)
	nums := make([]float64, 0, len(matches))
	for _, m := range matches {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			nums = append(nums, v)
		}
	}
	return nums
}

func toUpperCmd(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 32
	}
	return c
}

var pathDRe = regexp.MustCompile(`d="([^"]*)"`)

// ExtractPathData pulls the "d" attribute value out of markup containing a
// single <path> element, which is what internal/layoutengine stores as an
// Svg node's content for the common case. Markup with no <path> element
// (pure basic-shape markup) yields an empty string; the caller falls back
// to ExtractShapes.
func ExtractPathData(markup string) string {
	m := pathDRe.FindStringSubmatch(markup)
	if m == nil {
		return ""
	}
	return m[1]
}

// Shape is a basic SVG shape element reduced to its attributes.
type Shape struct {
	Kind   string // "rect" | "circle" | "ellipse" | "line" | "polyline" | "polygon"
	Attrs  map[string]float64
	Points []Point // for polyline/polygon
}

var attrRe = regexp.MustCompile(`(\w+)="([^"]*)"`)

// ParseAttributes extracts numeric attributes from one SVG element's tag
// text (the bytes between '<' and the closing '>'), in the style of the
// pack's other attribute-regex parsers.
func ParseAttributes(tag string) map[string]float64 {
	attrs := make(map[string]float64)
	for _, m := range attrRe.FindAllStringSubmatch(tag, -1) {
		name, val := m[1], strings.TrimSuffix(m[2], "px")
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			attrs[name] = f
		}
	}
	return attrs
}

var shapeTagRe = regexp.MustCompile(`<(rect|circle|ellipse|line|polyline|polygon)\b([^>]*)/?>`)
var pointsAttrRe = regexp.MustCompile(`points="([^"]*)"`)

// ExtractShapes scans markup for the basic shape elements spec.md's SVG
// subset supports, skipping <path> (handled separately by ExtractPathData).
func ExtractShapes(markup string) []Shape {
	var shapes []Shape
	for _, m := range shapeTagRe.FindAllStringSubmatch(markup, -1) {
		kind, tag := m[1], m[2]
		s := Shape{Kind: kind, Attrs: ParseAttributes(tag)}
		if pm := pointsAttrRe.FindStringSubmatch(tag); pm != nil {
			s.Points = parsePointList(pm[1])
		}
		shapes = append(shapes, s)
	}
	return shapes
}

func parsePointList(s string) []Point {
	nums := parseNumbers(s)
	pts := make([]Point, 0, len(nums)/2)
	for i := 0; i+1 < len(nums); i += 2 {
		pts = append(pts, Point{nums[i], nums[i+1]})
	}
	return pts
}

// ShapeToPathOps converts a basic shape to path operations a rect/circle/
// ellipse/line/polyline/polygon element in spec.md's SVG subset.
func ShapeToPathOps(s Shape) []Op {
	switch s.Kind {
	case "rect":
		x, y, w, h := s.Attrs["x"], s.Attrs["y"], s.Attrs["width"], s.Attrs["height"]
		return []Op{
			{Kind: OpMoveTo, Points: []Point{{x, y}}},
			{Kind: OpLineTo, Points: []Point{{x + w, y}}},
			{Kind: OpLineTo, Points: []Point{{x + w, y + h}}},
			{Kind: OpLineTo, Points: []Point{{x, y + h}}},
			{Kind: OpClose},
		}
	case "line":
		return []Op{
			{Kind: OpMoveTo, Points: []Point{{s.Attrs["x1"], s.Attrs["y1"]}}},
			{Kind: OpLineTo, Points: []Point{{s.Attrs["x2"], s.Attrs["y2"]}}},
		}
	case "polyline", "polygon":
		if len(s.Points) == 0 {
			return nil
		}
		ops := []Op{{Kind: OpMoveTo, Points: []Point{s.Points[0]}}}
		for _, p := range s.Points[1:] {
			ops = append(ops, Op{Kind: OpLineTo, Points: []Point{p}})
		}
		if s.Kind == "polygon" {
			ops = append(ops, Op{Kind: OpClose})
		}
		return ops
	case "circle", "ellipse":
		cx, cy := s.Attrs["cx"], s.Attrs["cy"]
		rx, ry := s.Attrs["rx"], s.Attrs["ry"]
		if s.Kind == "circle" {
			rx = s.Attrs["r"]
			ry = rx
		}
		// Four cubic Bezier arcs approximate a full ellipse; 0.5523 is the
		// standard kappa constant for a quarter-circle Bezier approximation.
		const k = 0.5523
		return []Op{
			{Kind: OpMoveTo, Points: []Point{{cx + rx, cy}}},
			{Kind: OpCurveTo, Points: []Point{{cx + rx, cy + ry*k}, {cx + rx*k, cy + ry}, {cx, cy + ry}}},
			{Kind: OpCurveTo, Points: []Point{{cx - rx*k, cy + ry}, {cx - rx, cy + ry*k}, {cx - rx, cy}}},
			{Kind: OpCurveTo, Points: []Point{{cx - rx, cy - ry*k}, {cx - rx*k, cy - ry}, {cx, cy - ry}}},
			{Kind: OpCurveTo, Points: []Point{{cx + rx*k, cy - ry}, {cx + rx, cy - ry*k}, {cx + rx, cy}}},
			{Kind: OpClose},
		}
	}
	return nil
}
