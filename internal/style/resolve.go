// Package style resolves the raw, all-optional model.Style carried by each
// node into a fully populated ResolvedStyle, folding parent inheritance and
// engine defaults the way spec.md section 4.2 describes: start from the
// parent's inherited subset (or engine defaults at the root), then overlay
// the node's own non-nil fields, inherited and not.
package style

import "github.com/danmolitor/forme/internal/model"

// ResolvedStyle has every style field populated; no optionals remain.
type ResolvedStyle struct {
	// Inherited
	Color          model.Color
	FontFamily     string
	FontSize       float64
	FontWeight     int
	Italic         bool
	LineHeight     float64
	TextAlign      model.TextAlign
	LetterSpacing  float64
	TextDecoration model.TextDecoration
	TextTransform  model.TextTransform
	MinWidowLines  int
	MinOrphanLines int

	// Non-inherited
	Width           model.Dimension
	Height          model.Dimension
	MinWidth        model.Dimension
	MaxWidth        model.Dimension
	MinHeight       model.Dimension
	MaxHeight       model.Dimension
	Padding         model.Edges
	Margin          model.Edges
	BorderWidth     model.Edges
	BorderColor     model.Color
	BorderRadius    model.Corners
	BackgroundColor model.Color
	HasBackground   bool
	FlexDirection   model.FlexDirection
	FlexWrap        model.FlexWrap
	JustifyContent  model.JustifyContent
	AlignItems      model.AlignValue
	AlignContent    model.AlignValue
	FlexGrow        float64
	FlexShrink      float64
	FlexBasis       model.Dimension
	Gap             float64
	RowGap          float64
	ColumnGap       float64
	Wrap            bool
	Position        model.Position
	// Top/Right/Bottom/Left stay pointers post-resolution: an absolutely
	// positioned child anchors from whichever edges were actually set
	// (spec.md section 4.5 Absolute positioning), and nil vs. an explicit 0
	// are not the same offset.
	Top    *float64
	Right  *float64
	Bottom *float64
	Left   *float64
}

// Defaults returns the engine's root ResolvedStyle, per spec.md section 3:
// Helvetica 12, weight 400, line height 1.2, black, widow/orphan minima 2.
func Defaults() ResolvedStyle {
	return ResolvedStyle{
		Color:          model.Black,
		FontFamily:     "Helvetica",
		FontSize:       12,
		FontWeight:     400,
		LineHeight:     1.2,
		TextAlign:      model.TextLeft,
		TextDecoration: model.DecorationNone,
		TextTransform:  model.TransformNone,
		MinWidowLines:  2,
		MinOrphanLines: 2,
		Width:          model.Auto(),
		Height:         model.Auto(),
		MaxWidth:       model.Auto(),
		MaxHeight:      model.Auto(),
		BorderColor:    model.Black,
		BackgroundColor: model.White,
		FlexDirection:  model.FlexColumn,
		FlexWrap:       model.NoWrap,
		JustifyContent: model.JustifyStart,
		AlignItems:     model.AlignStretch,
		AlignContent:   model.AlignStart,
		FlexShrink:     1,
		FlexBasis:      model.Auto(),
		Wrap:           true,
		Position:       model.PositionRelative,
	}
}

// Resolve folds node's own style over parent's inherited subset. parent is
// the already-resolved style of the enclosing node (Defaults() at the root).
func Resolve(node *model.Style, parent ResolvedStyle) ResolvedStyle {
	r := inheritedSubset(parent)
	if node == nil {
		return r
	}
	overlayInherited(&r, node)
	overlayNonInherited(&r, node)
	return r
}

// inheritedSubset returns a ResolvedStyle carrying only the fields spec.md
// section 3 marks inherited; non-inherited fields start from Defaults() so
// a node that sets neither gets sane engine defaults rather than a zero box.
func inheritedSubset(parent ResolvedStyle) ResolvedStyle {
	r := Defaults()
	r.Color = parent.Color
	r.FontFamily = parent.FontFamily
	r.FontSize = parent.FontSize
	r.FontWeight = parent.FontWeight
	r.Italic = parent.Italic
	r.LineHeight = parent.LineHeight
	r.TextAlign = parent.TextAlign
	r.LetterSpacing = parent.LetterSpacing
	r.TextDecoration = parent.TextDecoration
	r.TextTransform = parent.TextTransform
	r.MinWidowLines = parent.MinWidowLines
	r.MinOrphanLines = parent.MinOrphanLines
	return r
}

func overlayInherited(r *ResolvedStyle, s *model.Style) {
	if s.Color != nil {
		r.Color = *s.Color
	}
	if s.FontFamily != nil {
		r.FontFamily = *s.FontFamily
	}
	if s.FontSize != nil {
		r.FontSize = *s.FontSize
	}
	if s.FontWeight != nil {
		r.FontWeight = *s.FontWeight
	}
	if s.FontStyle != nil {
		r.Italic = *s.FontStyle == "italic"
	}
	if s.LineHeight != nil {
		r.LineHeight = *s.LineHeight
	}
	if s.TextAlign != nil {
		r.TextAlign = *s.TextAlign
	}
	if s.LetterSpacing != nil {
		r.LetterSpacing = *s.LetterSpacing
	}
	if s.TextDecoration != nil {
		r.TextDecoration = *s.TextDecoration
	}
	if s.TextTransform != nil {
		r.TextTransform = *s.TextTransform
	}
	if s.MinWidowLines != nil {
		r.MinWidowLines = *s.MinWidowLines
	}
	if s.MinOrphanLines != nil {
		r.MinOrphanLines = *s.MinOrphanLines
	}
}

func overlayNonInherited(r *ResolvedStyle, s *model.Style) {
	if s.Width != nil {
		r.Width = *s.Width
	}
	if s.Height != nil {
		r.Height = *s.Height
	}
	if s.MinWidth != nil {
		r.MinWidth = *s.MinWidth
	}
	if s.MaxWidth != nil {
		r.MaxWidth = *s.MaxWidth
	}
	if s.MinHeight != nil {
		r.MinHeight = *s.MinHeight
	}
	if s.MaxHeight != nil {
		r.MaxHeight = *s.MaxHeight
	}
	if s.Padding != nil {
		r.Padding = *s.Padding
	}
	if s.Margin != nil {
		r.Margin = *s.Margin
	}
	if s.BorderWidth != nil {
		r.BorderWidth = *s.BorderWidth
	}
	if s.BorderColor != nil {
		r.BorderColor = *s.BorderColor
	}
	if s.BorderRadius != nil {
		r.BorderRadius = *s.BorderRadius
	}
	if s.BackgroundColor != nil {
		r.BackgroundColor = *s.BackgroundColor
		r.HasBackground = true
	}
	if s.FlexDirection != nil {
		r.FlexDirection = *s.FlexDirection
	}
	if s.FlexWrap != nil {
		r.FlexWrap = *s.FlexWrap
	}
	if s.JustifyContent != nil {
		r.JustifyContent = *s.JustifyContent
	}
	if s.AlignItems != nil {
		r.AlignItems = *s.AlignItems
	}
	if s.AlignContent != nil {
		r.AlignContent = *s.AlignContent
	}
	if s.FlexGrow != nil {
		r.FlexGrow = *s.FlexGrow
	}
	if s.FlexShrink != nil {
		r.FlexShrink = *s.FlexShrink
	}
	if s.FlexBasis != nil {
		r.FlexBasis = *s.FlexBasis
	}
	if s.Gap != nil {
		r.Gap = *s.Gap
		r.RowGap = *s.Gap
		r.ColumnGap = *s.Gap
	}
	if s.RowGap != nil {
		r.RowGap = *s.RowGap
	}
	if s.ColumnGap != nil {
		r.ColumnGap = *s.ColumnGap
	}
	if s.Wrap != nil {
		r.Wrap = *s.Wrap
	}
	if s.Position != nil {
		r.Position = *s.Position
	}
	if s.Top != nil {
		r.Top = s.Top
	}
	if s.Right != nil {
		r.Right = s.Right
	}
	if s.Bottom != nil {
		r.Bottom = s.Bottom
	}
	if s.Left != nil {
		r.Left = s.Left
	}
}
