package model

// Enum-valued style fields. Serialized as CamelCase strings per spec.md
// section 6 ("Row", "SpaceBetween", ...).

type FlexDirection string

const (
	FlexColumn      FlexDirection = "Column"
	FlexRow         FlexDirection = "Row"
	FlexRowReverse  FlexDirection = "RowReverse"
	FlexColumnRev   FlexDirection = "ColumnReverse"
)

type FlexWrap string

const (
	NoWrap      FlexWrap = "NoWrap"
	Wrap        FlexWrap = "Wrap"
	WrapReverse FlexWrap = "WrapReverse"
)

type JustifyContent string

const (
	JustifyStart        JustifyContent = "FlexStart"
	JustifyEnd          JustifyContent = "FlexEnd"
	JustifyCenter       JustifyContent = "Center"
	JustifySpaceBetween JustifyContent = "SpaceBetween"
	JustifySpaceAround  JustifyContent = "SpaceAround"
	JustifySpaceEvenly  JustifyContent = "SpaceEvenly"
)

type AlignValue string

const (
	AlignStart    AlignValue = "FlexStart"
	AlignEnd      AlignValue = "FlexEnd"
	AlignCenter   AlignValue = "Center"
	AlignStretch  AlignValue = "Stretch"
	AlignBaseline AlignValue = "Baseline"
)

type TextAlign string

const (
	TextLeft    TextAlign = "Left"
	TextCenter  TextAlign = "Center"
	TextRight   TextAlign = "Right"
	TextJustify TextAlign = "Justify"
)

type TextTransform string

const (
	TransformNone       TextTransform = "None"
	TransformUppercase  TextTransform = "Uppercase"
	TransformLowercase  TextTransform = "Lowercase"
	TransformCapitalize TextTransform = "Capitalize"
)

type TextDecoration string

const (
	DecorationNone          TextDecoration = "None"
	DecorationUnderline     TextDecoration = "Underline"
	DecorationLineThrough   TextDecoration = "LineThrough"
)

type Position string

const (
	PositionRelative Position = "Relative"
	PositionAbsolute Position = "Absolute"
)

// Style holds every style field a Node may carry, all optional (nil means
// "not set here" for the resolver in internal/style to fold). Unknown JSON
// keys are ignored by the decoder (forward compatibility, spec.md 4.1).
type Style struct {
	// Inherited fields
	Color          *Color          `json:"color,omitempty"`
	FontFamily     *string         `json:"fontFamily,omitempty"`
	FontSize       *float64        `json:"fontSize,omitempty"`
	FontWeight     *int            `json:"fontWeight,omitempty"`
	FontStyle      *string         `json:"fontStyle,omitempty"` // "normal" | "italic"
	LineHeight     *float64        `json:"lineHeight,omitempty"`
	TextAlign      *TextAlign      `json:"textAlign,omitempty"`
	LetterSpacing  *float64        `json:"letterSpacing,omitempty"`
	TextDecoration *TextDecoration `json:"textDecoration,omitempty"`
	TextTransform  *TextTransform  `json:"textTransform,omitempty"`
	MinWidowLines  *int            `json:"minWidowLines,omitempty"`
	MinOrphanLines *int            `json:"minOrphanLines,omitempty"`

	// Non-inherited layout/visual fields
	Width           *Dimension      `json:"width,omitempty"`
	Height          *Dimension      `json:"height,omitempty"`
	MinWidth        *Dimension      `json:"minWidth,omitempty"`
	MaxWidth        *Dimension      `json:"maxWidth,omitempty"`
	MinHeight       *Dimension      `json:"minHeight,omitempty"`
	MaxHeight       *Dimension      `json:"maxHeight,omitempty"`
	Padding         *Edges          `json:"padding,omitempty"`
	Margin          *Edges          `json:"margin,omitempty"`
	BorderWidth     *Edges          `json:"borderWidth,omitempty"`
	BorderColor     *Color          `json:"borderColor,omitempty"`
	BorderRadius    *Corners        `json:"borderRadius,omitempty"`
	BackgroundColor *Color          `json:"backgroundColor,omitempty"`
	FlexDirection   *FlexDirection  `json:"flexDirection,omitempty"`
	FlexWrap        *FlexWrap       `json:"flexWrap,omitempty"`
	JustifyContent  *JustifyContent `json:"justifyContent,omitempty"`
	AlignItems      *AlignValue     `json:"alignItems,omitempty"`
	AlignContent    *AlignValue     `json:"alignContent,omitempty"`
	FlexGrow        *float64        `json:"flexGrow,omitempty"`
	FlexShrink      *float64        `json:"flexShrink,omitempty"`
	FlexBasis       *Dimension      `json:"flexBasis,omitempty"`
	Gap             *float64        `json:"gap,omitempty"`
	RowGap          *float64        `json:"rowGap,omitempty"`
	ColumnGap       *float64        `json:"columnGap,omitempty"`
	Wrap            *bool           `json:"wrap,omitempty"` // View breakability
	Position        *Position       `json:"position,omitempty"`
	Top             *float64        `json:"top,omitempty"`
	Right           *float64        `json:"right,omitempty"`
	Bottom          *float64        `json:"bottom,omitempty"`
	Left            *float64        `json:"left,omitempty"`
}
