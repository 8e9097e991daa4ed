// Package docops models the edit operations accepted by the document
// service's batch update endpoint.
//
// Every style type is a closed struct with explicit fields. Fields reports
// which of them are set, which is what the service expects in the "fields"
// mask of an update request.
package docops

import "strings"

// UnitPoint is the only dimension unit emitted by the converter.
const UnitPoint = "PT"

// Named paragraph styles for headings.
const (
	NamedStyleHeading1 = "HEADING_1"
	NamedStyleHeading2 = "HEADING_2"
	NamedStyleHeading3 = "HEADING_3"
	NamedStyleHeading4 = "HEADING_4"
	NamedStyleHeading5 = "HEADING_5"
	NamedStyleHeading6 = "HEADING_6"
)

// Dimension is a magnitude in a given unit.
type Dimension struct {
	Magnitude float64 `json:"magnitude"`
	Unit      string  `json:"unit"`
}

// Points returns a Dimension measured in points.
func Points(magnitude float64) *Dimension {
	return &Dimension{Magnitude: magnitude, Unit: UnitPoint}
}

// RGBColor is a color with channels in the range [0, 1].
type RGBColor struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

// Color wraps an RGB color.
type Color struct {
	RGBColor *RGBColor `json:"rgbColor,omitempty"`
}

// OptionalColor is a color that may be transparent when Color is nil.
type OptionalColor struct {
	Color *Color `json:"color,omitempty"`
}

// RGB returns an OptionalColor for the given channels.
func RGB(red, green, blue float64) *OptionalColor {
	return &OptionalColor{Color: &Color{RGBColor: &RGBColor{Red: red, Green: green, Blue: blue}}}
}

// Link is a hyperlink target.
type Link struct {
	URL string `json:"url"`
}

// WeightedFontFamily names a font family.
type WeightedFontFamily struct {
	FontFamily string `json:"fontFamily"`
}

// ParagraphBorder is one border of a paragraph.
type ParagraphBorder struct {
	Width *Dimension     `json:"width,omitempty"`
	Color *OptionalColor `json:"color,omitempty"`
}

// ParagraphStyle holds the paragraph-level attributes the converter sets.
type ParagraphStyle struct {
	NamedStyleType  string           `json:"namedStyleType,omitempty"`
	IndentFirstLine *Dimension       `json:"indentFirstLine,omitempty"`
	IndentStart     *Dimension       `json:"indentStart,omitempty"`
	BorderLeft      *ParagraphBorder `json:"borderLeft,omitempty"`
}

// Fields returns the names of the set fields in declaration order.
func (s ParagraphStyle) Fields() []string {
	var fields []string
	if s.NamedStyleType != "" {
		fields = append(fields, "namedStyleType")
	}
	if s.IndentFirstLine != nil {
		fields = append(fields, "indentFirstLine")
	}
	if s.IndentStart != nil {
		fields = append(fields, "indentStart")
	}
	if s.BorderLeft != nil {
		fields = append(fields, "borderLeft")
	}
	return fields
}

// IsZero reports whether no field is set.
func (s ParagraphStyle) IsZero() bool {
	return len(s.Fields()) == 0
}

// TextStyle holds the character-level attributes the converter sets.
// Boolean attributes are only ever switched on, so false means unset.
type TextStyle struct {
	Bold               bool                `json:"bold,omitempty"`
	Italic             bool                `json:"italic,omitempty"`
	Strikethrough      bool                `json:"strikethrough,omitempty"`
	Underline          bool                `json:"underline,omitempty"`
	FontSize           *Dimension          `json:"fontSize,omitempty"`
	WeightedFontFamily *WeightedFontFamily `json:"weightedFontFamily,omitempty"`
	BackgroundColor    *OptionalColor      `json:"backgroundColor,omitempty"`
	ForegroundColor    *OptionalColor      `json:"foregroundColor,omitempty"`
	Link               *Link               `json:"link,omitempty"`
}

// Fields returns the names of the set fields in declaration order.
func (s TextStyle) Fields() []string {
	var fields []string
	if s.Bold {
		fields = append(fields, "bold")
	}
	if s.Italic {
		fields = append(fields, "italic")
	}
	if s.Strikethrough {
		fields = append(fields, "strikethrough")
	}
	if s.Underline {
		fields = append(fields, "underline")
	}
	if s.FontSize != nil {
		fields = append(fields, "fontSize")
	}
	if s.WeightedFontFamily != nil {
		fields = append(fields, "weightedFontFamily")
	}
	if s.BackgroundColor != nil {
		fields = append(fields, "backgroundColor")
	}
	if s.ForegroundColor != nil {
		fields = append(fields, "foregroundColor")
	}
	if s.Link != nil {
		fields = append(fields, "link")
	}
	return fields
}

// IsZero reports whether no field is set.
func (s TextStyle) IsZero() bool {
	return len(s.Fields()) == 0
}

// BulletPreset selects the glyphs of a list.
type BulletPreset string

const (
	BulletDiscCircleSquare    BulletPreset = "BULLET_DISC_CIRCLE_SQUARE"
	NumberedDecimalAlphaRoman BulletPreset = "NUMBERED_DECIMAL_ALPHA_ROMAN"
)

// fieldMask joins field names the way the service expects them.
func fieldMask(fields []string) string {
	return strings.Join(fields, ",")
}
