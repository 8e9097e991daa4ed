package docops

import (
	"encoding/json"
	"fmt"
)

// Kind identifies the variant of an Operation.
type Kind string

// Operation kinds, named after the request they serialize to.
const (
	KindInsertText        Kind = "insertText"
	KindSetParagraphStyle Kind = "updateParagraphStyle"
	KindSetCharacterStyle Kind = "updateTextStyle"
	KindSetListMarker     Kind = "createParagraphBullets"
)

// Compile-time interface checks.
var (
	_ Operation = InsertText{}
	_ Operation = SetParagraphStyle{}
	_ Operation = SetCharacterStyle{}
	_ Operation = SetListMarker{}
)

// Operation is one edit request. The set of implementations is closed.
type Operation interface {
	// Kind returns the variant tag.
	Kind() Kind

	// Span returns the affected range. For InsertText the range covers
	// the inserted text.
	Span() Range

	isOperation()
}

// Range is a half-open offset range [StartIndex, EndIndex).
type Range struct {
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
}

// Len returns the number of offsets covered.
func (r Range) Len() int {
	return r.EndIndex - r.StartIndex
}

// Valid reports whether the range is non-negative and ordered.
func (r Range) Valid() bool {
	return r.StartIndex >= 0 && r.StartIndex <= r.EndIndex
}

// String implements fmt.Stringer.
func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.StartIndex, r.EndIndex)
}

// Location is an insertion point.
type Location struct {
	Index int `json:"index"`
}

// InsertText inserts Text at Index.
type InsertText struct {
	Index int
	Text  string

	// Length is the length of Text in document offsets. It is set by the
	// converter because the document counts UTF-16 code units, not bytes.
	Length int
}

// Kind implements Operation.
func (InsertText) Kind() Kind { return KindInsertText }

// Span implements Operation.
func (op InsertText) Span() Range {
	return Range{StartIndex: op.Index, EndIndex: op.Index + op.Length}
}

func (InsertText) isOperation() {}

// MarshalJSON encodes the operation as an insertText request.
func (op InsertText) MarshalJSON() ([]byte, error) {
	type body struct {
		Location Location `json:"location"`
		Text     string   `json:"text"`
	}
	return json.Marshal(map[Kind]body{
		KindInsertText: {Location: Location{Index: op.Index}, Text: op.Text},
	})
}

// SetParagraphStyle applies a paragraph style to Range.
type SetParagraphStyle struct {
	Range Range
	Style ParagraphStyle
}

// Kind implements Operation.
func (SetParagraphStyle) Kind() Kind { return KindSetParagraphStyle }

// Span implements Operation.
func (op SetParagraphStyle) Span() Range { return op.Range }

func (SetParagraphStyle) isOperation() {}

// MarshalJSON encodes the operation as an updateParagraphStyle request.
func (op SetParagraphStyle) MarshalJSON() ([]byte, error) {
	type body struct {
		Range          Range          `json:"range"`
		ParagraphStyle ParagraphStyle `json:"paragraphStyle"`
		Fields         string         `json:"fields"`
	}
	return json.Marshal(map[Kind]body{
		KindSetParagraphStyle: {Range: op.Range, ParagraphStyle: op.Style, Fields: fieldMask(op.Style.Fields())},
	})
}

// SetCharacterStyle applies a text style to Range.
type SetCharacterStyle struct {
	Range Range
	Style TextStyle
}

// Kind implements Operation.
func (SetCharacterStyle) Kind() Kind { return KindSetCharacterStyle }

// Span implements Operation.
func (op SetCharacterStyle) Span() Range { return op.Range }

func (SetCharacterStyle) isOperation() {}

// MarshalJSON encodes the operation as an updateTextStyle request.
func (op SetCharacterStyle) MarshalJSON() ([]byte, error) {
	type body struct {
		Range     Range     `json:"range"`
		TextStyle TextStyle `json:"textStyle"`
		Fields    string    `json:"fields"`
	}
	return json.Marshal(map[Kind]body{
		KindSetCharacterStyle: {Range: op.Range, TextStyle: op.Style, Fields: fieldMask(op.Style.Fields())},
	})
}

// SetListMarker turns the paragraphs in Range into list items.
type SetListMarker struct {
	Range  Range
	Preset BulletPreset
}

// Kind implements Operation.
func (SetListMarker) Kind() Kind { return KindSetListMarker }

// Span implements Operation.
func (op SetListMarker) Span() Range { return op.Range }

func (SetListMarker) isOperation() {}

// MarshalJSON encodes the operation as a createParagraphBullets request.
func (op SetListMarker) MarshalJSON() ([]byte, error) {
	type body struct {
		Range        Range        `json:"range"`
		BulletPreset BulletPreset `json:"bulletPreset"`
	}
	return json.Marshal(map[Kind]body{
		KindSetListMarker: {Range: op.Range, BulletPreset: op.Preset},
	})
}

// BatchUpdate is the request body of a batch update call.
type BatchUpdate struct {
	Requests []Operation `json:"requests"`
}

// NewBatchUpdate wraps ops in a request body. A nil slice encodes as an
// empty array.
func NewBatchUpdate(ops []Operation) BatchUpdate {
	if ops == nil {
		ops = []Operation{}
	}
	return BatchUpdate{Requests: ops}
}

// Encode renders the body as JSON followed by a newline. Compact output
// is a single line; otherwise it is indented by two spaces.
func (b BatchUpdate) Encode(compact bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if compact {
		data, err = json.Marshal(b)
	} else {
		data, err = json.MarshalIndent(b, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("encode batch update: %w", err)
	}
	return append(data, '\n'), nil
}

// Count tallies operations by kind.
func Count(ops []Operation) map[Kind]int {
	counts := make(map[Kind]int, 4)
	for _, op := range ops {
		counts[op.Kind()]++
	}
	return counts
}
