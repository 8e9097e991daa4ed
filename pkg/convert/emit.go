package convert

import "github.com/yaklabco/gdocmark/pkg/docops"

// Emit returns one InsertText for the whole document text followed by one
// style operation per span, in span order. Overlapping spans are emitted as
// they are; the service applies them in order.
func Emit(doc Document) []docops.Operation {
	ops := make([]docops.Operation, 0, len(doc.Spans)+1)
	ops = append(ops, docops.InsertText{
		Index:  doc.Start,
		Text:   doc.Text,
		Length: textLen(doc.Text),
	})
	for _, span := range doc.Spans {
		ops = append(ops, span.Operation())
	}
	return ops
}
