package inspect

import (
	"bytes"
	"sort"
)

// lineIndex maps byte offsets in a source to 1-based line numbers.
type lineIndex struct {
	content []byte
	starts  []int
}

// newLineIndex records the start offset of every line. Both LF and CRLF
// endings are handled since the '\r' stays part of the previous line.
func newLineIndex(content []byte) *lineIndex {
	starts := []int{0}
	for idx, char := range content {
		if char == '\n' {
			starts = append(starts, idx+1)
		}
	}
	return &lineIndex{content: content, starts: starts}
}

// lineAt returns the 1-based line containing offset, or 0 when the offset
// is out of range.
func (li *lineIndex) lineAt(offset int) int {
	if offset < 0 || offset > len(li.content) {
		return 0
	}
	return sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	})
}

// line returns the content of a 1-based line without its line ending.
func (li *lineIndex) line(n int) []byte {
	if n < 1 || n > len(li.starts) {
		return nil
	}
	start := li.starts[n-1]
	end := len(li.content)
	if n < len(li.starts) {
		end = li.starts[n] - 1
	}
	return bytes.TrimSuffix(li.content[start:end], []byte("\r"))
}

// lineEnd returns the offset just past the line ending of a 1-based line.
func (li *lineIndex) lineEnd(n int) int {
	if n < len(li.starts) {
		return li.starts[n]
	}
	return len(li.content)
}

// nextContentLine returns the first line at or after offset that is not
// blank, or 0 when there is none.
func (li *lineIndex) nextContentLine(offset int) int {
	for n := li.lineAt(offset); n >= 1 && n <= len(li.starts); n++ {
		if len(bytes.TrimSpace(li.line(n))) > 0 {
			return n
		}
	}
	return 0
}
