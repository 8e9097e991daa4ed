package convert

import "unicode/utf16"

// textLen returns the length of s in UTF-16 code units.
func textLen(s string) int {
	n := 0
	for _, r := range s {
		if size := utf16.RuneLen(r); size > 0 {
			n += size
			continue
		}
		n++
	}
	return n
}
