package classify

import (
	"strings"
	"unicode/utf8"
)

// isSeparator reports whether r splits a page title from its site name.
func isSeparator(r rune) bool {
	switch r {
	case '-', '|', '–', '—':
		return true
	}
	return false
}

// lastSegment returns the trimmed text after the rightmost separator in
// title. It fails when there is no separator or the trailing text is blank.
//
// "A -- B" splits on the second dash and yields "B"; "A -" yields nothing.
func lastSegment(title string) (string, bool) {
	for i := len(title); i > 0; {
		r, size := utf8.DecodeLastRuneInString(title[:i])
		i -= size
		if !isSeparator(r) {
			continue
		}
		site := strings.TrimSpace(title[i+size:])
		return site, site != ""
	}
	return "", false
}
