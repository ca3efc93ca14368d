package extract

import (
	"strings"
	"unicode/utf8"
)

// extractPlain returns content as a string with lenient decoding: invalid
// UTF-8 sequences are dropped rather than reported, mirroring how resume
// uploads with stray encodings should degrade instead of failing.
func extractPlain(content []byte) (string, error) {
	if !utf8.Valid(content) {
		return strings.ToValidUTF8(string(content), ""), nil
	}
	return string(content), nil
}
