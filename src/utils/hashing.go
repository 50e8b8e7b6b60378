package utils

import (
	"encoding/binary"
	"hash/fnv"
	"strings"

	"github.com/schollz/mnemonicode"
)

// StringToReadableHash maps s to a few words, e.g. "tiger-apollo-salad".
// The same s always gives the same words.
func StringToReadableHash(s string) string {
	h := fnv.New32a()
	h.Write([]byte(s))
	bs := make([]byte, 4)
	binary.LittleEndian.PutUint32(bs, h.Sum32())
	result := mnemonicode.EncodeWordList([]string{}, bs)
	return strings.Join(result, "-")
}

// Shorten keeps the first head and last tail runes of s joined by "...".
func Shorten(s string, head, tail int) string {
	r := []rune(s)
	if len(r) <= head+tail {
		return s
	}
	return string(r[:head]) + "..." + string(r[len(r)-tail:])
}

// Truncate keeps at most n runes of s.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
