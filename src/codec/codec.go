// Package codec turns whisper text into the string kept in the blob
// collection and back. It hides text from a casual look at the store and
// nothing more: there is no key and no secrecy.
package codec

import (
	"encoding/base64"
	"unicode/utf8"
)

// Placeholder is what Decode returns for anything Encode could not have
// produced.
const Placeholder = "— encrypted —"

// Encode is standard base64 over the UTF-8 bytes of the text.
func Encode(plaintext string) string {
	return base64.StdEncoding.EncodeToString([]byte(plaintext))
}

// Decode reverses Encode. It never fails.
func Decode(encoded string) string {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || !utf8.Valid(b) {
		return Placeholder
	}
	return string(b)
}
