// Package encoding repairs text that was exported as UTF-8 but decoded as a
// single-byte charset somewhere upstream (the classic "Ã©" for "é" artifact).
package encoding

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var (
	// ErrUnrepresentable means the text holds runes the charset cannot encode,
	// so it cannot be a single-byte misreading.
	ErrUnrepresentable = errors.New("text contains characters outside the charset")
	// ErrInvalidUTF8 means the recovered bytes do not form valid UTF-8.
	ErrInvalidUTF8 = errors.New("recovered bytes are not valid UTF-8")
)

// RepairError reports text that no charset in the chain could recover.
type RepairError struct {
	Text    string
	Charset string
	Err     error
}

func (e *RepairError) Error() string {
	return fmt.Sprintf("cannot repair %q via %s: %v", preview(e.Text), e.Charset, e.Err)
}

func (e *RepairError) Unwrap() error {
	return e.Err
}

type charset struct {
	name    string
	charmap *charmap.Charmap
}

// Tried in order; Windows-1252 covers the curly quotes and euro sign that
// Latin-1 lacks.
var chain = []charset{
	{name: "ISO-8859-1", charmap: charmap.ISO8859_1},
	{name: "Windows-1252", charmap: charmap.Windows1252},
}

// Repair re-encodes text to single-byte charset bytes and decodes those as
// UTF-8. On failure it returns the original text together with a *RepairError
// so the caller can pick a policy.
func Repair(text string) (string, error) {
	var last error
	for _, cs := range chain {
		fixed, err := reinterpret(text, cs.charmap)
		if err == nil {
			return fixed, nil
		}
		last = &RepairError{Text: text, Charset: cs.name, Err: err}
	}
	return text, last
}

func reinterpret(text string, cm *charmap.Charmap) (string, error) {
	raw, err := cm.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnrepresentable, err)
	}
	if !utf8.Valid(raw) {
		return "", ErrInvalidUTF8
	}
	return string(raw), nil
}

func preview(s string) string {
	const max = 32
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
