package converter

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/penwyp/go-inbox-csv/internal/core/constants"
)

// ConversationName derives the display name for a conversation folder.
// The name is the folder name up to the first underscore; an all-digit
// prefix has no readable name and becomes "Unknown<N>", where N is
// unknownCount+1. The returned count is the value to pass for the next folder.
//
//	ConversationName("johnsmith_12345", 0) // "johnsmith", 0
//	ConversationName("100847392", 0)       // "Unknown1", 1
func ConversationName(folder string, unknownCount int) (string, int) {
	prefix, _, _ := strings.Cut(folder, "_")
	if !isDigits(prefix) {
		return prefix, unknownCount
	}
	unknownCount++
	return constants.UnknownName + strconv.Itoa(unknownCount), unknownCount
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
