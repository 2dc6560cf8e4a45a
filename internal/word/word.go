// Package word normalizes and validates flagged-word input. Every word string
// passes through here before any store lookup.
package word

import (
	"strings"
	"unicode/utf8"

	dErrors "wordwatch/pkg/domain-errors"
)

// maxLen bounds the normalized word length in code points. Words must be
// 1..254 code points long.
const maxLen = 255

// reserved lists document field names that can never be flagged words.
// They collide with structural metadata and have dedicated accessors.
var reserved = []string{
	"_id",
	"discord_server_id",
	"discord_user_id",
	"total_words",
	"total_flagged_words",
}

// CheckReserved rejects words that name a structural document field. This is
// a policy rejection, not a validation failure: the caller must use the
// dedicated accessor instead.
func CheckReserved(w string) error {
	for _, key := range reserved {
		if w == key {
			return dErrors.Newf(dErrors.CodeReservedWord,
				"%q is a reserved field, use the dedicated accessor", w)
		}
	}
	return nil
}

// Normalize trims whitespace and lowercases. The raw input must be 1..254
// code points long before trimming, and the result must not be blank.
// Normalize is idempotent over its own output.
func Normalize(w string) (string, error) {
	if n := utf8.RuneCountInString(w); n == 0 || n >= maxLen {
		return "", dErrors.Newf(dErrors.CodeValidation,
			"word length must be between 1 and %d characters: %q", maxLen-1, w)
	}
	normalized := strings.ToLower(strings.TrimSpace(w))
	if normalized == "" {
		return "", dErrors.Newf(dErrors.CodeValidation,
			"word must not be blank: %q", w)
	}
	return normalized, nil
}

// NormalizeAll normalizes a batch, rejecting reserved names both in raw and
// normalized form so they never enter a words map. An empty batch is an
// error, not a no-op.
func NormalizeAll(words []string) ([]string, error) {
	if len(words) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "list of words must not be empty")
	}
	out := make([]string, 0, len(words))
	for _, w := range words {
		if err := CheckReserved(w); err != nil {
			return nil, err
		}
		normalized, err := Normalize(w)
		if err != nil {
			return nil, err
		}
		if err := CheckReserved(normalized); err != nil {
			return nil, err
		}
		out = append(out, normalized)
	}
	return out, nil
}
