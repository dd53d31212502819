package errors

import (
	"strings"
	"unicode"
)

// ValidateDocumentID validates a stored document identifier.
// IDs end up in file names, bolt keys and URLs, so the rules are conservative:
//   - No empty IDs
//   - Maximum length of 128 characters
//   - Only letters, digits, '-', '_' and '.'
//   - No leading '.'
func ValidateDocumentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "document id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "document id too long (max 128 characters)")
	}
	if strings.HasPrefix(id, ".") {
		return New(ErrCodeInvalidInput, "document id cannot start with '.'")
	}
	for _, r := range id {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.') {
			return New(ErrCodeInvalidInput, "document id contains invalid character %q", r)
		}
	}
	return nil
}
