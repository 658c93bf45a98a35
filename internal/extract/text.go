package extract

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
)

// DecodeText converts an uploaded text file to UTF-8. A UTF-8 or UTF-16 byte
// order mark selects the encoding; otherwise the bytes must be valid UTF-8 or
// are read as Windows-1252, which is what legacy lab exports use.
func DecodeText(data []byte) (string, error) {
	if hasBOM(data) {
		decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrUnreadableDocument, err)
		}
		return checkText(decoded)
	}

	if utf8.Valid(data) {
		return checkText(data)
	}

	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnreadableDocument, err)
	}
	return checkText(decoded)
}

func hasBOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(data, []byte{0xFE, 0xFF}) ||
		bytes.HasPrefix(data, []byte{0xFF, 0xFE})
}

// checkText rejects binary payloads that slipped through as text.
func checkText(b []byte) (string, error) {
	if bytes.IndexByte(b, 0) >= 0 {
		return "", fmt.Errorf("%w: binary content in text upload", domain.ErrUnreadableDocument)
	}
	return string(b), nil
}
