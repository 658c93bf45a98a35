package port

import "context"

// TextExtractor turns uploaded document bytes into page-ordered plain text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, contentType string) (string, error)
}
