package domain

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrEmptyRows              = errors.New("rows must be a non-empty array")
	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrFileTooLarge           = errors.New("file exceeds maximum allowed size")
	ErrUnreadableDocument     = errors.New("document could not be read")
	ErrUnsupportedFormat      = errors.New("unsupported export format")
	ErrGeneratorNotConfigured = errors.New("generation service not configured")
)
