// Package extract turns uploaded report documents into plain text for the
// lab parser.
package extract

import (
	"context"
	"fmt"
	"mime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/unidoc/unipdf/v3/common/license"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/config"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
)

// Extractor implements port.TextExtractor for PDF and plain-text documents.
type Extractor struct {
	logger zerolog.Logger
}

// New creates an Extractor. A configured PDF license key is installed once
// here. Without one the PDF library refuses to extract text, so every PDF
// upload fails as an unreadable document.
func New(cfg *config.PDFConfig, logger zerolog.Logger) (*Extractor, error) {
	if cfg == nil || cfg.LicenseKey == "" {
		logger.Warn().Msg("no pdf license key configured; pdf uploads will be rejected as unreadable")
		return &Extractor{logger: logger}, nil
	}
	if err := license.SetMeteredKey(cfg.LicenseKey); err != nil {
		return nil, fmt.Errorf("setting pdf license key: %w", err)
	}
	return &Extractor{logger: logger}, nil
}

// Extract returns the document text in page order.
func (e *Extractor) Extract(ctx context.Context, data []byte, contentType string) (string, error) {
	switch MediaType(contentType) {
	case "application/pdf":
		out, err := extractPDF(ctx, data)
		if err != nil {
			e.logger.Warn().Err(err).Int("bytes", len(data)).Msg("pdf extraction failed")
			return "", err
		}
		if out.failed > 0 {
			e.logger.Warn().Int("pages", out.pages).Int("failed_pages", out.failed).Msg("pdf pages skipped")
		}
		e.logger.Debug().Int("pages", out.pages).Int("bytes", len(data)).Msg("pdf text extracted")
		return out.text, nil
	case "text/plain":
		return DecodeText(data)
	default:
		return "", domain.ErrUnsupportedFileType
	}
}

// MediaType strips parameters from a Content-Type value and lowercases it.
func MediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt, _, _ = strings.Cut(contentType, ";")
	}
	return strings.ToLower(strings.TrimSpace(mt))
}
