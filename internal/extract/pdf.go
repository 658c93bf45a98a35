package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
)

// pdfText is the outcome of reading a PDF.
type pdfText struct {
	text   string
	pages  int
	failed int
}

// extractPDF reads every page of a PDF and joins the page text with
// newlines. Pages that fail to extract are skipped, but a document that
// yields no text at all is unreadable. The first page error is kept in the
// returned error so an unlicensed PDF library shows up as the cause.
func extractPDF(ctx context.Context, data []byte) (pdfText, error) {
	pdfReader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return pdfText{}, fmt.Errorf("%w: opening pdf: %v", domain.ErrUnreadableDocument, err)
	}

	enc, err := pdfReader.IsEncrypted()
	if err != nil {
		return pdfText{}, fmt.Errorf("%w: checking encryption: %v", domain.ErrUnreadableDocument, err)
	}
	if enc {
		ok, err := pdfReader.Decrypt([]byte(""))
		if err != nil || !ok {
			return pdfText{}, fmt.Errorf("%w: pdf is password-protected", domain.ErrUnreadableDocument)
		}
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return pdfText{}, fmt.Errorf("%w: reading page count: %v", domain.ErrUnreadableDocument, err)
	}

	out := pdfText{pages: numPages}
	var firstErr error
	var sb strings.Builder
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return pdfText{}, err
		}

		text, err := pageText(pdfReader, i)
		if err != nil {
			out.failed++
			if firstErr == nil {
				firstErr = fmt.Errorf("page %d: %w", i, err)
			}
			continue
		}

		sb.WriteString(text)
		sb.WriteString("\n")
	}

	out.text = sb.String()
	if strings.TrimSpace(out.text) == "" {
		if firstErr != nil {
			return pdfText{}, fmt.Errorf("%w: %v", domain.ErrUnreadableDocument, firstErr)
		}
		return pdfText{}, fmt.Errorf("%w: pdf has no extractable text", domain.ErrUnreadableDocument)
	}
	return out, nil
}

func pageText(r *model.PdfReader, n int) (string, error) {
	page, err := r.GetPage(n)
	if err != nil {
		return "", err
	}
	ex, err := extractor.New(page)
	if err != nil {
		return "", err
	}
	return ex.ExtractText()
}
