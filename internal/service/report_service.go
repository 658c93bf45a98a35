package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/config"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/export"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/extract"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/labparser"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/port"
)

// DocumentInput is the DTO for document uploads.
type DocumentInput struct {
	Filename    string
	Size        int64
	ContentType string
	Body        io.Reader
}

// InterpretOutput pairs an interpretation with how it was produced.
type InterpretOutput struct {
	Interpretation domain.Interpretation `json:"interpretation"`
	Meta           domain.CallMetadata   `json:"meta"`
}

// ParseRecorder receives the size of every parse result.
type ParseRecorder interface {
	RecordParse(rows, unparsed int)
}

// ReportService defines the lab report contract.
type ReportService interface {
	ParseText(ctx context.Context, text string) (*domain.ParseResult, error)
	ParseDocument(ctx context.Context, input DocumentInput) (*domain.ParseResult, error)
	Interpret(ctx context.Context, rows []domain.ParsedRow) (*InterpretOutput, error)
	Export(ctx context.Context, result *domain.ParseResult, format domain.ExportFormat, w io.Writer) error
}

type reportService struct {
	extractor   port.TextExtractor
	interpreter port.Interpreter
	recorder    ParseRecorder
	cfg         *config.UploadConfig
	logger      zerolog.Logger
}

// NewReportService creates a new ReportService implementation. recorder may
// be nil.
func NewReportService(
	extractor port.TextExtractor,
	interpreter port.Interpreter,
	recorder ParseRecorder,
	cfg *config.UploadConfig,
	logger zerolog.Logger,
) ReportService {
	return &reportService{
		extractor:   extractor,
		interpreter: interpreter,
		recorder:    recorder,
		cfg:         cfg,
		logger:      logger,
	}
}

func (s *reportService) ParseText(ctx context.Context, text string) (*domain.ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := labparser.Parse(text)
	if s.recorder != nil {
		s.recorder.RecordParse(len(result.Rows), len(result.Unparsed))
	}
	return &result, nil
}

func (s *reportService) ParseDocument(ctx context.Context, input DocumentInput) (*domain.ParseResult, error) {
	// Validate file extension when the client sent one
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Filename), "."))
	if ext != "" {
		if _, ok := domain.AllowedExtensions[ext]; !ok {
			return nil, domain.ErrUnsupportedFileType
		}
	}

	// Validate file size
	maxBytes := s.cfg.MaxBytes()
	if input.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(input.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	contentType, err := resolveContentType(input.ContentType, ext, data)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("content_type", contentType).
		Int("bytes", len(data)).
		Msg("extracting document text")

	text, err := s.extractor.Extract(ctx, data, contentType)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: document contains no text", domain.ErrUnreadableDocument)
	}
	return s.ParseText(ctx, text)
}

// resolveContentType picks the document type from magic bytes. Only allowed
// types pass.
func resolveContentType(declared, ext string, data []byte) (string, error) {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	detected := extract.MediaType(http.DetectContentType(head))
	if domain.AllowedContentTypes[detected] {
		// Text sniffing accepts any byte soup without control characters, so
		// a declared or named PDF that failed the magic check stays rejected.
		if detected == "text/plain" && (extract.MediaType(declared) == "application/pdf" || ext == "pdf") {
			return "", domain.ErrUnreadableDocument
		}
		return detected, nil
	}
	return "", domain.ErrUnsupportedFileType
}

func (s *reportService) Interpret(ctx context.Context, rows []domain.ParsedRow) (*InterpretOutput, error) {
	if len(rows) == 0 {
		return nil, domain.ErrEmptyRows
	}
	for i := range rows {
		if rows[i].TestName == "" || rows[i].Value.IsZero() {
			return nil, fmt.Errorf("%w: rows[%d] needs test_name and value", domain.ErrInvalidInput, i)
		}
	}
	interpretation, meta := s.interpreter.Interpret(ctx, rows)
	return &InterpretOutput{Interpretation: interpretation, Meta: meta}, nil
}

func (s *reportService) Export(ctx context.Context, result *domain.ParseResult, format domain.ExportFormat, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if result == nil {
		result = &domain.ParseResult{}
	}
	if err := export.Write(w, format, *result); err != nil {
		return fmt.Errorf("exporting %s: %w", format, err)
	}
	return nil
}
