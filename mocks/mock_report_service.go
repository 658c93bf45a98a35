package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/service"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) ParseText(ctx context.Context, text string) (*domain.ParseResult, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParseResult), args.Error(1)
}

func (m *MockReportService) ParseDocument(ctx context.Context, input service.DocumentInput) (*domain.ParseResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParseResult), args.Error(1)
}

func (m *MockReportService) Interpret(ctx context.Context, rows []domain.ParsedRow) (*service.InterpretOutput, error) {
	args := m.Called(ctx, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InterpretOutput), args.Error(1)
}

func (m *MockReportService) Export(ctx context.Context, result *domain.ParseResult, format domain.ExportFormat, w io.Writer) error {
	args := m.Called(ctx, result, format, w)
	return args.Error(0)
}
