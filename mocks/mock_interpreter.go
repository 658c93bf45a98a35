package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
)

// MockInterpreter is a mock implementation of port.Interpreter.
type MockInterpreter struct {
	mock.Mock
}

func (m *MockInterpreter) Interpret(ctx context.Context, rows []domain.ParsedRow) (domain.Interpretation, domain.CallMetadata) {
	args := m.Called(ctx, rows)
	return args.Get(0).(domain.Interpretation), args.Get(1).(domain.CallMetadata)
}

func (m *MockInterpreter) Engine() string {
	args := m.Called()
	return args.String(0)
}
