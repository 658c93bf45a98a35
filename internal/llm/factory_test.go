package llm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/config"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/llm"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/port"
)

type stubGenerator struct{ name string }

func (s stubGenerator) Generate(context.Context, port.GenerationRequest) (string, error) {
	return "{}", nil
}

func (s stubGenerator) Name() string { return s.name }

func TestNewGenerator_NotConfigured(t *testing.T) {
	g, err := llm.NewGenerator(&config.GenerationConfig{Provider: "openai"})

	assert.Nil(t, g)
	assert.True(t, errors.Is(err, domain.ErrGeneratorNotConfigured))
}

func TestNewGenerator_UnknownProvider(t *testing.T) {
	_, err := llm.NewGenerator(&config.GenerationConfig{Provider: "nope", APIKey: "k"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown generation provider")
}

func TestNewGenerator_Registered(t *testing.T) {
	llm.RegisterProvider("stub", func(cfg *config.GenerationConfig) (port.Generator, error) {
		return stubGenerator{name: "stub"}, nil
	})

	g, err := llm.NewGenerator(&config.GenerationConfig{Provider: "stub", APIKey: "k"})

	require.NoError(t, err)
	assert.Equal(t, "stub", g.Name())
	assert.Contains(t, llm.Providers(), "stub")
}
