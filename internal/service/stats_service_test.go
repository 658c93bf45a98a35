package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/metrics"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/service"
)

func TestStatsService_GetStats(t *testing.T) {
	m := metrics.New()
	m.RecordParse(4, 1)
	m.RecordInterpretation(domain.CallMetadata{Engine: "none"})

	stats, err := service.NewStatsService(m, "none", nil).GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "none", stats.Engine)
	assert.NotNil(t, stats.Providers)
	assert.Equal(t, uint64(1), stats.ParsesTotal)
	assert.Equal(t, uint64(1), stats.Fallbacks)
}

func TestStatsService_GetStats_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.NewStatsService(metrics.New(), "openai", []string{"openai"}).GetStats(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
