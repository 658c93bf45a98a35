package metrics_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/metrics"
)

func TestMetrics_Empty(t *testing.T) {
	s := metrics.New().Snapshot()

	assert.Zero(t, s.ParsesTotal)
	assert.Zero(t, s.InterpretationsTotal)
	assert.Zero(t, s.MinDurationMS)
	assert.Zero(t, s.FallbackRate)
	assert.NotNil(t, s.Engines)
	assert.Empty(t, s.Engines)
}

func TestMetrics_RecordParse(t *testing.T) {
	m := metrics.New()
	m.RecordParse(3, 2)
	m.RecordParse(1, 0)

	s := m.Snapshot()
	assert.Equal(t, uint64(2), s.ParsesTotal)
	assert.Equal(t, uint64(4), s.RowsTotal)
	assert.Equal(t, uint64(2), s.UnparsedTotal)
}

func TestMetrics_RecordInterpretation(t *testing.T) {
	m := metrics.New()
	m.RecordInterpretation(domain.CallMetadata{Engine: "openai", Attempts: 1, OK: true, DurationMS: 100})
	m.RecordInterpretation(domain.CallMetadata{Engine: "openai", Attempts: 2, OK: false, DurationMS: 300})
	m.RecordInterpretation(domain.CallMetadata{Engine: domain.EngineNone, Attempts: 0, OK: false, DurationMS: 2})

	s := m.Snapshot()
	assert.Equal(t, uint64(3), s.InterpretationsTotal)
	assert.Equal(t, uint64(1), s.GeneratedOK)
	assert.Equal(t, uint64(2), s.Fallbacks)
	assert.InDelta(t, 2.0/3.0, s.FallbackRate, 0.001)
	assert.Equal(t, uint64(3), s.AttemptsTotal)
	assert.Equal(t, uint64(134), s.AvgDurationMS)
	assert.Equal(t, uint64(2), s.MinDurationMS)
	assert.Equal(t, uint64(300), s.MaxDurationMS)
	require.Len(t, s.Engines, 2)
	assert.Equal(t, metrics.EngineCount{Engine: "none", Count: 1}, s.Engines[0])
	assert.Equal(t, metrics.EngineCount{Engine: "openai", Count: 2}, s.Engines[1])
}

func TestMetrics_Concurrent(t *testing.T) {
	m := metrics.New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordParse(2, 1)
			m.RecordInterpretation(domain.CallMetadata{Engine: "gemini", Attempts: 1, OK: true, DurationMS: 10})
		}()
	}
	wg.Wait()

	s := m.Snapshot()
	assert.Equal(t, uint64(50), s.ParsesTotal)
	assert.Equal(t, uint64(100), s.RowsTotal)
	assert.Equal(t, uint64(50), s.InterpretationsTotal)
	assert.Equal(t, []metrics.EngineCount{{Engine: "gemini", Count: 50}}, s.Engines)
}
