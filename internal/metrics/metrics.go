// Package metrics keeps in-process counters for parse and interpretation
// traffic. All methods are safe for concurrent use.
package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
)

// Metrics tracks service activity using lock-free atomic operations.
type Metrics struct {
	startedAt time.Time

	// Parse counts
	parsesTotal   atomic.Uint64
	rowsTotal     atomic.Uint64
	unparsedTotal atomic.Uint64

	// Interpretation counts
	interpretationsTotal atomic.Uint64
	generatedOK          atomic.Uint64
	fallbacks            atomic.Uint64
	attemptsTotal        atomic.Uint64

	// Interpretation timing (milliseconds)
	durationTotal atomic.Uint64
	durationMin   atomic.Uint64
	durationMax   atomic.Uint64

	// Per-engine counts
	engines sync.Map // map[string]*atomic.Uint64
}

// New creates a Metrics instance.
func New() *Metrics {
	m := &Metrics{startedAt: time.Now()}
	// Initialize min to max uint64 so first value becomes the minimum
	m.durationMin.Store(^uint64(0))
	return m
}

// RecordParse records one parsed report.
func (m *Metrics) RecordParse(rows, unparsed int) {
	m.parsesTotal.Add(1)
	m.rowsTotal.Add(uint64(rows))         //nolint:gosec // counts are never negative
	m.unparsedTotal.Add(uint64(unparsed)) //nolint:gosec // counts are never negative
}

// RecordInterpretation records a finished interpretation.
func (m *Metrics) RecordInterpretation(meta domain.CallMetadata) {
	m.interpretationsTotal.Add(1)
	if meta.OK {
		m.generatedOK.Add(1)
	} else {
		m.fallbacks.Add(1)
	}
	m.attemptsTotal.Add(uint64(meta.Attempts)) //nolint:gosec // attempts are 0..2
	m.engineCounter(meta.Engine).Add(1)

	ms := uint64(0)
	if meta.DurationMS > 0 {
		ms = uint64(meta.DurationMS)
	}
	m.durationTotal.Add(ms)

	for {
		old := m.durationMin.Load()
		if ms >= old || m.durationMin.CompareAndSwap(old, ms) {
			break
		}
	}
	for {
		old := m.durationMax.Load()
		if ms <= old || m.durationMax.CompareAndSwap(old, ms) {
			break
		}
	}
}

func (m *Metrics) engineCounter(name string) *atomic.Uint64 {
	if v, ok := m.engines.Load(name); ok {
		return v.(*atomic.Uint64)
	}
	actual, _ := m.engines.LoadOrStore(name, new(atomic.Uint64))
	return actual.(*atomic.Uint64)
}

// EngineCount is the number of interpretations attributed to one engine.
type EngineCount struct {
	Engine string `json:"engine"`
	Count  uint64 `json:"count"`
}

// Snapshot is a point-in-time view of all counters.
type Snapshot struct {
	UptimeSeconds int64 `json:"uptime_seconds"`

	ParsesTotal   uint64 `json:"parses_total"`
	RowsTotal     uint64 `json:"rows_total"`
	UnparsedTotal uint64 `json:"unparsed_lines_total"`

	InterpretationsTotal uint64  `json:"interpretations_total"`
	GeneratedOK          uint64  `json:"generated_ok"`
	Fallbacks            uint64  `json:"fallbacks"`
	FallbackRate         float64 `json:"fallback_rate"`
	AttemptsTotal        uint64  `json:"attempts_total"`

	AvgDurationMS uint64 `json:"avg_duration_ms"`
	MinDurationMS uint64 `json:"min_duration_ms"`
	MaxDurationMS uint64 `json:"max_duration_ms"`

	Engines []EngineCount `json:"engines"`
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (m *Metrics) Snapshot() Snapshot {
	total := m.interpretationsTotal.Load()

	var avg uint64
	var fallbackRate float64
	if total > 0 {
		avg = m.durationTotal.Load() / total
		fallbackRate = float64(m.fallbacks.Load()) / float64(total)
	}

	minMS := m.durationMin.Load()
	if minMS == ^uint64(0) {
		minMS = 0
	}

	engines := []EngineCount{}
	m.engines.Range(func(key, value any) bool {
		engines = append(engines, EngineCount{Engine: key.(string), Count: value.(*atomic.Uint64).Load()})
		return true
	})
	sort.Slice(engines, func(i, j int) bool { return engines[i].Engine < engines[j].Engine })

	return Snapshot{
		UptimeSeconds:        int64(time.Since(m.startedAt).Seconds()),
		ParsesTotal:          m.parsesTotal.Load(),
		RowsTotal:            m.rowsTotal.Load(),
		UnparsedTotal:        m.unparsedTotal.Load(),
		InterpretationsTotal: total,
		GeneratedOK:          m.generatedOK.Load(),
		Fallbacks:            m.fallbacks.Load(),
		FallbackRate:         fallbackRate,
		AttemptsTotal:        m.attemptsTotal.Load(),
		AvgDurationMS:        avg,
		MinDurationMS:        minMS,
		MaxDurationMS:        m.durationMax.Load(),
		Engines:              engines,
	}
}
