package service

import (
	"context"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/metrics"
)

// Stats is the payload of the stats endpoint.
type Stats struct {
	Engine    string   `json:"engine"`
	Providers []string `json:"providers"`
	metrics.Snapshot
}

// StatsService provides in-process service statistics.
type StatsService interface {
	GetStats(ctx context.Context) (*Stats, error)
}

type statsService struct {
	metrics   *metrics.Metrics
	engine    string
	providers []string
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(m *metrics.Metrics, engine string, providers []string) StatsService {
	return &statsService{metrics: m, engine: engine, providers: providers}
}

func (s *statsService) GetStats(ctx context.Context) (*Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	providers := s.providers
	if providers == nil {
		providers = []string{}
	}
	return &Stats{
		Engine:    s.engine,
		Providers: providers,
		Snapshot:  s.metrics.Snapshot(),
	}, nil
}
