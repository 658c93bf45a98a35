package port

import (
	"context"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
)

// Interpreter explains parsed rows. It never fails: when generation is not
// possible it returns a deterministic fallback and says so in the metadata.
type Interpreter interface {
	Interpret(ctx context.Context, rows []domain.ParsedRow) (domain.Interpretation, domain.CallMetadata)
	// Engine names the generation path, or domain.EngineNone.
	Engine() string
}
