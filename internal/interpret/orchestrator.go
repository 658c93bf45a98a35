// Package interpret turns parsed lab rows into a plain-language
// Interpretation. It prefers the external generation service and degrades to
// a deterministic fallback whenever the service is missing, slow or wrong.
package interpret

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/config"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/llm"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/port"
)

// DefaultCallTimeout bounds a single generation call.
const DefaultCallTimeout = 4500 * time.Millisecond

type state uint8

const (
	stateStart state = iota
	statePromptBuilt
	stateFirstAttempt
	stateRepairAttempt
	stateSuccess
	stateFailed
	stateFallback
	stateDone
)

// attemptOutcome is the result of one generation call plus validation.
type attemptOutcome uint8

const (
	outcomeOK attemptOutcome = iota
	outcomeInvalid
	outcomeFailed
)

// Recorder receives the metadata of every finished interpretation.
type Recorder interface {
	RecordInterpretation(meta domain.CallMetadata)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithCallTimeout sets the per-call timeout. Non-positive values are ignored.
func WithCallTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger sets the logger used for attempt outcomes.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithRecorder sets a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

// Orchestrator runs the generate, repair, fallback sequence. It is safe for
// concurrent use.
type Orchestrator struct {
	generator port.Generator
	timeout   time.Duration
	logger    zerolog.Logger
	recorder  Recorder
	breaker   circuit
	now       func() time.Time
}

// NewOrchestrator creates an Orchestrator. A nil generator means every
// interpretation uses the fallback.
func NewOrchestrator(generator port.Generator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		generator: generator,
		timeout:   DefaultCallTimeout,
		logger:    zerolog.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Engine returns the name reported in CallMetadata.
func (o *Orchestrator) Engine() string {
	if o.generator == nil {
		return domain.EngineNone
	}
	return o.generator.Name()
}

// Interpret always returns a schema-valid Interpretation. The metadata tells
// whether the generation service produced it.
func (o *Orchestrator) Interpret(ctx context.Context, rows []domain.ParsedRow) (domain.Interpretation, domain.CallMetadata) {
	start := o.now()
	meta := domain.CallMetadata{Engine: o.Engine()}

	var (
		prompt string
		result domain.Interpretation
	)

	for st := stateStart; st != stateDone; {
		switch st {
		case stateStart:
			if o.generator == nil {
				st = stateFallback
				continue
			}
			if resetAt, open := o.breaker.isOpen(start); open {
				o.logger.Debug().Str("engine", meta.Engine).Time("reset_at", resetAt).Msg("generation skipped, rate limit backoff")
				st = stateFallback
				continue
			}
			prompt = BuildPrompt(rows)
			st = statePromptBuilt

		case statePromptBuilt:
			st = stateFirstAttempt

		case stateFirstAttempt:
			meta.Attempts = 1
			outcome, out := o.attempt(ctx, prompt, meta)
			switch outcome {
			case outcomeOK:
				result = out
				st = stateSuccess
			case outcomeInvalid:
				st = stateRepairAttempt
			default:
				st = stateFailed
			}

		case stateRepairAttempt:
			meta.Attempts = 2
			outcome, out := o.attempt(ctx, RepairPrompt(prompt), meta)
			if outcome == outcomeOK {
				result = out
				st = stateSuccess
			} else {
				st = stateFailed
			}

		case stateSuccess:
			meta.OK = true
			st = stateDone

		case stateFailed:
			st = stateFallback

		case stateFallback:
			result = Fallback(rows)
			meta.OK = false
			st = stateDone
		}
	}

	meta.DurationMS = o.now().Sub(start).Milliseconds()
	if meta.DurationMS < 0 {
		meta.DurationMS = 0
	}

	o.logger.Info().
		Str("engine", meta.Engine).
		Int("attempts", meta.Attempts).
		Bool("ok", meta.OK).
		Int64("duration_ms", meta.DurationMS).
		Int("rows", len(rows)).
		Msg("interpretation completed")

	if o.recorder != nil {
		o.recorder.RecordInterpretation(meta)
	}
	return result, meta
}

// attempt issues one bounded generation call and validates the response.
func (o *Orchestrator) attempt(ctx context.Context, prompt string, meta domain.CallMetadata) (attemptOutcome, domain.Interpretation) {
	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	raw, err := o.generate(callCtx, prompt)
	if err != nil {
		var rlErr *llm.RateLimitError
		if errors.As(err, &rlErr) {
			o.breaker.open(o.now().Add(rlErr.RetryAfter))
		}
		o.logger.Warn().Err(err).Str("engine", meta.Engine).Int("attempt", meta.Attempts).Msg("generation call failed")
		return outcomeFailed, domain.Interpretation{}
	}

	out, err := Validate(raw)
	if err != nil {
		o.logger.Warn().Err(err).Str("engine", meta.Engine).Int("attempt", meta.Attempts).Msg("generation response rejected")
		return outcomeInvalid, domain.Interpretation{}
	}
	return outcomeOK, out
}

func (o *Orchestrator) generate(ctx context.Context, prompt string) (raw string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panicked: %v", r)
		}
	}()
	return o.generator.Generate(ctx, port.GenerationRequest{System: SystemPrompt, Prompt: prompt})
}

// NewFromConfig builds the configured generator and an Orchestrator around
// it. A missing provider or credential is not an error: the Orchestrator then
// always uses the fallback. Provider packages must be imported for effect.
func NewFromConfig(cfg *config.GenerationConfig, opts ...Option) (*Orchestrator, error) {
	gen, err := llm.NewGenerator(cfg)
	if err != nil && !errors.Is(err, domain.ErrGeneratorNotConfigured) {
		return nil, fmt.Errorf("creating generator: %w", err)
	}
	return NewOrchestrator(gen, append([]Option{WithCallTimeout(cfg.Timeout)}, opts...)...), nil
}
