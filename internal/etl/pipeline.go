package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dvloznov/billing-etl/internal/logger"
	"github.com/dvloznov/billing-etl/internal/table"
)

// Step is a single stage in the billing pipeline.
type Step interface {
	Execute(ctx context.Context, state *State) error
}

// State is the shared state threaded through the pipeline steps.
type State struct {
	RunID    string
	Currency string // ISO code; empty means DefaultCurrency

	Extracted   *table.Table
	Transformed *table.Table
}

// ExtractStep reads the input table from a Source.
type ExtractStep struct {
	Source Source
}

func (s *ExtractStep) Execute(ctx context.Context, state *State) error {
	t, err := s.Source.Extract(ctx)
	if err != nil {
		return err
	}
	state.Extracted = t
	return nil
}

// TransformStep deduplicates, normalizes billing_amount and derives
// total_charges.
type TransformStep struct{}

func (s *TransformStep) Execute(ctx context.Context, state *State) error {
	currency := state.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	t, err := TransformCurrency(state.Extracted, currency)
	if err != nil {
		return err
	}
	state.Transformed = t
	return nil
}

// LoadStep writes the transformed table to every sink in order.
type LoadStep struct {
	Sinks []Sink
}

func (s *LoadStep) Execute(ctx context.Context, state *State) error {
	for _, sink := range s.Sinks {
		if err := sink.Load(ctx, state.Transformed); err != nil {
			return err
		}
	}
	return nil
}

// Pipeline executes a sequence of steps in order.
type Pipeline struct {
	steps []Step
}

// NewPipeline creates a pipeline with the given steps.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps sequentially, stopping at the first failure.
func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("pipeline step %d failed: %w", i+1, err)
		}
	}
	return nil
}

// NewBillingPipeline creates the standard extract-transform-load sequence.
func NewBillingPipeline(source Source, sinks ...Sink) *Pipeline {
	return NewPipeline(
		&ExtractStep{Source: source},
		&TransformStep{},
		&LoadStep{Sinks: sinks},
	)
}

// Run executes the standard pipeline with a fresh run ID, logging timing and
// row counts through the context logger. The returned state is valid even on
// failure, up to the step that failed.
func Run(ctx context.Context, currency string, source Source, sinks ...Sink) (*State, error) {
	log := logger.FromContext(ctx)
	state := &State{
		RunID:    uuid.NewString(),
		Currency: currency,
	}

	start := time.Now()
	log.Info().Str("run_id", state.RunID).Msg("starting billing pipeline")

	if err := NewBillingPipeline(source, sinks...).Execute(ctx, state); err != nil {
		log.Error().Str("run_id", state.RunID).Err(err).Msg("billing pipeline failed")
		return state, err
	}

	log.Info().
		Str("run_id", state.RunID).
		Int("rows_in", state.Extracted.Len()).
		Int("rows_out", state.Transformed.Len()).
		Dur("duration", time.Since(start)).
		Msg("billing pipeline completed")
	return state, nil
}
