package pipeline

import (
	"context"
	"sync"

	"pixelpage/internal/models"

	"go.uber.org/zap"
)

const stageBuffer = 50

// Stage processes archive items from an input channel and forwards results
// to an output channel.
type Stage interface {
	Execute(ctx context.Context, input <-chan models.ArchiveItem, output chan<- models.ArchiveItem, logger *zap.Logger) error
}

// Pipeline chains stages so that each stage's output feeds the next stage's
// input.
type Pipeline struct {
	stages []Stage
	logger *zap.Logger
}

// New creates an empty Pipeline logging through logger.
func New(logger *zap.Logger) *Pipeline {
	return &Pipeline{logger: logger}
}

// AddStage appends a stage to the pipeline's sequence.
func (p *Pipeline) AddStage(stage Stage) {
	p.stages = append(p.stages, stage)
}

// Run executes the pipeline with the given input channel until every stage
// finishes or ctx is canceled. The first stage reads from input; later
// stages read from their predecessor's output. Each stage's output channel
// is closed when the stage returns.
func (p *Pipeline) Run(ctx context.Context, input <-chan models.ArchiveItem) error {
	if len(p.stages) == 0 {
		p.logger.Warn("no stages in pipeline")
		return nil
	}

	channels := make([]chan models.ArchiveItem, len(p.stages))
	for i := range channels {
		channels[i] = make(chan models.ArchiveItem, stageBuffer)
	}

	var wg sync.WaitGroup
	wg.Add(len(p.stages))

	for i, stage := range p.stages {
		inChan := input
		if i > 0 {
			inChan = channels[i-1]
		}
		outChan := channels[i]

		go func(stage Stage, in <-chan models.ArchiveItem, out chan<- models.ArchiveItem, idx int) {
			defer wg.Done()
			defer close(out)
			if err := stage.Execute(ctx, in, out, p.logger); err != nil {
				p.logger.Error("stage execution failed",
					zap.Int("stage", idx),
					zap.Error(err))
			}
		}(stage, inChan, outChan, i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("pipeline completed")
		return nil
	case <-ctx.Done():
		p.logger.Info("pipeline canceled", zap.Error(ctx.Err()))
		return ctx.Err()
	}
}
