// Package batch analyzes several deal documents concurrently.
package batch

import (
	"context"
	"runtime"
	"sync"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/de-tools/deal-atlas/pkg/services/deal"
	"golang.org/x/sync/errgroup"
)

// Outcome is the result of one input. Exactly one of Report and Err is set.
type Outcome struct {
	Input  string
	Report *domain.Report
	Err    error
}

type RunnerConfig struct {
	// Workers bounds the number of concurrent analyses; <= 0 means NumCPU.
	Workers int
}

type RunnerProgress struct {
	Processed int
	Failed    int
	Total     int
	LastInput string
}

// Runner fans inputs out to the deal controller. Analyses share nothing but
// the controller, which is safe for concurrent use. A Runner runs once.
type Runner struct {
	deals    deal.Controller
	config   RunnerConfig
	progress chan RunnerProgress
}

func NewRunner(deals deal.Controller, config RunnerConfig) *Runner {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	return &Runner{
		deals:    deals,
		config:   config,
		progress: make(chan RunnerProgress, 100),
	}
}

// Progress reports every finished input. Updates are dropped when nobody
// reads fast enough; the channel is closed when Run returns.
func (r *Runner) Progress() <-chan RunnerProgress {
	return r.progress
}

// Run analyzes every input and returns the outcomes in input order. A failed
// input does not stop the others. Inputs not started before ctx is done fail
// with ctx.Err().
func (r *Runner) Run(ctx context.Context, inputs []string, opts deal.Options) []Outcome {
	defer close(r.progress)

	outcomes := make([]Outcome, len(inputs))

	var mu sync.Mutex
	state := RunnerProgress{Total: len(inputs)}

	g := new(errgroup.Group)
	g.SetLimit(r.config.Workers)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			outcome := Outcome{Input: input}
			if err := ctx.Err(); err != nil {
				outcome.Err = err
			} else {
				outcome.Report, outcome.Err = r.deals.AnalyzeFile(ctx, input, opts)
			}
			outcomes[i] = outcome

			mu.Lock()
			state.Processed++
			if outcome.Err != nil {
				state.Failed++
			}
			state.LastInput = input
			update := state
			mu.Unlock()

			select {
			case r.progress <- update:
			default:
			}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}
