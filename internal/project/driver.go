package project

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Phase selects how far a unit is compiled.
type Phase int

const (
	PhaseParse Phase = iota // parse the unit and its imports
	PhaseCheck              // also run semantic analysis
)

// Result is the outcome of one unit.
type Result struct {
	Unit *Unit
	Err  error
}

// CompileAll compiles each file as its own unit, concurrently, up to
// phase. Units are independent: the failure of one does not stop the
// others. Results are in the order of files. The returned error is
// non-nil only if ctx was cancelled.
func CompileAll(ctx context.Context, files []string, phase Phase, conf *Config, logger *slog.Logger) ([]Result, error) {
	results := make([]Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			u := NewUnit(file, conf, logger)
			var err error
			switch phase {
			case PhaseParse:
				err = u.Parse()
			default:
				err = u.Compile()
			}
			results[i] = Result{Unit: u, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Failed reports whether any result carries an error.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}
