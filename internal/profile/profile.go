// Package profile sweeps the simulation engine across external loads and
// assembles the per-load summary table used for FV profiling.
package profile

import (
	"sync"

	"github.com/ouzlim/vjsim/internal/engine"
	"github.com/ouzlim/vjsim/internal/fgen"
	"github.com/ouzlim/vjsim/internal/table"
)

// Generate runs one simulation per external load, in the order given, and
// returns the profile table plus a per-row error slice. A failed load keeps
// its NaN sentinel row so the rest of the sweep is unaffected.
func Generate(base engine.Load, p fgen.Params, externalLoads []float64, opts engine.Options) (*table.Table, []error) {
	opts.SaveTrace = false

	summaries := make([]engine.Summary, len(externalLoads))
	errs := make([]error, len(externalLoads))
	for i, ext := range externalLoads {
		summaries[i], errs[i] = runOne(base, p, ext, opts)
	}
	return assemble(summaries), errs
}

// GenerateParallel is Generate with one goroutine per load. Runs share no
// state; results are indexed by input position so row order is preserved.
func GenerateParallel(base engine.Load, p fgen.Params, externalLoads []float64, opts engine.Options) (*table.Table, []error) {
	opts.SaveTrace = false

	summaries := make([]engine.Summary, len(externalLoads))
	errs := make([]error, len(externalLoads))

	var wg sync.WaitGroup
	for i, ext := range externalLoads {
		wg.Add(1)
		go func(idx int, ext float64) {
			defer wg.Done()
			summaries[idx], errs[idx] = runOne(base, p, ext, opts)
		}(i, ext)
	}
	wg.Wait()

	return assemble(summaries), errs
}

func runOne(base engine.Load, p fgen.Params, ext float64, opts engine.Options) (engine.Summary, error) {
	load := base
	load.ExternalLoad = ext
	res, err := engine.Run(load, p, opts)
	if err != nil {
		return engine.NaNSummary(load), err
	}
	return res.Summary, nil
}

func assemble(summaries []engine.Summary) *table.Table {
	tbl := table.New(engine.SummaryColumns)
	for _, s := range summaries {
		tbl.AppendRow(s.Values())
	}
	return tbl
}
