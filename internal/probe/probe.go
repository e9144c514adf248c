// Package probe perturbs one parameter at a time by a ratio and reports how
// simulation or profile outputs move relative to the unperturbed baseline.
package probe

import (
	"fmt"
	"math"

	"github.com/ouzlim/vjsim/internal/engine"
	"github.com/ouzlim/vjsim/internal/fgen"
	"github.com/ouzlim/vjsim/internal/fit"
	"github.com/ouzlim/vjsim/internal/profile"
	"github.com/ouzlim/vjsim/internal/table"
)

// Mode selects how probed rows relate to the baseline row.
type Mode string

const (
	// ModeRaw keeps outputs as-is.
	ModeRaw Mode = "raw"
	// ModeDiff subtracts the ratio=1 baseline row.
	ModeDiff Mode = "diff"
	// ModeRatio divides by the ratio=1 baseline row.
	ModeRatio Mode = "ratio"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRaw, ModeDiff, ModeRatio:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("probe: unknown aggregation %q (want raw, diff or ratio)", s)
	}
}

// Input bundles everything a probed run needs.
type Input struct {
	Load   engine.Load
	Params fgen.Params
}

// Target evaluates one input and returns a flat named row.
type Target func(Input) ([]string, []float64, error)

type accessor struct {
	name string
	get  func(*Input) *float64
}

// Probeable parameters in canonical order.
var accessors = []accessor{
	{"bodyweight", func(in *Input) *float64 { return &in.Load.Bodyweight }},
	{"external_load", func(in *Input) *float64 { return &in.Load.ExternalLoad }},
	{"push_off_distance", func(in *Input) *float64 { return &in.Load.PushOffDistance }},
	{"max_force", func(in *Input) *float64 { return &in.Params.MaxForce }},
	{"max_velocity", func(in *Input) *float64 { return &in.Params.MaxVelocity }},
	{"decline_rate", func(in *Input) *float64 { return &in.Params.DeclineRate }},
	{"peak_location", func(in *Input) *float64 { return &in.Params.PeakLocation }},
	{"time_to_max_activation", func(in *Input) *float64 { return &in.Params.TimeToMaxActivation }},
}

// ParameterNames lists every probeable parameter in canonical order.
func ParameterNames() []string {
	names := make([]string, len(accessors))
	for i, a := range accessors {
		names[i] = a.name
	}
	return names
}

// Probe runs target once per (parameter, ratio) combination, multiplying
// exactly one parameter by the ratio each time. A ratio of 1 is always
// present per parameter as the reference row. Per-row failures leave a NaN
// row and are reported in the error slice; the batch always completes.
func Probe(baseline Input, names []string, ratios []float64, mode Mode, target Target) (*table.Table, []error) {
	if len(names) == 0 {
		names = ParameterNames()
	}
	ratios = withBaseline(ratios)

	cols, base, baseErr := target(baseline)
	if baseErr != nil {
		// Without a baseline row there is nothing to normalize against.
		return nil, []error{fmt.Errorf("probe: baseline evaluation failed: %w", baseErr)}
	}
	header := append([]string{"change_ratio"}, cols...)
	tbl := table.NewLabeled("probing", header)

	var errs []error
	for _, name := range names {
		acc, err := lookup(name)
		if err != nil {
			errs = append(errs, err)
			tbl.AppendLabeledRow(name, nanRow(len(header)))
			continue
		}
		for _, ratio := range ratios {
			if ratio == 1 {
				// The unperturbed row is the baseline by construction, so
				// emit the aggregation identity directly. Dividing base by
				// itself would turn zero-valued columns into NaN.
				tbl.AppendLabeledRow(name, append([]float64{1}, identityRow(base, mode)...))
				continue
			}
			values, err := probeOne(baseline, acc, ratio, target)
			if err != nil {
				errs = append(errs, fmt.Errorf("probe %s x%g: %w", name, ratio, err))
				tbl.AppendLabeledRow(name, append([]float64{ratio}, nanRow(len(cols))...))
				continue
			}
			tbl.AppendLabeledRow(name, append([]float64{ratio}, aggregate(values, base, mode)...))
		}
	}
	return tbl, errs
}

func probeOne(baseline Input, acc accessor, ratio float64, target Target) ([]float64, error) {
	in := baseline
	*acc.get(&in) *= ratio
	_, values, err := target(in)
	return values, err
}

// identityRow is what aggregate would yield for the unperturbed baseline:
// all ones for ratio, all zeros for diff, the baseline itself for raw.
func identityRow(base []float64, mode Mode) []float64 {
	out := make([]float64, len(base))
	for i, v := range base {
		switch mode {
		case ModeDiff:
			out[i] = 0
		case ModeRatio:
			out[i] = 1
		default:
			out[i] = v
		}
	}
	return out
}

func aggregate(values, base []float64, mode Mode) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		switch mode {
		case ModeDiff:
			out[i] = v - base[i]
		case ModeRatio:
			out[i] = v / base[i]
		default:
			out[i] = v
		}
	}
	return out
}

func lookup(name string) (accessor, error) {
	for _, a := range accessors {
		if a.name == name {
			return a, nil
		}
	}
	return accessor{}, fmt.Errorf("probe: unknown parameter %q", name)
}

func withBaseline(ratios []float64) []float64 {
	for _, r := range ratios {
		if r == 1 {
			return ratios
		}
	}
	return append([]float64{1}, ratios...)
}

func nanRow(n int) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = math.NaN()
	}
	return row
}

// SummaryTarget probes a single jump: one engine run per perturbation.
func SummaryTarget(opts engine.Options) Target {
	opts.SaveTrace = false
	return func(in Input) ([]string, []float64, error) {
		res, err := engine.Run(in.Load, in.Params, opts)
		if err != nil {
			return engine.SummaryColumns, nil, err
		}
		return engine.SummaryColumns, res.Summary.Values(), nil
	}
}

// ProfileTarget probes the whole profiling chain: a load sweep followed by
// every standard profile fit, flattened to one wide row.
func ProfileTarget(externalLoads []float64, opts engine.Options) Target {
	return func(in Input) ([]string, []float64, error) {
		// Loads that fail under the perturbation leave NaN rows in the
		// sweep; the fits skip those pairs, so the profiles come from
		// whatever part of the sweep survived.
		tbl, _ := profile.Generate(in.Load, in.Params, externalLoads, opts)
		names, values := fit.AllProfiles(tbl).Flat()
		return names, values, nil
	}
}
