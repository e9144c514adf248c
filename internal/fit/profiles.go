package fit

import (
	"math"

	"github.com/ouzlim/vjsim/internal/table"
)

// The standard profile pairs fitted from every profile table. The first
// five are straight-line FV profiles; the last two are quadratic power
// curves.
var fvPairs = []struct {
	name     string
	forceCol string
	velCol   string
}{
	{"mass_height", "mass", "height"},
	{"mass_take_off_velocity", "mass", "take_off_velocity"},
	{"load_take_off_velocity", "external_load", "take_off_velocity"},
	{"mean_force_velocity", "mean_GRF_over_distance", "mean_velocity"},
	{"peak_force_velocity", "peak_GRF", "peak_velocity"},
}

var powerPairs = []struct {
	name     string
	xCol     string
	powerCol string
}{
	{"mean_power", "mean_GRF_over_distance", "mean_power"},
	{"peak_power", "peak_GRF", "peak_power"},
}

type NamedFV struct {
	Name string
	FVResult
	Err error
}

type NamedPower struct {
	Name string
	PowerResult
	Err error
}

// Set aggregates every standard profile fit over one table.
type Set struct {
	FV    []NamedFV
	Power []NamedPower
}

func AllProfiles(tbl *table.Table) *Set {
	set := &Set{}
	for _, pair := range fvPairs {
		res, err := FVProfile(tbl, pair.forceCol, pair.velCol, 1)
		set.FV = append(set.FV, NamedFV{Name: pair.name, FVResult: res, Err: err})
	}
	for _, pair := range powerPairs {
		res, err := PowerProfile(tbl, pair.xCol, pair.powerCol, 2)
		set.Power = append(set.Power, NamedPower{Name: pair.name, PowerResult: res, Err: err})
	}
	return set
}

// SetColumns is the column order of Set.Table rows. Power rows only fill
// Pmax and x_at_Pmax; the remaining cells hold NaN.
var SetColumns = []string{"F0", "F0_rel", "V0", "Sfv", "Pmax", "Pmax_rel", "RFv", "x_at_Pmax"}

// Table renders the set as one labeled table, one row per fitted profile.
func (s *Set) Table() *table.Table {
	nan := math.NaN()
	tbl := table.NewLabeled("profile", SetColumns)
	for _, fv := range s.FV {
		tbl.AppendLabeledRow(fv.Name, append(fv.Values(), nan))
	}
	for _, pw := range s.Power {
		tbl.AppendLabeledRow(pw.Name, []float64{nan, nan, nan, nan, pw.Pmax, nan, nan, pw.XAtPmax})
	}
	return tbl
}

// Flat renders the set as one wide row keyed "profile.field", the form the
// probing layer diffs.
func (s *Set) Flat() ([]string, []float64) {
	var names []string
	var values []float64
	for _, fv := range s.FV {
		vals := fv.Values()
		for i, col := range FVColumns {
			names = append(names, fv.Name+"."+col)
			values = append(values, vals[i])
		}
	}
	for _, pw := range s.Power {
		names = append(names, pw.Name+".Pmax", pw.Name+".x_at_Pmax")
		values = append(values, pw.Pmax, pw.XAtPmax)
	}
	return names, values
}
