package engine

import "math"

const (
	DefaultGravity  = 9.81
	DefaultTimeStep = 0.001
	DefaultMaxTime  = 10.0
)

// Load describes the mass being propelled and where it is propelled over.
type Load struct {
	// Bodyweight is the athlete mass in kg.
	Bodyweight float64
	// ExternalLoad is additional mass in kg. Negative values model
	// assistance, as long as total mass stays positive.
	ExternalLoad float64
	// Gravity in m/s^2.
	Gravity float64
	// PushOffDistance in m.
	PushOffDistance float64
}

func (l Load) TotalMass() float64 { return l.Bodyweight + l.ExternalLoad }
func (l Load) Weight() float64    { return l.TotalMass() * l.Gravity }

func (l Load) Validate() error {
	if !(l.Bodyweight > 0) {
		return invalidParam("bodyweight", l.Bodyweight, "must be positive")
	}
	if !(l.TotalMass() > 0) {
		return invalidParam("external_load", l.ExternalLoad, "total mass must be positive")
	}
	if !(l.Gravity > 0) {
		return invalidParam("gravity", l.Gravity, "must be positive")
	}
	if !(l.PushOffDistance > 0) {
		return invalidParam("push_off_distance", l.PushOffDistance, "must be positive")
	}
	return nil
}

// Options controls integration granularity and trace retention.
type Options struct {
	// TimeStep is the Euler step in s. Defaults to 0.001.
	TimeStep float64
	// MaxTime bounds the push-off phase; runs that have not reached
	// take-off by then are reported as not achieved. Defaults to 10.
	MaxTime float64
	// SaveTrace retains the per-step trace on the Result. Off by default:
	// the trace is O(push_off_distance/time_step) and bulk profiling only
	// needs the summary.
	SaveTrace bool
}

func (o Options) withDefaults() Options {
	if o.TimeStep <= 0 {
		o.TimeStep = DefaultTimeStep
	}
	if o.MaxTime <= 0 {
		o.MaxTime = DefaultMaxTime
	}
	return o
}

// Step is one instant of the push-off phase.
type Step struct {
	Time            float64
	Distance        float64
	Velocity        float64
	ForcePercentage float64
	Activation      float64
	PotentialForce  float64
	GeneratedForce  float64
	ViscousForce    float64
	GroundReaction  float64
	PropulsiveForce float64
	Acceleration    float64
}

// Summary aggregates one run. Field order matches SummaryColumns.
type Summary struct {
	Bodyweight          float64
	ExternalLoad        float64
	Mass                float64
	Height              float64
	TakeOffTime         float64
	TakeOffVelocity     float64
	PeakVelocity        float64
	MeanVelocity        float64
	MeanGRFOverDistance float64
	MeanGRFOverTime     float64
	PeakGRF             float64
	PeakPower           float64
	MeanPower           float64
	PeakRFD             float64
	PeakRPD             float64
}

// SummaryColumns is the canonical column order for tabular output.
var SummaryColumns = []string{
	"bodyweight",
	"external_load",
	"mass",
	"height",
	"take_off_time",
	"take_off_velocity",
	"peak_velocity",
	"mean_velocity",
	"mean_GRF_over_distance",
	"mean_GRF_over_time",
	"peak_GRF",
	"peak_power",
	"mean_power",
	"peak_RFD",
	"peak_RPD",
}

func (s Summary) Values() []float64 {
	return []float64{
		s.Bodyweight,
		s.ExternalLoad,
		s.Mass,
		s.Height,
		s.TakeOffTime,
		s.TakeOffVelocity,
		s.PeakVelocity,
		s.MeanVelocity,
		s.MeanGRFOverDistance,
		s.MeanGRFOverTime,
		s.PeakGRF,
		s.PeakPower,
		s.MeanPower,
		s.PeakRFD,
		s.PeakRPD,
	}
}

// NaNSummary is the sentinel row for a run that did not achieve take-off.
// Load identity fields are kept so batch rows stay attributable.
func NaNSummary(l Load) Summary {
	nan := math.NaN()
	return Summary{
		Bodyweight:          l.Bodyweight,
		ExternalLoad:        l.ExternalLoad,
		Mass:                l.TotalMass(),
		Height:              nan,
		TakeOffTime:         nan,
		TakeOffVelocity:     nan,
		PeakVelocity:        nan,
		MeanVelocity:        nan,
		MeanGRFOverDistance: nan,
		MeanGRFOverTime:     nan,
		PeakGRF:             nan,
		PeakPower:           nan,
		MeanPower:           nan,
		PeakRFD:             nan,
		PeakRPD:             nan,
	}
}

// Result is one run's output. Trace is nil unless Options.SaveTrace was set.
type Result struct {
	Summary Summary
	Trace   []Step
}
