// Package engine time-steps the push-off phase of a loaded vertical jump
// until take-off and reduces the trajectory to scalar summaries.
package engine

import (
	"math"

	"github.com/ouzlim/vjsim/internal/fgen"
)

// InitialActivation is the activation needed to exactly support the weight
// at the bottom position. It must land in (0,1]: above 1 the generator can
// never hold the load statically, which is rejected as a parameter error.
func InitialActivation(load Load, p fgen.Params) (float64, error) {
	potential := fgen.PotentialForce(0, load.PushOffDistance, p)
	if !(potential > 0) {
		return 0, invalidParam("peak_location", p.PeakLocation, "potential force at start of push-off is zero")
	}
	a0 := load.Weight() / potential
	if a0 > 1 {
		return 0, invalidParam("initial_activation", a0, "weight exceeds potential force at start of push-off")
	}
	return a0, nil
}

// Run integrates one push-off phase with an explicit fixed-step update and
// returns the summary, plus the full trace when requested. Take-off time and
// velocity are linearly interpolated at the distance crossing so they do not
// inherit the step granularity.
func Run(load Load, p fgen.Params, opts Options) (*Result, error) {
	if err := load.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	a0, err := InitialActivation(load, p)
	if err != nil {
		return nil, err
	}

	weight := load.Weight()
	mass := load.TotalMass()

	eval := func(t, d, v float64) Step {
		pct := fgen.ForcePercentage(d, load.PushOffDistance, p.DeclineRate, p.PeakLocation)
		act := fgen.Activation(t, a0, p.TimeToMaxActivation)
		potential := p.MaxForce * pct
		generated := act * potential
		viscous := fgen.ViscousForce(v, p.MaxForce, p.MaxVelocity)
		// The viscous loss is scaled by the same force-length percentage,
		// otherwise GRF would invert near take-off where the percentage
		// approaches zero.
		grf := generated - viscous*pct
		propulsive := grf - weight
		return Step{
			Time:            t,
			Distance:        d,
			Velocity:        v,
			ForcePercentage: pct,
			Activation:      act,
			PotentialForce:  potential,
			GeneratedForce:  generated,
			ViscousForce:    viscous,
			GroundReaction:  grf,
			PropulsiveForce: propulsive,
			Acceleration:    propulsive / mass,
		}
	}

	dt := opts.TimeStep
	prev := eval(0, 0, 0)

	var trace []Step
	if opts.SaveTrace {
		trace = append(trace, prev)
	}

	agg := newAggregator(prev)

	for {
		t := prev.Time + dt

		// Euler predictor in the classic update order, then a trapezoid
		// corrector. One Euler pass alone needs a far finer step to keep
		// take-off velocity step-size independent at the documented level.
		ve := prev.Velocity + prev.Acceleration*dt
		de := prev.Distance + ve*dt
		pred := eval(t, de, ve)

		v := prev.Velocity + 0.5*(prev.Acceleration+pred.Acceleration)*dt
		d := prev.Distance + 0.5*(prev.Velocity+v)*dt

		if d >= load.PushOffDistance {
			frac := 1.0
			if d > prev.Distance {
				frac = (load.PushOffDistance - prev.Distance) / (d - prev.Distance)
			}
			toTime := prev.Time + frac*dt
			toVel := prev.Velocity + frac*(v-prev.Velocity)
			final := eval(toTime, load.PushOffDistance, toVel)
			agg.observe(prev, final)
			if opts.SaveTrace {
				trace = append(trace, final)
			}
			summary := agg.summarize(load, toTime, toVel)
			return &Result{Summary: summary, Trace: trace}, nil
		}

		if t > opts.MaxTime {
			return &Result{Summary: NaNSummary(load), Trace: trace},
				&NoTakeOffError{MaxTime: opts.MaxTime, Distance: prev.Distance}
		}

		cur := eval(t, d, v)
		agg.observe(prev, cur)
		if opts.SaveTrace {
			trace = append(trace, cur)
		}
		prev = cur
	}
}

// aggregator folds trapezoidal integrals and peaks over consecutive steps so
// summaries never require a retained trace.
type aggregator struct {
	peakVelocity float64
	peakGRF      float64
	peakPower    float64
	peakRFD      float64
	peakRPD      float64
	grfOverDist  float64 // integral of GRF over distance (work against GRF)
	grfOverTime  float64 // integral of GRF over time (impulse)
	powerOverT   float64 // integral of power over time
}

func newAggregator(first Step) *aggregator {
	return &aggregator{
		peakVelocity: first.Velocity,
		peakGRF:      first.GroundReaction,
		peakPower:    first.GroundReaction * first.Velocity,
		peakRFD:      math.Inf(-1),
		peakRPD:      math.Inf(-1),
	}
}

func (a *aggregator) observe(prev, cur Step) {
	dt := cur.Time - prev.Time
	if dt <= 0 {
		return
	}
	prevPower := prev.GroundReaction * prev.Velocity
	curPower := cur.GroundReaction * cur.Velocity

	a.peakVelocity = math.Max(a.peakVelocity, cur.Velocity)
	a.peakGRF = math.Max(a.peakGRF, cur.GroundReaction)
	a.peakPower = math.Max(a.peakPower, curPower)
	a.peakRFD = math.Max(a.peakRFD, (cur.GroundReaction-prev.GroundReaction)/dt)
	a.peakRPD = math.Max(a.peakRPD, (curPower-prevPower)/dt)

	a.grfOverDist += 0.5 * (prev.GroundReaction + cur.GroundReaction) * (cur.Distance - prev.Distance)
	a.grfOverTime += 0.5 * (prev.GroundReaction + cur.GroundReaction) * dt
	a.powerOverT += 0.5 * (prevPower + curPower) * dt
}

func (a *aggregator) summarize(load Load, takeOffTime, takeOffVelocity float64) Summary {
	return Summary{
		Bodyweight:          load.Bodyweight,
		ExternalLoad:        load.ExternalLoad,
		Mass:                load.TotalMass(),
		Height:              takeOffVelocity * takeOffVelocity / (2 * load.Gravity),
		TakeOffTime:         takeOffTime,
		TakeOffVelocity:     takeOffVelocity,
		PeakVelocity:        math.Max(a.peakVelocity, takeOffVelocity),
		MeanVelocity:        load.PushOffDistance / takeOffTime,
		MeanGRFOverDistance: a.grfOverDist / load.PushOffDistance,
		MeanGRFOverTime:     a.grfOverTime / takeOffTime,
		PeakGRF:             a.peakGRF,
		PeakPower:           a.peakPower,
		MeanPower:           a.powerOverT / takeOffTime,
		PeakRFD:             a.peakRFD,
		PeakRPD:             a.peakRPD,
	}
}
