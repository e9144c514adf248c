// Package fgen models a single force generator with force-length,
// force-time (activation) and force-velocity (viscous) characteristics.
// All functions are pure: state in, force out.
package fgen

import "math"

const (
	DefaultMaxForce            = 3000.0
	DefaultMaxVelocity         = 4.0
	DefaultDeclineRate         = 1.05
	DefaultPeakLocation        = -0.06
	DefaultTimeToMaxActivation = 0.3
)

// Params describes one force generator. Immutable for the duration of a run.
type Params struct {
	// MaxForce is the peak isometric force in N.
	MaxForce float64
	// MaxVelocity is the maximum shortening velocity in m/s. +Inf disables
	// the force-velocity characteristic entirely.
	MaxVelocity float64
	// DeclineRate controls how fast force drops off away from PeakLocation.
	// Zero disables the force-length characteristic.
	DeclineRate float64
	// PeakLocation is where force peaks, in meters relative to take-off
	// (negative means before take-off).
	PeakLocation float64
	// TimeToMaxActivation is the time in s to go from zero to full
	// activation. Zero means instantaneous full activation.
	TimeToMaxActivation float64
}

func DefaultParams() Params {
	return Params{
		MaxForce:            DefaultMaxForce,
		MaxVelocity:         DefaultMaxVelocity,
		DeclineRate:         DefaultDeclineRate,
		PeakLocation:        DefaultPeakLocation,
		TimeToMaxActivation: DefaultTimeToMaxActivation,
	}
}

func (p Params) Validate() error {
	if !(p.MaxForce > 0) {
		return &ParamError{Field: "max_force", Value: p.MaxForce, Reason: "must be positive"}
	}
	if !(p.MaxVelocity > 0) {
		return &ParamError{Field: "max_velocity", Value: p.MaxVelocity, Reason: "must be positive (use +Inf to disable)"}
	}
	if p.DeclineRate < 0 {
		return &ParamError{Field: "decline_rate", Value: p.DeclineRate, Reason: "must be non-negative"}
	}
	if p.TimeToMaxActivation < 0 {
		return &ParamError{Field: "time_to_max_activation", Value: p.TimeToMaxActivation, Reason: "must be non-negative"}
	}
	return nil
}

// ForcePercentage is the isometric force-length characteristic. It equals 1
// when the distance left to take-off matches peakLocation and falls off
// quadratically on both sides, clamped to [0,1]. declineRate = 0 disables
// the characteristic.
func ForcePercentage(currentDistance, pushOffDistance, declineRate, peakLocation float64) float64 {
	if declineRate == 0 {
		return 1
	}
	toTakeOff := currentDistance - pushOffDistance
	d := declineRate * (toTakeOff - peakLocation)
	pct := 1 - d*d
	if pct < 0 {
		return 0
	}
	return pct
}

// Activation is the force-time characteristic. The generator moves along a
// fixed master sigmoid sin^2(pi*u/2) at rate 1/timeToMax, starting at the
// point on the curve where activation equals initialActivation. A generator
// that starts further along the curve therefore reaches full activation
// sooner. timeToMax <= 0 means full activation at all times.
func Activation(currentTime, initialActivation, timeToMax float64) float64 {
	if timeToMax <= 0 {
		return 1
	}
	a0 := initialActivation
	if a0 < 0 {
		a0 = 0
	} else if a0 > 1 {
		a0 = 1
	}
	u := 2/math.Pi*math.Asin(math.Sqrt(a0)) + currentTime/timeToMax
	if u >= 1 {
		return 1
	}
	s := math.Sin(math.Pi * u / 2)
	return s * s
}

// ViscousForce is the force lost to the force-velocity characteristic,
// linear in velocity with slope maxForce/maxVelocity. maxVelocity = +Inf
// yields zero loss.
func ViscousForce(currentVelocity, maxForce, maxVelocity float64) float64 {
	if math.IsInf(maxVelocity, 1) {
		return 0
	}
	return maxForce / maxVelocity * currentVelocity
}

// VelocityAtForce is the unconstrained peak velocity reachable against a
// constant external force. Only meaningful for externalForce < maxForce.
func VelocityAtForce(externalForce, maxForce, maxVelocity float64) float64 {
	return (maxForce - externalForce) * maxVelocity / maxForce
}

// PotentialForce is the force ceiling at a position, before activation.
func PotentialForce(currentDistance, pushOffDistance float64, p Params) float64 {
	return p.MaxForce * ForcePercentage(currentDistance, pushOffDistance, p.DeclineRate, p.PeakLocation)
}
