package kinematics

import (
	"errors"
	"fmt"
	"math"

	"github.com/wildstyl3r/dfrxsec/internal/constants"
)

var (
	ErrUndefinedTransform  = errors.New("kinematics: no transform between phase spaces")
	ErrNonPositiveJacobian = errors.New("kinematics: non-positive jacobian")
	ErrUnknownPhaseSpace   = errors.New("kinematics: unknown phase space")
)

// PhaseSpace selects the variables a differential cross section is
// expressed in. All of them are at fixed probe energy.
type PhaseSpace int

const (
	XYfE PhaseSpace = iota
	XYTfE
	Q2YfE
	Q2YTfE
	XQ2fE
	LogXLogYfE
)

var PhaseSpaces = []PhaseSpace{XYfE, XYTfE, Q2YfE, Q2YTfE, XQ2fE, LogXLogYfE}

var phaseSpaceNames = map[PhaseSpace]string{
	XYfE:       "<{x,y}|E>",
	XYTfE:      "<{x,y,t}|E>",
	Q2YfE:      "<{Q2,y}|E>",
	Q2YTfE:     "<{Q2,y,t}|E>",
	XQ2fE:      "<{x,Q2}|E>",
	LogXLogYfE: "<{logx,logy}|E>",
}

func (ps PhaseSpace) String() string {
	if name, some := phaseSpaceNames[ps]; some {
		return name
	}
	return fmt.Sprintf("PhaseSpace(%d)", int(ps))
}

func ParsePhaseSpace(s string) (PhaseSpace, error) {
	for ps, name := range phaseSpaceNames {
		if name == s {
			return ps, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPhaseSpace, s)
}

// HasT reports whether the phase space carries the momentum transfer t.
func (ps PhaseSpace) HasT() bool {
	return ps == XYTfE || ps == Q2YTfE
}

// XY returns the (x,y) phase space with the same t content as ps.
func (ps PhaseSpace) XY() PhaseSpace {
	if ps.HasT() {
		return XYTfE
	}
	return XYfE
}

// Q2 is the momentum transfer implied by x and y.
func (c Context) Q2() float64 {
	return 2. * c.Kine.X * c.Kine.Y * constants.NucleonMass * c.Energy
}

// fromXY holds d(x,y)/d(coordinates) for each family of coordinates, so that
// dsigma/d(coordinates) = fromXY * dsigma/dxdy.
var fromXY = map[PhaseSpace]func(c Context) float64{
	XYfE: func(c Context) float64 { return 1 },
	Q2YfE: func(c Context) float64 {
		return 1. / (2. * c.Kine.Y * constants.NucleonMass * c.Energy)
	},
	XQ2fE: func(c Context) float64 {
		return 1. / (2. * c.Kine.X * constants.NucleonMass * c.Energy)
	},
	LogXLogYfE: func(c Context) float64 { return c.Kine.X * c.Kine.Y },
}

func family(ps PhaseSpace) (PhaseSpace, bool) {
	switch ps {
	case XYfE, XYTfE:
		return XYfE, true
	case Q2YfE, Q2YTfE:
		return Q2YfE, true
	case XQ2fE, LogXLogYfE:
		return ps, true
	}
	return ps, false
}

// Jacobian returns J such that dsigma/d(to) = J * dsigma/d(from) at the point
// described by c.
func Jacobian(c Context, from, to PhaseSpace) (float64, error) {
	fromFamily, fromKnown := family(from)
	toFamily, toKnown := family(to)
	if !fromKnown || !toKnown || from.HasT() != to.HasT() {
		return 0, fmt.Errorf("%w: %v -> %v", ErrUndefinedTransform, from, to)
	}
	if fromFamily == toFamily {
		return 1, nil
	}
	J := fromXY[toFamily](c) / fromXY[fromFamily](c)
	if !(J > 0) || math.IsInf(J, 0) {
		return J, fmt.Errorf("%w: %v -> %v at x=%g, y=%g, E=%g: J=%g", ErrNonPositiveJacobian, from, to, c.Kine.X, c.Kine.Y, c.Energy, J)
	}
	return J, nil
}
