package kinematics

import (
	"errors"
	"fmt"
	"math"

	"go-hep.org/x/hep/fmom"
)

var ErrInvalidContext = errors.New("kinematics: invalid interaction context")

type ProcessType int

const (
	Unknown ProcessType = iota
	Diffractive
	Coherent
	QuasiElastic
	Resonant
	DeepInelastic
)

var processNames = map[ProcessType]string{
	Unknown:       "unknown",
	Diffractive:   "diffractive",
	Coherent:      "coherent",
	QuasiElastic:  "quasi-elastic",
	Resonant:      "resonant",
	DeepInelastic: "deep-inelastic",
}

func (p ProcessType) String() string {
	if name, some := processNames[p]; some {
		return name
	}
	return fmt.Sprintf("ProcessType(%d)", int(p))
}

type Nucleon int

const (
	NoNucleon Nucleon = iota
	Proton
	Neutron
)

// ParseNucleon accepts "p", "proton", "n" and "neutron".
func ParseNucleon(s string) (Nucleon, error) {
	switch s {
	case "p", "proton":
		return Proton, nil
	case "n", "neutron":
		return Neutron, nil
	}
	return NoNucleon, fmt.Errorf("%w: unknown nucleon %q", ErrInvalidContext, s)
}

type Target struct {
	Z          int
	N          int
	HitNucleon Nucleon
}

func (t Target) A() int {
	return t.Z + t.N
}

// ScatteringCenters is the number of nucleons of the struck species.
func (t Target) ScatteringCenters() (int, error) {
	if t.A() < 1 {
		return 0, fmt.Errorf("%w: empty target (Z=%d, N=%d)", ErrInvalidContext, t.Z, t.N)
	}
	switch t.HitNucleon {
	case Proton:
		return t.Z, nil
	case Neutron:
		return t.N, nil
	}
	return 0, fmt.Errorf("%w: hit nucleon is neither proton nor neutron", ErrInvalidContext)
}

type Flags uint8

const (
	AssumeFreeNucleon Flags = 1 << iota
	SkipProcessCheck
	SkipKinematicCheck
)

func (f Flags) Has(flag Flags) bool {
	return f&flag != 0
}

// Kinematics holds the selected coordinates. T is |t| [GeV^2] and is only
// read by parameterizations that carry it.
type Kinematics struct {
	X, Y float64
	T    float64
}

// Context describes one interaction. It is passed by value; modifiers return
// copies.
type Context struct {
	Energy  float64 // probe energy in the hit nucleon rest frame [GeV]
	Kine    Kinematics
	Process ProcessType
	Target  Target
	Flags   Flags
}

func New(energy, x, y float64, process ProcessType, target Target, flags Flags) Context {
	return Context{
		Energy:  energy,
		Kine:    Kinematics{X: x, Y: y},
		Process: process,
		Target:  target,
		Flags:   flags,
	}
}

// FromLab builds a context from lab frame four-momenta of the probe and of the
// hit nucleon, taking E = p.P/M in the nucleon rest frame.
func FromLab(probe, nucleon fmom.PxPyPzE, x, y float64, process ProcessType, target Target, flags Flags) (Context, error) {
	mass := nucleon.M()
	if !(mass > 0) {
		return Context{}, fmt.Errorf("%w: hit nucleon is not massive (m=%g)", ErrInvalidContext, mass)
	}
	return New(fmom.Dot(&probe, &nucleon)/mass, x, y, process, target, flags), nil
}

func (c Context) WithXY(x, y float64) Context {
	c.Kine.X, c.Kine.Y = x, y
	return c
}

func (c Context) WithT(t float64) Context {
	c.Kine.T = t
	return c
}

func (c Context) WithFlags(flags Flags) Context {
	c.Flags = flags
	return c
}

func (c Context) WithTarget(target Target) Context {
	c.Target = target
	return c
}

func (c Context) Validate() error {
	if !(c.Energy > 0) || math.IsInf(c.Energy, 0) {
		return fmt.Errorf("%w: probe energy %g", ErrInvalidContext, c.Energy)
	}
	if !c.Flags.Has(AssumeFreeNucleon) {
		if _, err := c.Target.ScatteringCenters(); err != nil {
			return err
		}
	}
	return nil
}
