// Package hadxs provides total pion-nucleon cross sections queried by pion
// energy. All energies are in GeV and all cross sections in GeV^-2.
package hadxs

import (
	"errors"
	"math"

	"go-hep.org/x/hep/fmom"

	"github.com/wildstyl3r/dfrxsec/internal/config"
	"github.com/wildstyl3r/dfrxsec/internal/constants"
)

var ErrOutOfDomain = errors.New("hadxs: energy outside of the table domain")

// Table is a total cross section as a function of the secondary particle
// energy. Implementations must be safe for concurrent use.
type Table interface {
	TotalXSec(energy float64) (float64, error)
}

type TableFunc func(energy float64) (float64, error)

func (f TableFunc) TotalXSec(energy float64) (float64, error) {
	return f(energy)
}

// PionNucleonFit is the Regge type high energy fit
//
//	sigma(pi-+ p) = Z + B ln^2(s/s0) + Y1 (s1/s)^eta1 +- Y2 (s1/s)^eta2
//
// with s0 = (mp + mpi + M)^2, all coefficients in mb. Charge 0 averages the
// two charge states and drops the Y2 term.
type PionNucleonFit struct {
	Z, B          float64 // [mb]
	M             float64 // [GeV]
	Y1, Eta1      float64
	Y2, Eta2      float64
	S1            float64 // [GeV^2]
	Charge        int
	TargetMass    float64 // [GeV]
	SecondaryMass float64 // [GeV]
}

func NewPionNucleonFit(charge int) *PionNucleonFit {
	return &PionNucleonFit{
		Z:             18.75,
		B:             0.2720,
		M:             2.1206,
		Y1:            9.56,
		Eta1:          0.4473,
		Y2:            1.767,
		Eta2:          0.5486,
		S1:            1.,
		Charge:        charge,
		TargetMass:    constants.NucleonMass,
		SecondaryMass: constants.PionMass,
	}
}

// S is the squared centre of mass energy of a pion of energy e hitting a
// nucleon at rest.
func (f *PionNucleonFit) S(e float64) (float64, error) {
	if !(e > f.SecondaryMass) || math.IsInf(e, 0) {
		return 0, ErrOutOfDomain
	}
	p := math.Sqrt(e*e - f.SecondaryMass*f.SecondaryMass)
	sum := fmom.NewPxPyPzE(0, 0, p, e+f.TargetMass)
	return sum.M2(), nil
}

func (f *PionNucleonFit) TotalXSec(e float64) (float64, error) {
	s, err := f.S(e)
	if err != nil {
		return 0, err
	}
	s0 := math.Pow(f.TargetMass+f.SecondaryMass+f.M, 2)
	log := math.Log(s / s0)
	xsec := f.Z + f.B*log*log + f.Y1*math.Pow(f.S1/s, f.Eta1)
	switch {
	case f.Charge < 0:
		xsec += f.Y2 * math.Pow(f.S1/s, f.Eta2)
	case f.Charge > 0:
		xsec -= f.Y2 * math.Pow(f.S1/s, f.Eta2)
	}
	return xsec * config.MilliBarn, nil
}
