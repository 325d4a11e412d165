package xsec

import (
	"fmt"
	"log"
	"math"

	"github.com/wildstyl3r/dfrxsec/internal/config"
	"github.com/wildstyl3r/dfrxsec/internal/constants"
	"github.com/wildstyl3r/dfrxsec/internal/hadxs"
	"github.com/wildstyl3r/dfrxsec/internal/kinematics"
)

// TMax is the upper |t| bound [GeV^2] of the analytic t integration.
const TMax = 99.0

// Parameters of the Rein-Sehgal diffractive model.
type Parameters struct {
	Ma   float64 // axial mass [GeV]
	Beta float64 // t slope [GeV^-2]
}

// ResolveParameters reads Ma and beta from the local registry, falling back
// to DFR-Ma and DFR-Beta from the global one.
func ResolveParameters(store config.ParameterStore) (p Parameters, err error) {
	if p.Ma, err = config.Resolve(store, "Ma", "DFR-Ma"); err != nil {
		return p, err
	}
	if p.Beta, err = config.Resolve(store, "beta", "DFR-Beta"); err != nil {
		return p, err
	}
	return p, nil
}

// ReinDFR is the Rein-Sehgal diffractive pion production cross section,
// native in XYfE.
type ReinDFR struct {
	params Parameters
	table  hadxs.Table
	logger *log.Logger
}

func NewReinDFR(store config.ParameterStore, table hadxs.Table) (*ReinDFR, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil table", ErrSecondaryTable)
	}
	m := &ReinDFR{table: table}
	if err := m.Configure(store); err != nil {
		return nil, err
	}
	return m, nil
}

// Configure re-resolves the model parameters. It must not run concurrently
// with XSec.
func (m *ReinDFR) Configure(store config.ParameterStore) error {
	params, err := ResolveParameters(store)
	if err != nil {
		return fmt.Errorf("configure ReinDFR: %w", err)
	}
	m.params = params
	return nil
}

func (m *ReinDFR) Parameters() Parameters {
	return m.params
}

// SetLogger enables debug output of intermediate quantities.
func (m *ReinDFR) SetLogger(logger *log.Logger) {
	m.logger = logger
}

func (m *ReinDFR) NativePhaseSpace() kinematics.PhaseSpace {
	return kinematics.XYfE
}

func (m *ReinDFR) ValidProcess(c kinematics.Context) bool {
	if c.Flags.Has(kinematics.SkipProcessCheck) {
		return true
	}
	return c.Process == kinematics.Diffractive
}

func (m *ReinDFR) ValidKinematics(c kinematics.Context) bool {
	if c.Flags.Has(kinematics.SkipKinematicCheck) {
		return true
	}
	return finite(c.Kine.X) && finite(c.Kine.Y) && finite(c.Kine.T)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// TMin is the lowest |t| [GeV^2] reachable by a pion of energy epi.
func TMin(epi float64) float64 {
	return math.Pow(0.5*constants.PionMass2/epi, 2.)
}

// TIntegral is the integral of exp(-beta t) over [TMin(epi), TMax].
func TIntegral(beta, epi float64) float64 {
	tmin := TMin(epi)
	if tmin >= TMax {
		return 0
	}
	return (math.Exp(-beta*tmin) - math.Exp(-beta*TMax)) / beta
}

// Base is d3sigma/dxdydt / exp(-beta t) on a free nucleon:
//
//	G E fpi^2 (1-y) [Ma^2/(Ma^2+Q^2)]^2 sigma_tot(y E)^2
//
// with G = GF^2 M / (16 pi^3). XSec in XYfE is Base times TIntegral.
func (m *ReinDFR) Base(c kinematics.Context) (float64, error) {
	E := c.Energy
	y := c.Kine.Y
	Q2 := c.Q2()
	Gf := constants.FermiConstant2 * constants.NucleonMass / (16 * constants.Pi3)
	fp := constants.PionDecayConstantRatio * constants.PionMass
	fp2 := fp * fp
	Epi := y * E
	ma2 := m.params.Ma * m.params.Ma
	propg := math.Pow(ma2/(ma2+Q2), 2.)
	sTot, err := m.table.TotalXSec(Epi)
	if err != nil {
		return 0, fmt.Errorf("%w: E_pi = %g: %w", ErrSecondaryTable, Epi, err)
	}
	sTot2 := sTot * sTot

	if m.logger != nil {
		m.logger.Printf("E = %g, x = %g, y = %g, Q2 = %g", E, c.Kine.X, y, Q2)
		m.logger.Printf("Epi = %g, s^{piN}_{tot} = %g", Epi, sTot)
	}

	return Gf * E * fp2 * (1 - y) * propg * sTot2, nil
}

func (m *ReinDFR) XSec(c kinematics.Context, ps kinematics.PhaseSpace) (float64, error) {
	if !m.ValidProcess(c) || !m.ValidKinematics(c) {
		return 0, nil
	}
	if err := c.Validate(); err != nil {
		return 0, err
	}

	xsec, err := m.Base(c)
	if err != nil {
		return 0, err
	}

	Epi := c.Kine.Y * c.Energy
	if ps.HasT() {
		t := c.Kine.T
		if !(t >= TMin(Epi) && t <= TMax) {
			return 0, nil
		}
		xsec *= math.Exp(-m.params.Beta * t)
	} else {
		xsec *= TIntegral(m.params.Beta, Epi)
	}

	if from := ps.XY(); from != ps {
		J, err := kinematics.Jacobian(c, from, ps)
		if err != nil {
			return 0, err
		}
		if m.logger != nil {
			m.logger.Printf("Jacobian for transformation to: %v, J = %g", ps, J)
		}
		xsec *= J
	}

	if !c.Flags.Has(kinematics.AssumeFreeNucleon) {
		nNucl, err := c.Target.ScatteringCenters()
		if err != nil {
			return 0, err
		}
		xsec *= float64(nNucl)
	}

	if !(xsec >= 0) || math.IsInf(xsec, 0) {
		return xsec, fmt.Errorf("%w: %g at E = %g, x = %g, y = %g", ErrNegativeXSec, xsec, c.Energy, c.Kine.X, c.Kine.Y)
	}
	return xsec, nil
}

// New builds the named algorithm.
func New(name string, store config.ParameterStore, table hadxs.Table) (Algorithm, error) {
	switch name {
	case "ReinDFR", "genie::ReinDFRPXSec":
		return NewReinDFR(store, table)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}
