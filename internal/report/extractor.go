package report

import (
	"fmt"
	"log"
	"strings"

	"github.com/wildstyl3r/dfrxsec/internal/config"
	"github.com/wildstyl3r/dfrxsec/internal/hadxs"
	"github.com/wildstyl3r/dfrxsec/internal/integration"
	"github.com/wildstyl3r/dfrxsec/internal/kinematics"
	"github.com/wildstyl3r/dfrxsec/internal/xsec"
)

// DataExtractor evaluates one run and holds its total cross sections.
type DataExtractor struct {
	run         config.RunParameters
	alg         xsec.Algorithm
	integrator  integration.Integrator
	table       hadxs.Table
	interaction kinematics.Context
	totals      []float64 // [GeV^-2], one per run energy
}

// NewTable builds the pion-nucleon table named by the run.
func NewTable(run config.RunParameters) (hadxs.Table, error) {
	switch {
	case run.PionTable == "" || run.PionTable == "fit":
		return hadxs.NewPionNucleonFit(run.PionCharge), nil
	case strings.HasSuffix(run.PionTable, ".lxcat"):
		maxE := 0.
		for _, E := range run.Energies {
			maxE = max(maxE, E)
		}
		return hadxs.LoadLXCat(run.PionTable, 0, maxE)
	default:
		return hadxs.LoadTabulated(run.PionTable, "GeV", "mb")
	}
}

// NewIntegrator builds the integrator named by the run.
func NewIntegrator(run config.RunParameters, logger *log.Logger) (integration.Integrator, error) {
	switch run.Integrator {
	case "", "grid":
		g := integration.NewGrid()
		g.NX, g.NY = run.NX, run.NY
		g.Threads = run.Threads
		g.LeptonMass = run.LeptonMass
		g.Logger = logger
		return g, nil
	case "gauss":
		g := integration.NewGaussLegendre(run.GaussNodes)
		g.Threads = run.Threads
		g.LeptonMass = run.LeptonMass
		g.Logger = logger
		return g, nil
	}
	return nil, fmt.Errorf("report: unknown integrator %q", run.Integrator)
}

// Interaction is the template context of a run: a diffractive interaction on
// the run target, x and y left for the integrator.
func Interaction(run config.RunParameters) (kinematics.Context, error) {
	var flags kinematics.Flags
	if run.FreeNucleon {
		flags |= kinematics.AssumeFreeNucleon
	}
	hit, err := kinematics.ParseNucleon(run.HitNucleon)
	if err != nil {
		return kinematics.Context{}, err
	}
	target := kinematics.Target{Z: run.Z, N: run.N, HitNucleon: hit}
	return kinematics.New(0, 0, 0, kinematics.Diffractive, target, flags), nil
}

func NewDataExtractor(run config.RunParameters, store config.ParameterStore, logger *log.Logger) (*DataExtractor, error) {
	table, err := NewTable(run)
	if err != nil {
		return nil, err
	}
	alg, err := xsec.New(run.Algorithm, store, table)
	if err != nil {
		return nil, err
	}
	if dfr, ok := alg.(*xsec.ReinDFR); ok {
		dfr.SetLogger(logger)
	}
	integrator, err := NewIntegrator(run, logger)
	if err != nil {
		return nil, err
	}
	interaction, err := Interaction(run)
	if err != nil {
		return nil, err
	}
	de := &DataExtractor{
		run:         run,
		alg:         alg,
		integrator:  integrator,
		table:       table,
		interaction: interaction,
	}
	return de, de.integrate()
}

func (de *DataExtractor) integrate() error {
	de.totals = make([]float64, len(de.run.Energies))
	for i, E := range de.run.Energies {
		interaction := de.interaction
		interaction.Energy = E
		total, err := de.integrator.Integral(de.alg, interaction)
		if err != nil {
			return fmt.Errorf("integral at E = %g GeV: %w", E, err)
		}
		de.totals[i] = total
	}
	return nil
}

func (de *DataExtractor) Totals() []float64 {
	return de.totals
}

// sliceY tabulates d2sigma/dxdy along y at x = SliceX; points outside the
// open y range are zero.
func (de *DataExtractor) sliceY(E float64, ys []float64) ([]float64, error) {
	_, open := integration.Ranges(E, de.run.LeptonMass)
	values := make([]float64, len(ys))
	for i, y := range ys {
		if y < open.Min || y > open.Max {
			continue
		}
		interaction := de.interaction
		interaction.Energy = E
		v, err := de.alg.XSec(interaction.WithXY(de.run.SliceX, y), kinematics.XYfE)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
