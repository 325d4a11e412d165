package integration_test

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wildstyl3r/dfrxsec/internal/config"
	"github.com/wildstyl3r/dfrxsec/internal/constants"
	"github.com/wildstyl3r/dfrxsec/internal/hadxs"
	"github.com/wildstyl3r/dfrxsec/internal/integration"
	"github.com/wildstyl3r/dfrxsec/internal/kinematics"
	"github.com/wildstyl3r/dfrxsec/internal/xsec"
)

type differential func(c kinematics.Context) (float64, error)

func (f differential) XSec(c kinematics.Context, ps kinematics.PhaseSpace) (float64, error) {
	return f(c)
}

var carbon = kinematics.Target{Z: 6, N: 6, HitNucleon: kinematics.Proton}

func interaction(E float64) kinematics.Context {
	return kinematics.New(E, 0, 0, kinematics.Diffractive, carbon, 0)
}

func model(t testing.TB) *xsec.ReinDFR {
	t.Helper()
	m, err := xsec.NewReinDFR(config.Resolver{GlobalRegistry: config.Registry{"DFR-Ma": 1, "DFR-Beta": 7}}, hadxs.NewPionNucleonFit(0))
	require.NoError(t, err)
	return m
}

func TestRanges(t *testing.T) {
	x, y := integration.Ranges(5, constants.MuonMass)
	require.Equal(t, integration.Range1D{Min: 1e-6, Max: 1 - 1e-6}, x)
	require.InDelta(t, constants.PionMass/5+1e-6, y.Min, 1e-15)
	require.InDelta(t, 1-constants.MuonMass/5-1e-6, y.Max, 1e-15)
	require.False(t, y.Empty())

	_, y = integration.Ranges(0.2, constants.MuonMass)
	require.True(t, y.Empty())

	require.InDelta(t, constants.PionMass+constants.MuonMass, integration.Threshold(constants.MuonMass), 1e-5)
}

func TestIntegral_BelowThreshold(t *testing.T) {
	never := differential(func(c kinematics.Context) (float64, error) {
		t.Errorf("integrand evaluated at E = %g", c.Energy)
		return 0, nil
	})
	threshold := integration.Threshold(constants.MuonMass)
	for _, integrator := range []integration.Integrator{integration.NewGrid(), integration.NewGaussLegendre(16)} {
		for _, E := range []float64{0.9 * threshold, 0.2, 0.1} {
			got, err := integrator.Integral(never, interaction(E))
			require.NoError(t, err)
			require.Equal(t, 0., got)
		}
	}
}

func TestGrid_Constant(t *testing.T) {
	one := differential(func(c kinematics.Context) (float64, error) { return 1, nil })
	E := 3.
	x, y := integration.Ranges(E, constants.MuonMass)
	area := (x.Max - x.Min) * (y.Max - y.Min)

	grid := integration.NewGrid()
	grid.NX, grid.NY = 11, 21
	got, err := grid.Integral(one, interaction(E))
	require.NoError(t, err)
	// every sample carries a full cell, ends included
	require.InEpsilon(t, area*11./10.*21./20., got, 1e-12)
}

func TestGaussLegendre_Polynomial(t *testing.T) {
	xy := differential(func(c kinematics.Context) (float64, error) { return c.Kine.X * c.Kine.Y * c.Kine.Y, nil })
	E := 3.
	x, y := integration.Ranges(E, constants.MuonMass)
	want := (x.Max*x.Max - x.Min*x.Min) / 2 * (math.Pow(y.Max, 3) - math.Pow(y.Min, 3)) / 3

	got, err := integration.NewGaussLegendre(4).Integral(xy, interaction(E))
	require.NoError(t, err)
	require.InEpsilon(t, want, got, 1e-12)
}

func TestIntegral_InvalidSizes(t *testing.T) {
	one := differential(func(c kinematics.Context) (float64, error) { return 1, nil })
	grid := integration.NewGrid()
	grid.NX = 1
	_, err := grid.Integral(one, interaction(5))
	require.Error(t, err)

	_, err = integration.NewGaussLegendre(0).Integral(one, interaction(5))
	require.Error(t, err)
}

func TestIntegral_ErrorPropagates(t *testing.T) {
	errBroken := errors.New("broken")
	var calls atomic.Int64
	broken := differential(func(c kinematics.Context) (float64, error) {
		calls.Add(1)
		if c.Kine.X > 0.5 {
			return 0, errBroken
		}
		return 1, nil
	})
	grid := integration.NewGrid()
	grid.NX, grid.NY, grid.Threads = 20, 20, 4
	_, err := grid.Integral(broken, interaction(5))
	require.ErrorIs(t, err, errBroken)
	require.Positive(t, calls.Load())
}

func TestIntegral_ReinDFR(t *testing.T) {
	m := model(t)
	grid := integration.NewGrid()
	grid.NX, grid.NY = 60, 60
	for _, E := range []float64{0.5, 1, 2, 5, 50} {
		got, err := grid.Integral(m, interaction(E))
		require.NoError(t, err)
		require.Greater(t, got, 0., "E = %g", E)
		require.False(t, math.IsInf(got, 0))
	}
}

func TestIntegral_DeterministicAcrossThreads(t *testing.T) {
	m := model(t)
	c := interaction(5)

	grid := integration.NewGrid()
	grid.NX, grid.NY = 80, 50
	gauss := integration.NewGaussLegendre(24)

	for _, integrator := range []interface {
		integration.Integrator
		setThreads(n int)
	}{
		gridThreads{grid},
		gaussThreads{gauss},
	} {
		integrator.setThreads(1)
		serial, err := integrator.Integral(m, c)
		require.NoError(t, err)
		for _, n := range []int{2, 3, 8, 0} {
			integrator.setThreads(n)
			parallel, err := integrator.Integral(m, c)
			require.NoError(t, err)
			require.Equal(t, serial, parallel, "threads = %d", n)
		}
	}
}

type gridThreads struct{ *integration.Grid }

func (g gridThreads) setThreads(n int) { g.Threads = n }

type gaussThreads struct{ *integration.GaussLegendre }

func (g gaussThreads) setThreads(n int) { g.Threads = n }

func TestIntegral_GridAgreesWithGauss(t *testing.T) {
	m := model(t)
	c := interaction(5)

	grid := integration.NewGrid()
	grid.Threads = 4
	brute, err := grid.Integral(m, c)
	require.NoError(t, err)

	gauss := integration.NewGaussLegendre(64)
	gauss.Threads = 4
	quadrature, err := gauss.Integral(m, c)
	require.NoError(t, err)

	require.InEpsilon(t, quadrature, brute, 0.05)
}

func BenchmarkGrid(b *testing.B) {
	m := model(b)
	c := interaction(5)
	grid := integration.NewGrid()
	grid.NX, grid.NY = 100, 100
	for b.Loop() {
		if _, err := grid.Integral(m, c); err != nil {
			b.Fatal(err)
		}
	}
}
