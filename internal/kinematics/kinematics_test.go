package kinematics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/fmom"

	"github.com/wildstyl3r/dfrxsec/internal/constants"
	"github.com/wildstyl3r/dfrxsec/internal/kinematics"
)

var carbon = kinematics.Target{Z: 6, N: 6, HitNucleon: kinematics.Proton}

func TestTarget_ScatteringCenters(t *testing.T) {
	tests := []struct {
		name    string
		target  kinematics.Target
		centers int
		wantErr bool
	}{
		{"proton in carbon", carbon, 6, false},
		{"neutron in iron", kinematics.Target{Z: 26, N: 30, HitNucleon: kinematics.Neutron}, 30, false},
		{"free proton", kinematics.Target{Z: 1, HitNucleon: kinematics.Proton}, 1, false},
		{"empty", kinematics.Target{HitNucleon: kinematics.Proton}, 0, true},
		{"unresolved nucleon", kinematics.Target{Z: 6, N: 6}, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n, err := tc.target.ScatteringCenters()
			if tc.wantErr {
				require.ErrorIs(t, err, kinematics.ErrInvalidContext)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.centers, n)
		})
	}
}

func TestContext_Validate(t *testing.T) {
	c := kinematics.New(5, 0.3, 0.4, kinematics.Diffractive, carbon, 0)
	require.NoError(t, c.Validate())

	require.ErrorIs(t, c.WithTarget(kinematics.Target{}).Validate(), kinematics.ErrInvalidContext)
	require.NoError(t, c.WithTarget(kinematics.Target{}).WithFlags(kinematics.AssumeFreeNucleon).Validate())

	c.Energy = 0
	require.ErrorIs(t, c.Validate(), kinematics.ErrInvalidContext)
	c.Energy = math.NaN()
	require.ErrorIs(t, c.Validate(), kinematics.ErrInvalidContext)
}

func TestContext_CopiesAreIndependent(t *testing.T) {
	c := kinematics.New(5, 0.3, 0.4, kinematics.Diffractive, carbon, 0)
	d := c.WithXY(0.1, 0.2).WithT(0.05)
	require.Equal(t, 0.3, c.Kine.X)
	require.Equal(t, 0.4, c.Kine.Y)
	require.Equal(t, 0., c.Kine.T)
	require.Equal(t, kinematics.Kinematics{X: 0.1, Y: 0.2, T: 0.05}, d.Kine)
}

func TestFlags(t *testing.T) {
	f := kinematics.AssumeFreeNucleon | kinematics.SkipKinematicCheck
	require.True(t, f.Has(kinematics.AssumeFreeNucleon))
	require.True(t, f.Has(kinematics.SkipKinematicCheck))
	require.False(t, f.Has(kinematics.SkipProcessCheck))
}

func TestParseNucleon(t *testing.T) {
	for s, want := range map[string]kinematics.Nucleon{"p": kinematics.Proton, "proton": kinematics.Proton, "n": kinematics.Neutron, "neutron": kinematics.Neutron} {
		got, err := kinematics.ParseNucleon(s)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := kinematics.ParseNucleon("d")
	require.ErrorIs(t, err, kinematics.ErrInvalidContext)
}

func TestFromLab_NucleonAtRest(t *testing.T) {
	probe := fmom.NewPxPyPzE(0, 0, 3, 3)
	nucleon := fmom.NewPxPyPzE(0, 0, 0, constants.NucleonMass)
	c, err := kinematics.FromLab(probe, nucleon, 0.3, 0.4, kinematics.Diffractive, carbon, 0)
	require.NoError(t, err)
	require.InDelta(t, 3., c.Energy, 1e-12)
	require.Equal(t, 0.3, c.Kine.X)
}

func TestFromLab_MovingNucleon(t *testing.T) {
	// head-on nucleon: the probe is harder in the nucleon rest frame
	pz := -0.2
	nucleon := fmom.NewPxPyPzE(0, 0, pz, math.Hypot(constants.NucleonMass, pz))
	probe := fmom.NewPxPyPzE(0, 0, 3, 3)
	c, err := kinematics.FromLab(probe, nucleon, 0.3, 0.4, kinematics.Diffractive, carbon, 0)
	require.NoError(t, err)
	want := 3. * (nucleon.E() - pz) / constants.NucleonMass
	require.InDelta(t, want, c.Energy, 1e-12)
	require.Greater(t, c.Energy, 3.)

	_, err = kinematics.FromLab(probe, fmom.NewPxPyPzE(0, 0, 0, 0), 0.3, 0.4, kinematics.Diffractive, carbon, 0)
	require.ErrorIs(t, err, kinematics.ErrInvalidContext)
}

func TestProcessType_String(t *testing.T) {
	require.Equal(t, "diffractive", kinematics.Diffractive.String())
	require.Equal(t, "ProcessType(42)", kinematics.ProcessType(42).String())
}
