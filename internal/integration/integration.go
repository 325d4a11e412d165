// Package integration computes total cross sections by integrating a
// differential cross section over the (x,y) region open at a probe energy.
package integration

import (
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/wildstyl3r/dfrxsec/internal/config"
	"github.com/wildstyl3r/dfrxsec/internal/constants"
	"github.com/wildstyl3r/dfrxsec/internal/kinematics"
	"github.com/wildstyl3r/dfrxsec/internal/utils"
)

// Differential is the part of an algorithm the integrators drive.
type Differential interface {
	XSec(c kinematics.Context, ps kinematics.PhaseSpace) (float64, error)
}

type Integrator interface {
	Integral(alg Differential, interaction kinematics.Context) (float64, error)
}

type Range1D struct {
	Min, Max float64
}

func (r Range1D) Empty() bool {
	return r.Max <= r.Min
}

// Ranges returns the x and y ranges open at probe energy E.
func Ranges(E, leptonMass float64) (x, y Range1D) {
	x = Range1D{constants.ASmallNum, 1. - constants.ASmallNum}
	y = Range1D{constants.PionMass/E + constants.ASmallNum, 1. - leptonMass/E - constants.ASmallNum}
	return
}

// Threshold is the probe energy at and below which the y range is closed.
func Threshold(leptonMass float64) float64 {
	return (constants.PionMass + leptonMass) / (1. - 2.*constants.ASmallNum)
}

// rows evaluates the integrand on an xs by ys lattice, one task per x row,
// and returns the weighted row sums in x order so that the total does not
// depend on the number of workers.
func rows(alg Differential, interaction kinematics.Context, xs, ys, xWeights, yWeights []float64, threads int) ([]float64, error) {
	rowSums := make([]float64, len(xs))
	var g errgroup.Group
	g.SetLimit(max(threads, 1))
	for ix := range xs {
		g.Go(func() error {
			row := make([]float64, len(ys))
			for iy := range ys {
				xsec, err := alg.XSec(interaction.WithXY(xs[ix], ys[iy]), kinematics.XYfE)
				if err != nil {
					return err
				}
				row[iy] = xsec * yWeights[iy]
			}
			rowSums[ix] = utils.SumSlice(row) * xWeights[ix]
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rowSums, nil
}

func report(logger *log.Logger, E, xsec float64) {
	if logger != nil {
		logger.Printf("xsec (E = %g GeV) = %g 1E-38 * cm2", E, xsec/config.XSecUnit)
	}
}
