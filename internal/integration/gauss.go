package integration

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/wildstyl3r/dfrxsec/internal/constants"
	"github.com/wildstyl3r/dfrxsec/internal/kinematics"
)

// GaussLegendre is a product Gauss-Legendre rule with Nodes points per
// dimension.
type GaussLegendre struct {
	Nodes      int
	Threads    int
	LeptonMass float64 // [GeV]
	Logger     *log.Logger
}

func NewGaussLegendre(nodes int) *GaussLegendre {
	return &GaussLegendre{
		Nodes:      nodes,
		Threads:    1,
		LeptonMass: constants.MuonMass,
	}
}

func legendre(n int, r Range1D) (nodes, weights []float64) {
	nodes = make([]float64, n)
	weights = make([]float64, n)
	quad.Legendre{}.FixedLocations(nodes, weights, r.Min, r.Max)
	return
}

func (g *GaussLegendre) Integral(alg Differential, interaction kinematics.Context) (float64, error) {
	if g.Nodes < 1 {
		return 0, fmt.Errorf("integration: Gauss-Legendre rule needs at least 1 node, got %d", g.Nodes)
	}
	E := interaction.Energy
	x, y := Ranges(E, g.LeptonMass)
	if y.Empty() {
		return 0, nil
	}

	xs, xWeights := legendre(g.Nodes, x)
	ys, yWeights := legendre(g.Nodes, y)
	rowSums, err := rows(alg, interaction, xs, ys, xWeights, yWeights, g.Threads)
	if err != nil {
		return 0, err
	}
	xsec := floats.Sum(rowSums)
	report(g.Logger, E, xsec)
	return xsec, nil
}
