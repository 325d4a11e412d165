package integration

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/floats"

	"github.com/wildstyl3r/dfrxsec/internal/constants"
	"github.com/wildstyl3r/dfrxsec/internal/kinematics"
)

const DefaultGridPoints = 300

// Grid is the brute force rectangle rule: NX by NY equally spaced samples
// including the range ends, each weighted by the cell area dx*dy.
type Grid struct {
	NX, NY     int
	Threads    int
	LeptonMass float64 // [GeV]
	Logger     *log.Logger
}

func NewGrid() *Grid {
	return &Grid{
		NX:         DefaultGridPoints,
		NY:         DefaultGridPoints,
		Threads:    1,
		LeptonMass: constants.MuonMass,
	}
}

func (g *Grid) Integral(alg Differential, interaction kinematics.Context) (float64, error) {
	if g.NX < 2 || g.NY < 2 {
		return 0, fmt.Errorf("integration: grid needs at least 2x2 points, got %dx%d", g.NX, g.NY)
	}
	E := interaction.Energy
	x, y := Ranges(E, g.LeptonMass)
	if y.Empty() {
		return 0, nil
	}

	dx := (x.Max - x.Min) / float64(g.NX-1)
	dy := (y.Max - y.Min) / float64(g.NY-1)
	xs := floats.Span(make([]float64, g.NX), x.Min, x.Max)
	ys := floats.Span(make([]float64, g.NY), y.Min, y.Max)
	xWeights := make([]float64, g.NX)
	floats.AddConst(dx, xWeights)
	yWeights := make([]float64, g.NY)
	floats.AddConst(dy, yWeights)

	rowSums, err := rows(alg, interaction, xs, ys, xWeights, yWeights, g.Threads)
	if err != nil {
		return 0, err
	}
	xsec := floats.Sum(rowSums)
	report(g.Logger, E, xsec)
	return xsec, nil
}
