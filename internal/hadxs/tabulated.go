package hadxs

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/wildstyl3r/lxgata"

	"github.com/wildstyl3r/dfrxsec/internal/config"
	"github.com/wildstyl3r/dfrxsec/internal/utils"
)

var ErrTable = errors.New("hadxs: malformed table")

// Tabulated interpolates linearly between (energy, cross section) points.
// Energies outside the first and last point are out of domain.
type Tabulated struct {
	energies []float64
	xsecs    []float64
}

func NewTabulated(points [][]float64) (*Tabulated, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrTable, len(points))
	}
	t := &Tabulated{
		energies: make([]float64, len(points)),
		xsecs:    make([]float64, len(points)),
	}
	for i, point := range points {
		if len(point) != 2 {
			return nil, fmt.Errorf("%w: point %d has %d columns", ErrTable, i, len(point))
		}
		if i > 0 && !(point[0] > points[i-1][0]) {
			return nil, fmt.Errorf("%w: energies are not increasing at point %d", ErrTable, i)
		}
		if point[1] < 0 {
			return nil, fmt.Errorf("%w: negative cross section at point %d", ErrTable, i)
		}
		t.energies[i], t.xsecs[i] = point[0], point[1]
	}
	return t, nil
}

// LoadTabulated reads a two-column text file, energies in energyUnit and
// cross sections in xsecUnit (e.g. "GeV" and "mb").
func LoadTabulated(path, energyUnit, xsecUnit string) (*Tabulated, error) {
	points, err := utils.ReadFloatPairs(path)
	if err != nil {
		return nil, err
	}
	units := []string{energyUnit, xsecUnit}
	for i := range points {
		points[i][0] = config.Natural(points[i][0], []config.UnitElement{{Class: config.Energy, Power: 1}}, units, true)
		points[i][1] = config.Natural(points[i][1], []config.UnitElement{{Class: config.Area, Power: 1}}, units, true)
	}
	return NewTabulated(points)
}

func (t *Tabulated) Domain() (float64, float64) {
	return t.energies[0], t.energies[len(t.energies)-1]
}

func (t *Tabulated) TotalXSec(e float64) (float64, error) {
	min, max := t.Domain()
	if !(e >= min && e <= max) {
		return 0, fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfDomain, e, min, max)
	}
	i := sort.SearchFloat64s(t.energies, e)
	if t.energies[i] == e {
		return t.xsecs[i], nil
	}
	e0, e1 := t.energies[i-1], t.energies[i]
	w := (e - e0) / (e1 - e0)
	return math.FMA(w, t.xsecs[i]-t.xsecs[i-1], t.xsecs[i-1]), nil
}

// LXCat serves the total cross section of an LXCat collision set. LXCat
// files are in eV and m^2.
type LXCat struct {
	collisions *lxgata.Collisions
	min, max   float64 // [GeV]
}

// LoadLXCat reads an LXCat file; queries outside [min, max] GeV fail.
func LoadLXCat(path string, min, max float64) (*LXCat, error) {
	collisions, err := lxgata.LoadCrossSections(path)
	if err != nil {
		return nil, fmt.Errorf("invalid cross section file: %w", err)
	}
	if !(max > min) {
		return nil, fmt.Errorf("%w: empty energy window [%g, %g]", ErrTable, min, max)
	}
	return &LXCat{collisions: &collisions, min: min, max: max}, nil
}

var lxcatUnits = []string{"eV", "m2"}

func (l *LXCat) TotalXSec(e float64) (float64, error) {
	if !(e >= l.min && e <= l.max) {
		return 0, fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfDomain, e, l.min, l.max)
	}
	eV := config.Natural(e, []config.UnitElement{{Class: config.Energy, Power: 1}}, lxcatUnits, false)
	xsec := l.collisions.TotalCrossSectionAt(eV)
	if !(xsec >= 0) || math.IsInf(xsec, 0) {
		return 0, fmt.Errorf("%w: no cross section at %g eV", ErrOutOfDomain, eV)
	}
	return config.Natural(xsec, []config.UnitElement{{Class: config.Area, Power: 1}}, lxcatUnits, true), nil
}
