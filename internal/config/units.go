package config

import "github.com/wildstyl3r/dfrxsec/internal/utils"

const GeV2ToMilliBarn = 0.389379
const MilliBarn = 1. / GeV2ToMilliBarn // [GeV^-2]
const Centimeter2 = 1e27 * MilliBarn   // [GeV^-2]

// XSecUnit is the conventional reporting unit, 1e-38 cm^2.
const XSecUnit = 1e-38 * Centimeter2

var unitToNatural = map[string]float64{
	"GeV":      1,    // [GeV]
	"MeV":      1e-3, // [GeV]
	"keV":      1e-6, // [GeV]
	"eV":       1e-9, // [GeV]
	"GeV^-2":   1,    // [GeV^-2]
	"mb":       MilliBarn,
	"cm2":      Centimeter2,
	"m2":       1e4 * Centimeter2,
	"1e-38cm2": XSecUnit,
}

type UnitClass int

const (
	Energy UnitClass = iota
	Area
)

var unitsInClass = map[UnitClass][]string{
	Energy: {"eV", "keV", "MeV", "GeV"},
	Area:   {"1e-38cm2", "cm2", "m2", "mb", "GeV^-2"},
}

var classesOfUnits = map[string]UnitClass{
	"GeV":      Energy,
	"MeV":      Energy,
	"keV":      Energy,
	"eV":       Energy,
	"GeV^-2":   Area,
	"mb":       Area,
	"cm2":      Area,
	"m2":       Area,
	"1e-38cm2": Area,
}

type UnitElement = struct {
	Class UnitClass
	Power int
}

var defaultUnits = []string{"GeV", "1e-38cm2"}

// checkUnits fills the classes missing from units with the defaults and
// reports units that are unknown or share a class with an earlier one.
func checkUnits(units []string) (extended, conflicts []string) {
	classes := map[UnitClass]struct{}{}
	for _, unit := range units {
		class, known := classesOfUnits[unit]
		if _, some := classes[class]; some || !known {
			conflicts = append(conflicts, unit)
		} else {
			classes[class] = struct{}{}
		}
	}
	extended = append([]string(nil), units...)
	for _, unit := range defaultUnits {
		if _, some := classes[classesOfUnits[unit]]; !some {
			extended = append(extended, unit)
		}
	}
	return
}

// Natural converts v expressed in units to natural units when direct is set,
// and from natural units back to units otherwise.
func Natural(v float64, classes []UnitElement, units []string, direct bool) float64 {
	for i := range classes {
		uc := classes[i]
		unit := utils.Intersect(unitsInClass[uc.Class], units)
		if unit == nil {
			continue
		}
		absPower := utils.IntAbs(uc.Power)
		if direct == (uc.Power > 0) {
			for range absPower {
				v *= unitToNatural[*unit]
			}
		} else {
			for range absPower {
				v /= unitToNatural[*unit]
			}
		}
	}
	return v
}
