package constants

import "math"

// Natural units: energies and masses in GeV, cross sections in GeV^-2.

const PionMass float64 = 0.13957018  // charged pion [GeV]
const MuonMass float64 = 0.105658357 // [GeV]
const ProtonMass float64 = 0.9382720
const NeutronMass float64 = 0.9395654
const NucleonMass = 0.5 * (ProtonMass + NeutronMass)

const PionMass2 = PionMass * PionMass

const FermiConstant float64 = 1.16639e-5 // [GeV^-2]
const FermiConstant2 = FermiConstant * FermiConstant

const Pi3 = math.Pi * math.Pi * math.Pi

// fpi = 0.93 mpi
const PionDecayConstantRatio = 0.93

const ASmallNum = 1e-6
