// Package xsec implements differential cross-section algorithms.
package xsec

import (
	"errors"

	"github.com/wildstyl3r/dfrxsec/internal/kinematics"
)

var (
	ErrNegativeXSec     = errors.New("xsec: negative or infinite differential cross section")
	ErrSecondaryTable   = errors.New("xsec: secondary cross-section table failed")
	ErrUnknownAlgorithm = errors.New("xsec: unknown algorithm")
)

// Algorithm is a differential cross section in any supported phase space.
// XSec must be free of side effects so it may be called concurrently.
type Algorithm interface {
	XSec(c kinematics.Context, ps kinematics.PhaseSpace) (float64, error)
	ValidProcess(c kinematics.Context) bool
	ValidKinematics(c kinematics.Context) bool
}
