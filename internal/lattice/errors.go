package lattice

import "errors"

var (
	// ErrInvalidParameter covers sigma<0, a<0, N<30, or tree-time and
	// discount-factor slices whose length is not N+2, detected by Build;
	// the bond-option pricer also returns it for an expiry outside
	// [0, maturity].
	ErrInvalidParameter = errors.New("lattice: invalid parameter")

	// ErrLatticeOverrefined is returned when jmax exceeds the 1000-node
	// ceiling, signalling a or dt is too small for the requested step count.
	ErrLatticeOverrefined = errors.New("lattice: jmax exceeds maximum refinement")

	// ErrCalibrationFailed is returned when Newton does not reach tolerance
	// for the per-step drift within its iteration cap, or when its
	// derivative vanishes and the secant fallback also fails.
	ErrCalibrationFailed = errors.New("lattice: drift calibration failed to converge")

	// ErrProbabilityOutOfRange is returned when a boundary branch
	// probability falls outside [-0.1, 1.1], indicating dt is too small
	// relative to the mean-reversion speed.
	ErrProbabilityOutOfRange = errors.New("lattice: branch probabilities outside safe range")
)
