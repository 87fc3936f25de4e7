package bondmath

import "errors"

var (
	// ErrNoConvergence is returned when a Newton-Raphson yield solve
	// exhausts its iteration budget without meeting tolerance.
	ErrNoConvergence = errors.New("bondmath: yield to maturity solve did not converge")

	// ErrDerivativeTooSmall is returned when the price/yield derivative
	// underflows, making a further Newton-Raphson step unreliable.
	ErrDerivativeTooSmall = errors.New("bondmath: price derivative too small for Newton-Raphson step")
)
