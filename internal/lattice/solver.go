package lattice

import (
	"math"

	"benritz/blackkarasinski/internal/telemetry"
)

const (
	newtonMaxIter = 50
	newtonTol     = 1e-7
	secantMaxIter = 50
	secantTol     = 1e-8
)

// driftObjective evaluates f(alpha) = sum_j Q[j]*exp(-exp(alpha+j*dX)*dt) - target,
// the Arrow-Debreu-weighted one-step discount reprice error at drift alpha.
func driftObjective(alpha float64, nm, jmax int, q []float64, target, dX, dt float64) float64 {
	sum := 0.0
	for j := -nm; j <= nm; j++ {
		x := alpha + float64(j)*dX
		sum += q[j+jmax] * math.Exp(-math.Exp(x)*dt)
	}
	return sum - target
}

// driftObjectiveDeriv is the analytic derivative of driftObjective w.r.t. alpha.
func driftObjectiveDeriv(alpha float64, nm, jmax int, q []float64, dX, dt float64) float64 {
	sum := 0.0
	for j := -nm; j <= nm; j++ {
		x := alpha + float64(j)*dX
		sum += q[j+jmax] * math.Exp(-math.Exp(x)*dt) * math.Exp(x)
	}
	return -sum * dt
}

// solveDrift finds the per-step drift alpha that reprices the market
// discount factor target, via Newton iteration seeded from the previous
// step's alpha. Falls back to a secant search if the analytic derivative
// ever vanishes before convergence.
func solveDrift(seed float64, nm, jmax int, q []float64, target, dX, dt float64) (float64, error) {
	alpha := seed

	for i := 0; i < newtonMaxIter; i++ {
		f := driftObjective(alpha, nm, jmax, q, target, dX, dt)
		if math.Abs(f) <= newtonTol {
			telemetry.NewtonIterations.Observe(float64(i + 1))
			return alpha, nil
		}

		fp := driftObjectiveDeriv(alpha, nm, jmax, q, dX, dt)
		if fp == 0 {
			if a, err := solveDriftSecant(seed, nm, jmax, q, target, dX, dt); err == nil {
				return a, nil
			}
			telemetry.IncCalibrationFailure("zero_derivative")
			return 0, ErrCalibrationFailed
		}

		alpha -= f / fp
	}

	telemetry.IncCalibrationFailure("no_convergence")
	return 0, ErrCalibrationFailed
}

// solveDriftSecant is the documented fallback, exercised only when
// Newton's analytic derivative vanishes before tolerance is met.
func solveDriftSecant(x0 float64, nm, jmax int, q []float64, target, dX, dt float64) (float64, error) {
	x1 := x0 * 1.0001
	f0 := driftObjective(x0, nm, jmax, q, target, dX, dt)
	f1 := driftObjective(x1, nm, jmax, q, target, dX, dt)

	for i := 0; i < secantMaxIter; i++ {
		df := f1 - f0
		if df == 0 {
			telemetry.IncCalibrationFailure("secant_zero_derivative")
			return 0, ErrCalibrationFailed
		}

		x := x1 - f1*(x1-x0)/df
		x0, f0 = x1, f1
		x1 = x
		f1 = driftObjective(x1, nm, jmax, q, target, dX, dt)

		if math.Abs(f1) <= secantTol {
			return x1, nil
		}
	}

	telemetry.IncCalibrationFailure("secant_no_convergence")
	return 0, ErrCalibrationFailed
}
