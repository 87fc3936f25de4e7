package pricer

import (
	"math"

	"benritz/blackkarasinski/internal/curve"
	"benritz/blackkarasinski/internal/lattice"
)

// mapFlows maps each coupon cash flow onto its nearest tree node, scaling
// it by DF(tcpn)/DF(t_n) so that dt rarely aligning with the actual coupon
// date never changes the flow's present value.
func mapFlows(tree *lattice.Tree, dfCurve *curve.Curve, couponTimes, couponFlows []float64) []float64 {
	flows := make([]float64, len(tree.Times))

	for i, tcpn := range couponTimes {
		n := int(math.Round(tcpn / tree.Dt))
		ttree := tree.Times[n]
		dfFlow := dfCurve.DF(tcpn)
		dfTree := dfCurve.DF(ttree)
		flows[n] += couponFlows[i] * dfFlow / dfTree
	}

	return flows
}

// accrualKnots builds the (time, amount) knots the accrued-interest
// interpolator ramps between, optionally inserting a zero-amount knot at
// an option's expiry time.
func accrualKnots(tree *lattice.Tree, flows []float64, expiry float64, hasExpiry bool) ([]float64, []float64) {
	times := []float64{0}
	amounts := []float64{0}

	insertedExpiry := false
	for n := 1; n < len(tree.Times); n++ {
		if hasExpiry && !insertedExpiry && tree.Times[n-1] < expiry && expiry <= tree.Times[n] {
			times = append(times, expiry)
			amounts = append(amounts, 0)
			insertedExpiry = true
		}
		if flows[n] > 0 {
			times = append(times, tree.Times[n])
			amounts = append(amounts, flows[n])
		}
	}

	return times, amounts
}

// accruedSeries computes accrued[m]*face for m in [0, upTo] from the
// mapped knots, overriding with the full flow exactly on a coupon node (a
// hack for when the ramp interpolation doesn't put the full accrual on
// the flow date itself).
func accruedSeries(tree *lattice.Tree, flows []float64, knotTimes, knotAmounts []float64, face float64, upTo int) []float64 {
	accrued := make([]float64, len(tree.Times))

	for m := 0; m <= upTo; m++ {
		accrued[m] = curve.Accrued(tree.Times[m], knotTimes, knotAmounts) * face
		if flows[m] > 0 {
			accrued[m] = flows[m] * face
		}
	}

	return accrued
}
