package curve

import "sort"

// Accrued returns the accrued fraction at t given a strictly increasing
// list of knot times and the coupon amount due at each knot. Between two
// consecutive knots (t_k, t_{k+1}) with amount a_{k+1} due at t_{k+1}, the
// accrued value ramps linearly from zero to a_{k+1}. Outside the knot
// range it is zero.
func Accrued(t float64, knotTimes, knotAmounts []float64) float64 {
	n := len(knotTimes)
	if n == 0 || t < knotTimes[0] || t > knotTimes[n-1] {
		return 0
	}
	if t == knotTimes[0] {
		return knotAmounts[0]
	}

	i := sort.Search(n, func(i int) bool { return knotTimes[i] >= t })
	tk, tk1 := knotTimes[i-1], knotTimes[i]
	ak1 := knotAmounts[i]
	if tk1 == tk {
		return ak1
	}

	return ak1 * (t - tk) / (tk1 - tk)
}
