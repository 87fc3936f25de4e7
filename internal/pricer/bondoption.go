package pricer

import (
	"math"

	"benritz/blackkarasinski/internal/curve"
	"benritz/blackkarasinski/internal/lattice"
	"benritz/blackkarasinski/internal/telemetry"
)

// BondOptionResult holds the fair value of a call and a put on a coupon
// bond, in the same units as face.
type BondOptionResult struct {
	Call float64
	Put  float64
}

// BondOption values an American or European call/put on a coupon bond by
// backward induction over tree, which must already extend out to the
// bond's maturity (couponTimes[len-1]).
func BondOption(
	tree *lattice.Tree,
	dfCurve *curve.Curve,
	texp, strike, face float64,
	couponTimes, couponFlows []float64,
	american bool,
) (BondOptionResult, error) {
	defer telemetry.Timer("bond_option")()

	if len(couponTimes) == 0 {
		return BondOptionResult{}, ErrDegenerateInput
	}

	tmat := couponTimes[len(couponTimes)-1]
	if texp < 0 || texp > tmat {
		return BondOptionResult{}, lattice.ErrInvalidParameter
	}

	expiryStep := int(math.Round(texp / tree.Dt))
	maturityStep := int(math.Round(tmat / tree.Dt))

	flows := mapFlows(tree, dfCurve, couponTimes, couponFlows)
	knotTimes, knotAmounts := accrualKnots(tree, flows, texp, true)
	accrued := accruedSeries(tree, flows, knotTimes, knotAmounts, face, maturityStep)

	width := len(tree.Pu)
	bondValues := make([][]float64, len(tree.Times))
	callValues := make([][]float64, len(tree.Times))
	putValues := make([][]float64, len(tree.Times))
	for i := range bondValues {
		bondValues[i] = make([]float64, width)
		callValues[i] = make([]float64, width)
		putValues[i] = make([]float64, width)
	}

	jmax := tree.JMax

	nm := tree.LiveRange(maturityStep)
	for j := -nm; j <= nm; j++ {
		k := j + jmax
		bondValues[maturityStep][k] = (1 + flows[maturityStep]) * face
	}

	for m := maturityStep - 1; m >= expiryStep; m-- {
		nm := tree.LiveRange(m)
		flow := flows[m] * face

		for j := -nm; j <= nm; j++ {
			k := j + jmax
			df := math.Exp(-tree.Rt[m][k] * tree.Dt)
			v := rollValue(bondValues[m+1], j, k, jmax, tree.Pu[k], tree.Pm[k], tree.Pd[k])
			bondValues[m][k] = v*df + flow
		}
	}

	nmExp := tree.LiveRange(expiryStep)
	for j := -nmExp; j <= nmExp; j++ {
		k := j + jmax
		clean := bondValues[expiryStep][k] - accrued[expiryStep]
		callValues[expiryStep][k] = math.Max(clean-strike, 0)
		putValues[expiryStep][k] = math.Max(strike-clean, 0)
	}

	for m := expiryStep - 1; m >= 0; m-- {
		nm := tree.LiveRange(m)
		flow := flows[m] * face

		for j := -nm; j <= nm; j++ {
			k := j + jmax
			df := math.Exp(-tree.Rt[m][k] * tree.Dt)
			pu, pm, pd := tree.Pu[k], tree.Pm[k], tree.Pd[k]

			bv := rollValue(bondValues[m+1], j, k, jmax, pu, pm, pd)
			bondValues[m][k] = bv*df + flow

			call := rollValue(callValues[m+1], j, k, jmax, pu, pm, pd) * df
			put := rollValue(putValues[m+1], j, k, jmax, pu, pm, pd) * df

			if american {
				clean := bondValues[m][k] - accrued[m]
				call = math.Max(call, math.Max(clean-strike, 0))
				put = math.Max(put, math.Max(strike-clean, 0))
			}

			callValues[m][k] = call
			putValues[m][k] = put
		}
	}

	return BondOptionResult{Call: callValues[0][jmax], Put: putValues[0][jmax]}, nil
}
