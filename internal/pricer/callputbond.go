package pricer

import (
	"math"

	"benritz/blackkarasinski/internal/curve"
	"benritz/blackkarasinski/internal/lattice"
	"benritz/blackkarasinski/internal/telemetry"
)

// CallablePuttableResult holds the value of a bond with embedded call/put
// options (BondWithOption) alongside the value of the same cash flows
// without any embedded option (BondPure).
type CallablePuttableResult struct {
	BondWithOption float64
	BondPure       float64
}

// noCallSentinelMultiple times face stands in for "no call scheduled at
// this step": a price so far above face that the min/max clamp never binds
// there.
const noCallSentinelMultiple = 1000.0

// CallablePuttableBond values a bond embedding call and put schedules by
// backward induction over tree. Call and put schedules may be empty; put
// floors the value before call caps it.
func CallablePuttableBond(
	tree *lattice.Tree,
	dfCurve *curve.Curve,
	couponTimes, couponFlows []float64,
	callTimes, callPrices []float64,
	putTimes, putPrices []float64,
	face float64,
) (CallablePuttableResult, error) {
	defer telemetry.Timer("callable_puttable_bond")()

	if len(couponTimes) == 0 {
		return CallablePuttableResult{}, ErrDegenerateInput
	}

	tmat := couponTimes[len(couponTimes)-1]
	maturityStep := int(math.Round(tmat / tree.Dt))

	flows := mapFlows(tree, dfCurve, couponTimes, couponFlows)
	knotTimes, knotAmounts := accrualKnots(tree, flows, 0, false)
	accrued := accruedSeries(tree, flows, knotTimes, knotAmounts, face, maturityStep)

	treeCall := make([]float64, len(tree.Times))
	for i := range treeCall {
		treeCall[i] = face * noCallSentinelMultiple
	}
	for i, ct := range callTimes {
		n := int(math.Round(ct / tree.Dt))
		treeCall[n] = callPrices[i]
	}

	treePut := make([]float64, len(tree.Times))
	for i, pt := range putTimes {
		n := int(math.Round(pt / tree.Dt))
		treePut[n] = putPrices[i]
	}

	width := len(tree.Pu)
	bondValues := make([][]float64, len(tree.Times))
	callPutValues := make([][]float64, len(tree.Times))
	for i := range bondValues {
		bondValues[i] = make([]float64, width)
		callPutValues[i] = make([]float64, width)
	}

	jmax := tree.JMax

	nm := tree.LiveRange(maturityStep)
	for j := -nm; j <= nm; j++ {
		k := j + jmax
		bondValues[maturityStep][k] = (1 + flows[maturityStep]) * face
		clean := bondValues[maturityStep][k] - accrued[maturityStep]
		callPutValues[maturityStep][k] = clamp(clean, treePut[maturityStep], treeCall[maturityStep]) + accrued[maturityStep]
	}

	for m := maturityStep - 1; m >= 0; m-- {
		nm := tree.LiveRange(m)
		flow := flows[m] * face

		for j := -nm; j <= nm; j++ {
			k := j + jmax
			df := math.Exp(-tree.Rt[m][k] * tree.Dt)
			pu, pm, pd := tree.Pu[k], tree.Pm[k], tree.Pd[k]

			bv := rollValue(bondValues[m+1], j, k, jmax, pu, pm, pd)
			bondValues[m][k] = bv*df + flow

			hold := rollValue(callPutValues[m+1], j, k, jmax, pu, pm, pd)*df + flow
			clean := hold - accrued[m]
			callPutValues[m][k] = clamp(clean, treePut[m], treeCall[m]) + accrued[m]
		}
	}

	return CallablePuttableResult{
		BondWithOption: callPutValues[0][jmax],
		BondPure:       bondValues[0][jmax],
	}, nil
}

// clamp floors v at floor then caps it at ceiling: the put floors the
// holder's value, the call then caps the issuer's liability. Idempotent
// when floor=0 and ceiling is the no-call sentinel.
func clamp(v, floor, ceiling float64) float64 {
	return math.Min(math.Max(v, floor), ceiling)
}
