package pricer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"benritz/blackkarasinski/internal/pricer"
)

// TestCallablePuttableOrdering is invariant 6: callable <= straight <=
// puttable, since the call caps the holder's upside and the put floors it.
func TestCallablePuttableOrdering(t *testing.T) {
	n := 60
	tmat := 5.0
	treeMaturity := tmat * float64(n+1) / float64(n)
	tree, dfCurve := buildFlatTree(t, 0.1, 0.15, 0.05, treeMaturity, n)

	couponTimes, couponFlows := couponSchedule(tmat, 0.06, 2)

	callTimes := []float64{2.0, 3.0, 4.0}
	callPrices := []float64{101, 100.5, 100}

	callable, err := pricer.CallablePuttableBond(
		tree, dfCurve, couponTimes, couponFlows,
		callTimes, callPrices, nil, nil, 100,
	)
	require.NoError(t, err)

	putTimes := []float64{2.0, 3.0, 4.0}
	putPrices := []float64{99, 99.5, 99.75}

	puttable, err := pricer.CallablePuttableBond(
		tree, dfCurve, couponTimes, couponFlows,
		nil, nil, putTimes, putPrices, 100,
	)
	require.NoError(t, err)

	require.LessOrEqual(t, callable.BondWithOption, callable.BondPure+1e-9)
	require.GreaterOrEqual(t, puttable.BondWithOption, puttable.BondPure-1e-9)
}

// TestCallablePuttableZeroCouponParity is invariant 3: with a zero coupon
// and face=1, the callable/puttable pricer with empty call/put schedules
// returns bondpure ≈ DF(tmat), since rolling a pure face-value payoff
// through the same Arrow-Debreu-calibrated lattice is just another way of
// repricing the discount curve.
func TestCallablePuttableZeroCouponParity(t *testing.T) {
	n := 200
	tmat := 5.0
	treeMaturity := tmat * float64(n+1) / float64(n)
	tree, dfCurve := buildFlatTree(t, 0.1, 0.15, 0.05, treeMaturity, n)

	res, err := pricer.CallablePuttableBond(
		tree, dfCurve, []float64{tmat}, []float64{0},
		nil, nil, nil, nil, 1,
	)
	require.NoError(t, err)

	require.InDelta(t, dfCurve.DF(tmat), res.BondPure, 1e-4)
}

// TestCallablePuttableNoSchedulesEqualsPure confirms that an empty call
// and put schedule reduces exactly to the straight bond value.
func TestCallablePuttableNoSchedulesEqualsPure(t *testing.T) {
	n := 60
	tmat := 5.0
	treeMaturity := tmat * float64(n+1) / float64(n)
	tree, dfCurve := buildFlatTree(t, 0.1, 0.15, 0.05, treeMaturity, n)

	couponTimes, couponFlows := couponSchedule(tmat, 0.06, 2)

	res, err := pricer.CallablePuttableBond(
		tree, dfCurve, couponTimes, couponFlows,
		nil, nil, nil, nil, 100,
	)
	require.NoError(t, err)

	require.InDelta(t, res.BondPure, res.BondWithOption, 1e-8)
}

// TestCallablePuttableBothSchedulesStaysBetween is scenario S4: with both
// a call cap (102 at year 3) and a put floor (98 at year 2) in place, the
// embedded-option value stays between zero and the straight bond value.
func TestCallablePuttableBothSchedulesStaysBetween(t *testing.T) {
	n := 60
	tmat := 5.0
	treeMaturity := tmat * float64(n+1) / float64(n)
	tree, dfCurve := buildFlatTree(t, 0.1, 0.15, 0.05, treeMaturity, n)

	couponTimes, couponFlows := couponSchedule(tmat, 0.06, 2)

	callTimes := []float64{3.0}
	callPrices := []float64{102}
	putTimes := []float64{2.0}
	putPrices := []float64{98}

	res, err := pricer.CallablePuttableBond(
		tree, dfCurve, couponTimes, couponFlows,
		callTimes, callPrices, putTimes, putPrices, 100,
	)
	require.NoError(t, err)

	require.Greater(t, res.BondWithOption, 0.0)
	require.LessOrEqual(t, res.BondWithOption, res.BondPure+1e-9)
}

func TestCallablePuttableRejectsEmptySchedule(t *testing.T) {
	n := 40
	treeMaturity := 5.125
	tree, dfCurve := buildFlatTree(t, 0.1, 0.15, 0.05, treeMaturity, n)

	_, err := pricer.CallablePuttableBond(tree, dfCurve, nil, nil, nil, nil, nil, nil, 100)
	require.ErrorIs(t, err, pricer.ErrDegenerateInput)
}
