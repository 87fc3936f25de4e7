// Package blackkarasinski prices American/Bermudan bond options and
// callable or puttable bonds on a one-factor Black-Karasinski short-rate
// lattice, calibrated to an input discount curve. It is a thin façade over
// internal/lattice and internal/pricer: build the tree once, then price any
// number of contracts against it.
package blackkarasinski

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"benritz/blackkarasinski/internal/curve"
	"benritz/blackkarasinski/internal/lattice"
	"benritz/blackkarasinski/internal/pricer"
)

// ErrInvalidParameter is returned when a, sigma, or n fail the façade's own
// validation, before the request ever reaches internal/lattice.
var ErrInvalidParameter = errors.New("blackkarasinski: invalid parameter")

// ErrDegenerateInput is returned by BuildTree when the discount curve is
// empty, its times and values differ in length, its times are not strictly
// increasing, or it does not start at DF(0)=1. An empty coupon schedule
// passed to a pricing method is reported with internal/pricer's own error,
// not this one.
var ErrDegenerateInput = errors.New("blackkarasinski: degenerate input")

// ErrNoTree is returned when a pricing call is made before BuildTree.
var ErrNoTree = errors.New("blackkarasinski: tree not built")

const minSteps = 30

// Model holds the mean-reversion speed a, volatility sigma, and step count
// N of a Black-Karasinski lattice, plus the tree once BuildTree has run.
type Model struct {
	a     float64
	sigma float64
	n     int

	tree    *lattice.Tree
	dfCurve *curve.Curve
}

// NewModel validates a, sigma, and n and returns an unbuilt Model. Call
// BuildTree before any pricing method.
func NewModel(a, sigma float64, n int) (*Model, error) {
	if a < 0 || sigma < 0 || n < minSteps {
		return nil, ErrInvalidParameter
	}

	return &Model{a: a, sigma: sigma, n: n}, nil
}

// BuildTree constructs the trinomial lattice out to tmat, calibrated to the
// discount factors at dfTimes/dfValues (dfValues[0] must be 1 at
// dfTimes[0]=0). It replaces any tree built by a previous call.
func (m *Model) BuildTree(tmat float64, dfTimes, dfValues []float64) error {
	dfCurve, err := curve.New(dfTimes, dfValues)
	if err != nil {
		return ErrDegenerateInput
	}

	treeMaturity := tmat * float64(m.n+1) / float64(m.n)
	treeTimes := make([]float64, m.n+2)
	dfTree := make([]float64, m.n+2)
	step := treeMaturity / float64(m.n+1)
	for i := range treeTimes {
		treeTimes[i] = float64(i) * step
		dfTree[i] = dfCurve.DF(treeTimes[i])
	}

	tree, err := lattice.Build(m.a, m.sigma, m.n, treeTimes, dfTree)
	if err != nil {
		return err
	}

	m.tree = tree
	m.dfCurve = dfCurve

	return nil
}

// BondOptionResult holds the fair value of a call and a put on a coupon
// bond.
type BondOptionResult = pricer.BondOptionResult

// CallablePuttableResult holds the value of a bond with and without its
// embedded call/put options.
type CallablePuttableResult = pricer.CallablePuttableResult

// BondOption values an American or European call/put on a coupon bond
// against the built tree.
func (m *Model) BondOption(
	texp, strike, face float64,
	couponTimes, couponFlows []float64,
	american bool,
) (BondOptionResult, error) {
	if m.tree == nil {
		return BondOptionResult{}, ErrNoTree
	}

	return pricer.BondOption(m.tree, m.dfCurve, texp, strike, face, couponTimes, couponFlows, american)
}

// CallablePuttableBond values a bond with call and/or put schedules
// against the built tree.
func (m *Model) CallablePuttableBond(
	couponTimes, couponFlows []float64,
	callTimes, callPrices []float64,
	putTimes, putPrices []float64,
	face float64,
) (CallablePuttableResult, error) {
	if m.tree == nil {
		return CallablePuttableResult{}, ErrNoTree
	}

	return pricer.CallablePuttableBond(
		m.tree, m.dfCurve, couponTimes, couponFlows, callTimes, callPrices, putTimes, putPrices, face,
	)
}

// RequestKind selects which pricer a PriceRequest targets within
// BatchPrice.
type RequestKind int

const (
	// KindBondOption prices an American/European call and put.
	KindBondOption RequestKind = iota
	// KindCallablePuttable prices a bond with call/put schedules.
	KindCallablePuttable
)

// PriceRequest describes one pricing call to fan out via BatchPrice. Only
// the fields relevant to Kind need to be populated.
type PriceRequest struct {
	Kind RequestKind

	CouponTimes []float64
	CouponFlows []float64
	Face        float64

	// KindBondOption fields.
	Texp     float64
	Strike   float64
	American bool

	// KindCallablePuttable fields.
	CallTimes  []float64
	CallPrices []float64
	PutTimes   []float64
	PutPrices  []float64
}

// PriceResult is the outcome of one PriceRequest: at most one of
// BondOption or CallablePuttable is populated, matching the request's Kind.
// Err is set if that request failed; the rest of the batch is unaffected.
type PriceResult struct {
	BondOption       BondOptionResult
	CallablePuttable CallablePuttableResult
	Err              error
}

// BatchPrice fans reqs out concurrently against the already-built tree via
// golang.org/x/sync/errgroup, each request allocating its own value grids.
// A per-request pricing error is recorded on that PriceResult and does not
// cancel the rest of the batch; ctx cancellation does.
func (m *Model) BatchPrice(ctx context.Context, reqs []PriceRequest) ([]PriceResult, error) {
	if m.tree == nil {
		return nil, ErrNoTree
	}

	results := make([]PriceResult, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	for i := range reqs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			req := reqs[i]
			switch req.Kind {
			case KindBondOption:
				res, err := m.BondOption(req.Texp, req.Strike, req.Face, req.CouponTimes, req.CouponFlows, req.American)
				results[i] = PriceResult{BondOption: res, Err: err}
			case KindCallablePuttable:
				res, err := m.CallablePuttableBond(
					req.CouponTimes, req.CouponFlows, req.CallTimes, req.CallPrices, req.PutTimes, req.PutPrices, req.Face,
				)
				results[i] = PriceResult{CallablePuttable: res, Err: err}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
