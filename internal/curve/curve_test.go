package curve_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"benritz/blackkarasinski/internal/curve"
)

func TestNewRejectsDegenerateInput(t *testing.T) {
	_, err := curve.New(nil, nil)
	require.ErrorIs(t, err, curve.ErrDegenerateInput)

	_, err = curve.New([]float64{0, 1}, []float64{1})
	require.ErrorIs(t, err, curve.ErrDegenerateInput)

	_, err = curve.New([]float64{0, 1, 1}, []float64{1, 0.9, 0.8})
	require.ErrorIs(t, err, curve.ErrDegenerateInput)

	_, err = curve.New([]float64{1, 2}, []float64{1, 0.9})
	require.ErrorIs(t, err, curve.ErrDegenerateInput)
}

func TestInterpolateFlatForward(t *testing.T) {
	times := []float64{0, 1, 2}
	values := []float64{1, math.Exp(-0.05), math.Exp(-0.11)}

	c, err := curve.New(times, values)
	require.NoError(t, err)

	// at t=0.5, forward rate over [0,1] is 5%, so DF should be exp(-0.025)
	require.InDelta(t, math.Exp(-0.025), c.DF(0.5), 1e-12)

	// forward over [1,2] implies ln(DF(2))-ln(DF(1)) = -0.06
	require.InDelta(t, values[1]*math.Exp(-0.03), c.DF(1.5), 1e-12)
}

func TestInterpolateClampsOutsideDomain(t *testing.T) {
	times := []float64{0, 1, 2}
	values := []float64{1, 0.95, 0.90}

	c, err := curve.New(times, values)
	require.NoError(t, err)

	require.Equal(t, values[0], c.DF(-1))
	require.Equal(t, values[len(values)-1], c.DF(5))
}

func TestAccruedRampsBetweenKnots(t *testing.T) {
	knotTimes := []float64{0, 0.5, 1.0}
	knotAmounts := []float64{0, 0.025, 0.025}

	require.Equal(t, 0.0, curve.Accrued(0, knotTimes, knotAmounts))
	require.InDelta(t, 0.0125, curve.Accrued(0.25, knotTimes, knotAmounts), 1e-12)
	require.InDelta(t, 0.025, curve.Accrued(0.5, knotTimes, knotAmounts), 1e-12)
	require.InDelta(t, 0.0125, curve.Accrued(0.75, knotTimes, knotAmounts), 1e-12)
	require.Equal(t, 0.025, curve.Accrued(1.0, knotTimes, knotAmounts))
}

func TestAccruedOutsideRangeIsZero(t *testing.T) {
	knotTimes := []float64{0, 1}
	knotAmounts := []float64{0, 0.025}

	require.Equal(t, 0.0, curve.Accrued(-0.1, knotTimes, knotAmounts))
	require.Equal(t, 0.0, curve.Accrued(1.1, knotTimes, knotAmounts))
}
