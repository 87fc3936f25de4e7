// Package lattice builds and holds the Black-Karasinski trinomial lattice:
// log-rate spacing, branch probabilities, Arrow-Debreu prices and the
// per-step drift calibrated against an input discount curve. Pricers read
// a built Tree but never mutate it.
package lattice

import (
	"math"

	"benritz/blackkarasinski/internal/telemetry"
)

// maxJMax is the hard ceiling on vertical lattice width; beyond this the
// lattice is considered over-refined for the given a and dt.
const maxJMax = 1000

// Tree holds a built lattice. Once returned from Build it is read-only;
// concurrent pricing calls against the same Tree are safe provided each
// allocates its own value grids.
type Tree struct {
	A, Sigma float64
	N        int
	JMax     int
	Dt       float64
	DX       float64

	// Times holds the N+2 tree node times, t_0=0 .. t_{N+1}.
	Times []float64

	// Pu, Pm, Pd are branch probabilities indexed by physical column
	// k = j+JMax, depending only on j, not on the time step.
	Pu, Pm, Pd []float64

	// Q holds Arrow-Debreu prices, Rt holds short rates, both sized
	// (N+2) x (2*JMax+1) and indexed [step][k].
	Q  [][]float64
	Rt [][]float64

	// Alpha holds the calibrated drift per step, length N+1.
	Alpha []float64
}

// LiveRange returns nm = min(m, JMax), the live vertical index bound
// [-nm, nm] at step m.
func (t *Tree) LiveRange(m int) int {
	if m < t.JMax {
		return m
	}
	return t.JMax
}

// Col returns the physical column index for vertical index j.
func (t *Tree) Col(j int) int { return j + t.JMax }

// Build constructs a trinomial lattice over the given node times, with
// per-step drift calibrated so the Arrow-Debreu-weighted discount at each
// step reprices dfTree[m+1]. treeTimes and dfTree must both have length
// n+2, with dfTree[0] == 1.
func Build(a, sigma float64, n int, treeTimes, dfTree []float64) (*Tree, error) {
	if a < 0 || sigma < 0 || n < 30 {
		return nil, ErrInvalidParameter
	}
	if len(treeTimes) != n+2 || len(dfTree) != n+2 {
		return nil, ErrInvalidParameter
	}

	treeMaturity := treeTimes[len(treeTimes)-1]
	dt := treeMaturity / float64(n+1)
	dX := sigma * math.Sqrt(3*dt)
	jmax := int(math.Ceil(0.1835 / (a * dt)))
	if jmax > maxJMax {
		return nil, ErrLatticeOverrefined
	}

	width := 2*jmax + 1
	pu := make([]float64, width)
	pm := make([]float64, width)
	pd := make([]float64, width)

	for j := -jmax; j <= jmax; j++ {
		k := j + jmax
		adt := a * float64(j) * dt

		switch j {
		case jmax:
			pu[k] = 7.0/6.0 + 0.5*(adt*adt-3*adt)
			pm[k] = -1.0/3.0 - adt*adt + 2*adt
			pd[k] = 1.0/6.0 + 0.5*(adt*adt-adt)
		case -jmax:
			pu[k] = 1.0/6.0 + 0.5*(adt*adt+adt)
			pm[k] = -1.0/3.0 - adt*adt - 2*adt
			pd[k] = 7.0/6.0 + 0.5*(adt*adt+3*adt)
		default:
			pu[k] = 1.0/6.0 + 0.5*(adt*adt-adt)
			pm[k] = 2.0/3.0 - adt*adt
			pd[k] = 1.0/6.0 + 0.5*(adt*adt+adt)
		}

		if j == jmax || j == -jmax {
			if outOfSafeRange(pu[k]) || outOfSafeRange(pm[k]) || outOfSafeRange(pd[k]) {
				return nil, ErrProbabilityOutOfRange
			}
		}
	}

	numSteps := n + 2
	q := make([][]float64, numSteps)
	rt := make([][]float64, numSteps)
	for i := range q {
		q[i] = make([]float64, width)
		rt[i] = make([]float64, width)
	}
	q[0][jmax] = 1.0

	alpha := make([]float64, n+1)
	seed := 3.0

	for m := 0; m <= n; m++ {
		nm := m
		if nm > jmax {
			nm = jmax
		}

		a0, err := solveDrift(seed, nm, jmax, q[m], dfTree[m+1], dX, dt)
		if err != nil {
			return nil, err
		}
		alpha[m] = a0
		seed = a0

		for j := -nm; j <= nm; j++ {
			k := j + jmax
			x := alpha[m] + float64(j)*dX
			rt[m][k] = math.Exp(x)
		}

		for j := -nm; j <= nm; j++ {
			k := j + jmax
			z := math.Exp(-rt[m][k] * dt)
			qz := q[m][k] * z

			switch {
			case j == jmax:
				q[m+1][k] += qz * pu[k]
				q[m+1][k-1] += qz * pm[k]
				q[m+1][k-2] += qz * pd[k]
			case j == -jmax:
				q[m+1][k+2] += qz * pu[k]
				q[m+1][k+1] += qz * pm[k]
				q[m+1][k] += qz * pd[k]
			default:
				q[m+1][k+1] += qz * pu[k]
				q[m+1][k] += qz * pm[k]
				q[m+1][k-1] += qz * pd[k]
			}
		}
	}

	telemetry.TreesBuilt.Inc()

	return &Tree{
		A: a, Sigma: sigma, N: n, JMax: jmax, Dt: dt, DX: dX,
		Times: treeTimes,
		Pu:    pu, Pm: pm, Pd: pd,
		Q: q, Rt: rt, Alpha: alpha,
	}, nil
}

func outOfSafeRange(p float64) bool { return p < -0.1 || p > 1.1 }
