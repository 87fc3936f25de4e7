// Package pricer values American/European bond options and callable or
// puttable bonds by backward induction over a lattice.Tree built by
// internal/lattice.
package pricer

// rollValue returns the trinomial-averaged successor value at vertical
// index j (physical column k) from the next step's value row. The top
// boundary layer (j = jmax) branches to j, j-1, j-2 and the bottom layer
// (j = -jmax) to j+2, j+1, j; everything else uses the ordinary
// up/mid/down triple.
func rollValue(next []float64, j, k, jmax int, pu, pm, pd float64) float64 {
	switch {
	case j == jmax:
		return pu*next[k] + pm*next[k-1] + pd*next[k-2]
	case j == -jmax:
		return pu*next[k+2] + pm*next[k+1] + pd*next[k]
	default:
		return pu*next[k+1] + pm*next[k] + pd*next[k-1]
	}
}
