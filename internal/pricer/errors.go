package pricer

import "errors"

// ErrDegenerateInput is returned when a coupon schedule is empty.
var ErrDegenerateInput = errors.New("pricer: degenerate coupon schedule")
