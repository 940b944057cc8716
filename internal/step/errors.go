package step

import "errors"

// ErrNoConstraint is returned alongside a usable step size when both
// tail coefficients are zero: the series gives no information to bound
// the truncation error (the right-hand side vanished at this order, a
// genuinely exact polynomial solution, or the state sits at a fixed
// point). Callers should treat this as informational, not fatal - the
// returned step is +Inf, and Controller.Clamp's IsInf branch turns it
// into forward progress by cutting it down to the caller's remaining
// time.
var ErrNoConstraint = errors.New("step: tail coefficients give no constraint on step size")
