// Package step chooses the next Taylor-series step size from the
// truncated tail of an already-computed jet, the way a classical
// Runge-Kutta step doubles as its own error estimator but adapted to a
// series method: instead of comparing a low- and high-order pair of
// stages, it compares the magnitude of the last two computed Taylor
// coefficients against the orders they came from.
package step
