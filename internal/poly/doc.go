// Package poly implements univariate truncated-polynomial arithmetic
// over the scalar.Scalar capability set, with the coefficient-by-
// coefficient recurrences that make it usable as a forward-mode
// automatic-differentiation kernel for the Taylor series method.
//
// Every operator comes in two forms, per the kernel's contract:
//
//   - an allocating form ([Polynomial.Add], [Polynomial.Mul], ...)
//     returning a fresh [Polynomial] of the same order;
//   - an order-k mutating form (unexported, e.g. addAt/mulAt) that
//     writes coefficient k of a destination polynomial from
//     coefficients 0..k of its operands. The allocating forms are
//     built from these; nothing outside this package calls them.
//
// A [Polynomial] itself implements [scalar.Scalar], so a Polynomial of
// Polynomials is an ordinary, well-typed nesting rather than a special
// case — internal/variational uses exactly this to carry first-order
// directional derivatives alongside the physical trajectory.
package poly
