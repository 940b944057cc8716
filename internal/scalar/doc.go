// Package scalar defines the numeric capability set that the Taylor-jet
// polynomial kernel is built against.
//
// A coefficient type needs only the operations the right-hand side
// actually calls: field arithmetic always, division and the elementary
// transcendentals only when the concrete RHS uses them. [Scalar] carries
// the always-required operations; [Divider] and [Transcendental] are
// implemented by whichever concrete types support them:
//
//   - [Float64]: native double precision
//   - [Complex128]: native complex double precision
//   - [BigFloat]: arbitrary precision via math/big
//   - *poly.Polynomial itself, for the variational system's nested jets
//
// # Thread Safety
//
// Scalar values are treated as immutable by every operation in this
// package; none of the concrete types here hold a mutex or otherwise
// support concurrent mutation.
package scalar
