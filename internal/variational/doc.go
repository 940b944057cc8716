// Package variational extends the core integrator with the machinery
// a Lyapunov-spectrum estimate needs. The tangent matrix Phi is
// propagated by nesting a dual-number polynomial as the coefficient
// type of the physical right-hand side and seeding jet.Driver.Compute's
// initial condition with it: the unmodified order-N coefficient
// recurrence then produces both the physical Taylor jet and the
// variational equation's solution Phi_dot = J*Phi as its epsilon part,
// a genuine Jacobian-vector product rather than a separately
// approximated matrix exponential. System.Jacobian uses the same
// nesting trick at order 0 to expose the instantaneous flow Jacobian
// directly, for callers that want it without advancing a step.
//
// DirectionIdx and StateIdx let a caller track fewer perturbation
// directions than the ambient state carries, and report sensitivity
// for a different set of coordinates than it tracks: d_var and d_state
// are independent of each other and of the base system's dimension.
//
// At each reorthonormalization checkpoint (once the reorthonormalization
// interval has elapsed, and on the final step), ReorthonormalizeMGS
// (modified Gram-Schmidt, preferred for stability) or ReorthonormalizeCGS
// (classical, kept because both are exercised) factor Phi = QR, Phi is
// replaced by Q (Phi is a matrix kept beside the state, not part of it),
// and log|R_ii| is added to a running sum that ComputeSpectrum divides
// by elapsed time for the running exponent estimates.
//
// This sits outside the core integrator's data path: internal/taylorint
// never imports this package, and a caller that does not need Lyapunov
// exponents never pays for it.
package variational
