// Package jet drives the order-by-order Taylor coefficient recurrence:
// given a right-hand side f and a state seeded at order 0 (the current
// point), it fills in orders 1..N of every state coordinate's jet by
// repeatedly evaluating f against a growing prefix of already-known
// coefficients and dividing the result by the new order.
//
// This is the forward-mode automatic-differentiation step that turns an
// ordinary vector field into the polynomial trajectory internal/poly
// and internal/taylorint evaluate and integrate.
package jet
