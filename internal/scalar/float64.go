package scalar

import (
	"fmt"
	"math"
)

// Float64 is the native double-precision realization of Scalar.
type Float64 float64

func (a Float64) Add(b Scalar) Scalar { return a + b.(Float64) }
func (a Float64) Sub(b Scalar) Scalar { return a - b.(Float64) }
func (a Float64) Mul(b Scalar) Scalar { return a * b.(Float64) }
func (a Float64) Neg() Scalar         { return -a }
func (a Float64) Scale(f float64) Scalar { return a * Float64(f) }
func (a Float64) Abs() float64        { return math.Abs(float64(a)) }
func (a Float64) IsZero() bool        { return float64(a) == 0 }
func (a Float64) Zero() Scalar        { return Float64(0) }
func (a Float64) One() Scalar         { return Float64(1) }
func (a Float64) Equal(b Scalar) bool { return a == b.(Float64) }
func (a Float64) String() string      { return fmt.Sprintf("%g", float64(a)) }

func (a Float64) Quo(b Scalar) (Scalar, error) {
	bb := b.(Float64)
	if bb == 0 {
		return nil, ErrDivByZero
	}
	return a / bb, nil
}

func (a Float64) Exp() Scalar { return Float64(math.Exp(float64(a))) }

func (a Float64) Log() (Scalar, error) {
	if float64(a) <= 0 {
		return nil, ErrDomain
	}
	return Float64(math.Log(float64(a))), nil
}

func (a Float64) SinCos() (sin, cos Scalar) {
	s, c := math.Sincos(float64(a))
	return Float64(s), Float64(c)
}

func (a Float64) PowReal(p float64) (Scalar, error) {
	if float64(a) == 0 && p != math.Trunc(p) {
		return nil, ErrDomain
	}
	if float64(a) == 0 && p < 0 {
		return nil, ErrDomain
	}
	return Float64(math.Pow(float64(a), p)), nil
}

func (a Float64) Sqrt() (Scalar, error) {
	if float64(a) < 0 {
		return nil, ErrDomain
	}
	return Float64(math.Sqrt(float64(a))), nil
}
