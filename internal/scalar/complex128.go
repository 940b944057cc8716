package scalar

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Complex128 is the native complex double-precision realization of
// Scalar, used for ODEs like the complex oscillator (spec scenario 4:
// ẋ = i·x).
type Complex128 complex128

func (a Complex128) Add(b Scalar) Scalar { return a + b.(Complex128) }
func (a Complex128) Sub(b Scalar) Scalar { return a - b.(Complex128) }
func (a Complex128) Mul(b Scalar) Scalar { return a * b.(Complex128) }
func (a Complex128) Neg() Scalar            { return -a }
func (a Complex128) Scale(f float64) Scalar { return a * Complex128(complex(f, 0)) }
func (a Complex128) Abs() float64        { return cmplx.Abs(complex128(a)) }
func (a Complex128) IsZero() bool        { return complex128(a) == 0 }
func (a Complex128) Zero() Scalar        { return Complex128(0) }
func (a Complex128) One() Scalar         { return Complex128(1) }
func (a Complex128) Equal(b Scalar) bool { return a == b.(Complex128) }
func (a Complex128) String() string      { return fmt.Sprintf("%g", complex128(a)) }

func (a Complex128) Quo(b Scalar) (Scalar, error) {
	bb := b.(Complex128)
	if bb == 0 {
		return nil, ErrDivByZero
	}
	return a / bb, nil
}

func (a Complex128) Exp() Scalar { return Complex128(cmplx.Exp(complex128(a))) }

func (a Complex128) Log() (Scalar, error) {
	if complex128(a) == 0 {
		return nil, ErrDomain
	}
	return Complex128(cmplx.Log(complex128(a))), nil
}

func (a Complex128) SinCos() (sin, cos Scalar) {
	return Complex128(cmplx.Sin(complex128(a))), Complex128(cmplx.Cos(complex128(a)))
}

func (a Complex128) PowReal(p float64) (Scalar, error) {
	if complex128(a) == 0 && p != math.Trunc(p) {
		return nil, ErrDomain
	}
	if complex128(a) == 0 && p < 0 {
		return nil, ErrDomain
	}
	return Complex128(cmplx.Pow(complex128(a), complex(p, 0))), nil
}

func (a Complex128) Sqrt() (Scalar, error) {
	return Complex128(cmplx.Sqrt(complex128(a))), nil
}
