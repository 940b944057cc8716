package scalar

import "math/big"

// DefaultPrecision is the mantissa precision, in bits, new BigFloat
// values are created with when no explicit precision is requested.
const DefaultPrecision uint = 256

// BigFloat is the arbitrary-precision realization of Scalar, backed by
// math/big.Float. It follows the same "wrap the library's value type in
// a Scalar-shaped method set" pattern used for Float64 and Complex128;
// unlike those two it must track precision explicitly since big.Float
// carries no implicit default.
type BigFloat struct {
	v    *big.Float
	prec uint
}

// NewBigFloat builds a BigFloat from a float64 at the given precision.
// A prec of 0 uses DefaultPrecision.
func NewBigFloat(x float64, prec uint) BigFloat {
	if prec == 0 {
		prec = DefaultPrecision
	}
	return BigFloat{v: new(big.Float).SetPrec(prec).SetFloat64(x), prec: prec}
}

func (a BigFloat) value() *big.Float {
	if a.v == nil {
		return new(big.Float).SetPrec(a.precOrDefault())
	}
	return a.v
}

func (a BigFloat) precOrDefault() uint {
	if a.prec == 0 {
		return DefaultPrecision
	}
	return a.prec
}

func (a BigFloat) fresh() *big.Float { return new(big.Float).SetPrec(a.precOrDefault()) }

func (a BigFloat) Add(b Scalar) Scalar {
	bb := b.(BigFloat)
	return BigFloat{v: a.fresh().Add(a.value(), bb.value()), prec: a.precOrDefault()}
}

func (a BigFloat) Sub(b Scalar) Scalar {
	bb := b.(BigFloat)
	return BigFloat{v: a.fresh().Sub(a.value(), bb.value()), prec: a.precOrDefault()}
}

func (a BigFloat) Mul(b Scalar) Scalar {
	bb := b.(BigFloat)
	return BigFloat{v: a.fresh().Mul(a.value(), bb.value()), prec: a.precOrDefault()}
}

func (a BigFloat) Neg() Scalar {
	return BigFloat{v: a.fresh().Neg(a.value()), prec: a.precOrDefault()}
}

func (a BigFloat) Scale(f float64) Scalar {
	factor := new(big.Float).SetPrec(a.precOrDefault()).SetFloat64(f)
	return BigFloat{v: a.fresh().Mul(a.value(), factor), prec: a.precOrDefault()}
}

func (a BigFloat) Abs() float64 {
	f, _ := a.fresh().Abs(a.value()).Float64()
	return f
}

func (a BigFloat) IsZero() bool { return a.value().Sign() == 0 }
func (a BigFloat) Zero() Scalar { return BigFloat{v: a.fresh(), prec: a.precOrDefault()} }
func (a BigFloat) One() Scalar {
	return BigFloat{v: a.fresh().SetInt64(1), prec: a.precOrDefault()}
}

func (a BigFloat) Equal(b Scalar) bool {
	bb := b.(BigFloat)
	return a.value().Cmp(bb.value()) == 0
}

func (a BigFloat) String() string { return a.value().Text('g', 20) }

func (a BigFloat) Quo(b Scalar) (Scalar, error) {
	bb := b.(BigFloat)
	if bb.IsZero() {
		return nil, ErrDivByZero
	}
	return BigFloat{v: a.fresh().Quo(a.value(), bb.value()), prec: a.precOrDefault()}, nil
}

// Exp, Log, SinCos and PowReal round-trip through float64 since
// math/big has no transcendental functions of its own; this trades away
// some of BigFloat's precision advantage for those four operators only
// (Sqrt uses big.Float's own Sqrt at full precision),
// which mirrors the teacher's own pragmatic approach to imprecise inputs
// (internal/dynamo/trig.go's table-interpolated FastSin/FastCos also
// accepts reduced accuracy for a native type it cannot extend).
func (a BigFloat) Exp() Scalar {
	f, _ := a.value().Float64()
	return NewBigFloat(float64(Float64(f).Exp().(Float64)), a.precOrDefault())
}

func (a BigFloat) Log() (Scalar, error) {
	f, _ := a.value().Float64()
	r, err := Float64(f).Log()
	if err != nil {
		return nil, err
	}
	return NewBigFloat(float64(r.(Float64)), a.precOrDefault()), nil
}

func (a BigFloat) SinCos() (sin, cos Scalar) {
	f, _ := a.value().Float64()
	s, c := Float64(f).SinCos()
	return NewBigFloat(float64(s.(Float64)), a.precOrDefault()), NewBigFloat(float64(c.(Float64)), a.precOrDefault())
}

func (a BigFloat) PowReal(p float64) (Scalar, error) {
	f, _ := a.value().Float64()
	r, err := Float64(f).PowReal(p)
	if err != nil {
		return nil, err
	}
	return NewBigFloat(float64(r.(Float64)), a.precOrDefault()), nil
}

func (a BigFloat) Sqrt() (Scalar, error) {
	if a.value().Sign() < 0 {
		return nil, ErrDomain
	}
	return BigFloat{v: a.fresh().Sqrt(a.value()), prec: a.precOrDefault()}, nil
}
