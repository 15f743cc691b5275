package termc

import (
	"math"
	"math/cmplx"
	"strconv"
)

// DomainError is an error returned when an operation or function is applied
// to an argument at one of its singularities.
type DomainError struct {
	// X is the out-of-domain argument.
	X complex128
	// Arg is the 1-based index of the argument, or 0 if the function has
	// only one.
	Arg int
	// Func is the name of the operation or function.
	Func string
}

func (err *DomainError) Error() string {
	r := FormatValue(err.X) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

func domain(fn string, x complex128) error {
	return &DomainError{X: x, Func: fn}
}

// Add returns a+b.
func Add(a, b complex128) complex128 { return a + b }

// Sub returns a-b.
func Sub(a, b complex128) complex128 { return a - b }

// Mul returns a*b.
func Mul(a, b complex128) complex128 { return a * b }

// Div returns a/b. Division by zero is a domain error.
func Div(a, b complex128) (complex128, error) {
	if b == 0 {
		return 0, &DomainError{X: b, Arg: 2, Func: "/"}
	}
	return a / b, nil
}

// Ln returns the principal natural logarithm ln|z| + i·arg(z), with the
// argument in (-π, π]. ln(0) is a domain error.
func Ln(z complex128) (complex128, error) {
	if z == 0 {
		return 0, domain("ln", z)
	}
	return complex(math.Log(cmplx.Abs(z)), cmplx.Phase(unsigned(z))), nil
}

// Exp returns e^z.
func Exp(z complex128) complex128 {
	m := math.Exp(real(z))
	if imag(z) == 0 {
		return complex(m, 0)
	}
	s, c := math.Sincos(imag(z))
	return complex(m*c, m*s)
}

// maxIntExp is the largest integer exponent Pow computes by repeated
// multiplication.
const maxIntExp = 1 << 53

// Pow returns the principal value of a^b, i.e. exp(b·ln a). Real powers of
// reals use math.Pow when the result is real, and other integer powers are
// computed by repeated squaring, so i^2 is exactly -1. Everything else is
// expanded in polar form, |a|^re(b)·e^(-im(b)·arg a)·cis(im(b)·ln|a| +
// re(b)·arg a). For a zero base, 0^0 is 1 and 0^b is 0 for real b > 0; any
// other power of zero needs ln(0) and is a domain error.
func Pow(a, b complex128) (complex128, error) {
	if a == 0 {
		switch {
		case b == 0:
			return 1, nil
		case imag(b) == 0 && real(b) > 0:
			return 0, nil
		default:
			return 0, &DomainError{X: a, Arg: 1, Func: "^"}
		}
	}
	a = unsigned(a)
	if imag(b) == 0 {
		n := real(b)
		integer := n == math.Trunc(n) && math.Abs(n) <= maxIntExp
		switch {
		case imag(a) == 0 && (real(a) > 0 || integer):
			return complex(math.Pow(real(a), n), 0), nil
		case integer:
			return intPow(a, n), nil
		}
	}
	r, theta := cmplx.Abs(a), cmplx.Phase(a)
	mod := math.Pow(r, real(b))
	phase := real(b) * theta
	if imag(b) != 0 {
		mod *= math.Exp(-imag(b) * theta)
		phase += imag(b) * math.Log(r)
	}
	s, c := math.Sincos(phase)
	return complex(mod*c, mod*s), nil
}

// intPow returns a^n for an integer n by binary exponentiation. a is not
// zero.
func intPow(a complex128, n float64) complex128 {
	k := uint64(math.Abs(n))
	r := complex128(1)
	for ; k > 0; k >>= 1 {
		if k&1 != 0 {
			r = Mul(r, a)
		}
		a = Mul(a, a)
	}
	if n < 0 {
		return 1 / r
	}
	return r
}

// unsigned replaces negative zero parts of z with positive zero, so a value
// on a branch cut takes the principal side.
func unsigned(z complex128) complex128 {
	return complex(real(z)+0, imag(z)+0)
}

// Root returns the n-th root of x, x^(1/n). n must be real and non-zero.
func Root(n, x complex128) (complex128, error) {
	if n == 0 || imag(n) != 0 {
		return 0, &DomainError{X: n, Arg: 2, Func: "root"}
	}
	return Pow(x, complex(1/real(n), 0))
}

// Sqrt returns the principal square root of z.
func Sqrt(z complex128) complex128 {
	return cmplx.Sqrt(z)
}

// Sin returns sin(a+bi) = sin a cosh b + i cos a sinh b.
func Sin(z complex128) complex128 {
	s, c := math.Sincos(real(z))
	return complex(s*math.Cosh(imag(z)), c*math.Sinh(imag(z)))
}

// Cos returns cos(a+bi) = cos a cosh b - i sin a sinh b.
func Cos(z complex128) complex128 {
	s, c := math.Sincos(real(z))
	return complex(c*math.Cosh(imag(z)), -s*math.Sinh(imag(z)))
}

// Tan returns sin z / cos z.
func Tan(z complex128) (complex128, error) {
	c := Cos(z)
	if c == 0 {
		return 0, domain("tan", z)
	}
	return Sin(z) / c, nil
}

// Cot returns cos z / sin z.
func Cot(z complex128) (complex128, error) {
	s := Sin(z)
	if s == 0 {
		return 0, domain("cot", z)
	}
	return Cos(z) / s, nil
}

// Sinh returns sinh(a+bi) = sinh a cos b + i cosh a sin b.
func Sinh(z complex128) complex128 {
	s, c := math.Sincos(imag(z))
	return complex(math.Sinh(real(z))*c, math.Cosh(real(z))*s)
}

// Cosh returns cosh(a+bi) = cosh a cos b + i sinh a sin b.
func Cosh(z complex128) complex128 {
	s, c := math.Sincos(imag(z))
	return complex(math.Cosh(real(z))*c, math.Sinh(real(z))*s)
}

// Tanh returns sinh z / cosh z.
func Tanh(z complex128) (complex128, error) {
	if imag(z) == 0 {
		return complex(math.Tanh(real(z)), 0), nil
	}
	c := Cosh(z)
	if c == 0 {
		return 0, domain("tanh", z)
	}
	return Sinh(z) / c, nil
}

// Coth returns cosh z / sinh z.
func Coth(z complex128) (complex128, error) {
	s := Sinh(z)
	if s == 0 {
		return 0, domain("coth", z)
	}
	return Cosh(z) / s, nil
}

// The inverse functions use the principal branches of math/cmplx, which
// follow the C99 branch cuts: asin and acos cut along the real axis outside
// [-1, 1], atan along the imaginary axis outside [-i, i], asinh along the
// imaginary axis outside [-i, i], acosh along the real axis left of 1, and
// atanh along the real axis outside [-1, 1].

// Asin returns the principal arcsine -i·ln(iz + sqrt(1-z²)).
func Asin(z complex128) complex128 {
	return cmplx.Asin(z)
}

// Acos returns the principal arccosine π/2 - asin z.
func Acos(z complex128) complex128 {
	return cmplx.Acos(z)
}

// Atan returns the principal arctangent (i/2)·ln((i+z)/(i-z)). atan(±i) is
// a domain error.
func Atan(z complex128) (complex128, error) {
	if z == 1i || z == -1i {
		return 0, domain("atan", z)
	}
	return cmplx.Atan(z), nil
}

// Acot returns atan(1/z), with acot(0) = π/2. acot(±i) is a domain error.
func Acot(z complex128) (complex128, error) {
	switch z {
	case 0:
		return math.Pi / 2, nil
	case 1i, -1i:
		return 0, domain("acot", z)
	}
	return cmplx.Atan(1 / z), nil
}

// Asinh returns the principal inverse hyperbolic sine ln(z + sqrt(z²+1)).
func Asinh(z complex128) complex128 {
	return cmplx.Asinh(z)
}

// Acosh returns the principal inverse hyperbolic cosine
// ln(z + sqrt(z+1)·sqrt(z-1)).
func Acosh(z complex128) complex128 {
	return cmplx.Acosh(z)
}

// Atanh returns the principal inverse hyperbolic tangent
// ½·ln((1+z)/(1-z)). atanh(±1) is a domain error.
func Atanh(z complex128) (complex128, error) {
	if z == 1 || z == -1 {
		return 0, domain("atanh", z)
	}
	return cmplx.Atanh(z), nil
}

// Acoth returns atanh(1/z), with acoth(0) = iπ/2. acoth(±1) is a domain
// error.
func Acoth(z complex128) (complex128, error) {
	switch z {
	case 0:
		return complex(0, math.Pi/2), nil
	case 1, -1:
		return 0, domain("acoth", z)
	}
	return cmplx.Atanh(1 / z), nil
}
