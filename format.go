package termc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// FormatValue renders a value as a+bi, a-bi, a, or bi, using the shortest
// decimal representation of each part that parses back to the same float.
// A unit imaginary part is written as i or -i, and negative zero as 0.
func FormatValue(v complex128) string {
	return format(v, decimal)
}

// FormatBase renders a value like FormatValue, but in base 2, 8, or 16,
// with each part prefixed by 0b, 0o, or 0x. Fractions are truncated after
// ten digits. FormatBase panics if base is not 2, 8, or 16.
func FormatBase(v complex128, base int) string {
	var prefix string
	switch base {
	case 2:
		prefix = "0b"
	case 8:
		prefix = "0o"
	case 16:
		prefix = "0x"
	default:
		panic("termc: cannot format in base " + strconv.Itoa(base))
	}
	return format(v, func(x float64) string { return radix(x, base, prefix) })
}

// FormatResults joins the rendered results of several inputs.
func FormatResults(results []string) string {
	return strings.Join(results, ";")
}

func format(v complex128, num func(float64) string) string {
	re, im := real(v), imag(v)
	if im == 0 {
		return num(re)
	}
	var b strings.Builder
	if re != 0 {
		b.WriteString(num(re))
		if !math.Signbit(im) {
			b.WriteByte('+')
		}
	}
	if math.Signbit(im) {
		b.WriteByte('-')
		im = -im
	}
	if im != 1 {
		b.WriteString(num(im))
	}
	b.WriteByte('i')
	return b.String()
}

func decimal(x float64) string {
	if x == 0 {
		return "0"
	}
	return strings.TrimPrefix(strconv.FormatFloat(x, 'f', -1, 64), "+")
}

// fracDigits is the most digits after the point that radix writes.
const fracDigits = 10

func radix(x float64, base int, prefix string) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Inf"
	case math.IsInf(x, -1):
		return "-Inf"
	case x == 0:
		return prefix + "0"
	}
	var b strings.Builder
	if x < 0 {
		b.WriteByte('-')
		x = -x
	}
	b.WriteString(prefix)
	ip, frac := math.Modf(x)
	if ip < 1<<63 {
		b.WriteString(strconv.FormatUint(uint64(ip), base))
	} else {
		n, _ := big.NewFloat(ip).Int(nil)
		b.WriteString(n.Text(base))
	}
	if frac != 0 {
		b.WriteByte('.')
		for k := 0; k < fracDigits && frac != 0; k++ {
			frac *= float64(base)
			d, f := math.Modf(frac)
			b.WriteString(strconv.FormatUint(uint64(d), base))
			frac = f
		}
	}
	return b.String()
}
