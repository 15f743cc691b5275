package termc_test

import (
	"math"
	"testing"

	"github.com/zephyrtronium/termc"
)

func TestFormatValue(t *testing.T) {
	cases := []struct {
		v    complex128
		want string
	}{
		{0, "0"},
		{complex(math.Copysign(0, -1), 0), "0"},
		{1, "1"},
		{-1, "-1"},
		{0.1, "0.1"},
		{1e21, "1000000000000000000000"},
		{1e-7, "0.0000001"},
		{6381.133924000001, "6381.133924000001"},
		{-0.7071067811865477, "-0.7071067811865477"},
		{5 + 3i, "5+3i"},
		{5 - 3i, "5-3i"},
		{7 - 2i, "7-2i"},
		{1i, "i"},
		{-1i, "-i"},
		{2i, "2i"},
		{1 + 1i, "1+i"},
		{1 - 1i, "1-i"},
		{complex(0, -2.5), "-2.5i"},
		{complex(3, math.Copysign(0, -1)), "3"},
		{complex(math.Inf(1), 0), "Inf"},
		{complex(math.Inf(-1), 0), "-Inf"},
		{complex(math.NaN(), 0), "NaN"},
		{complex(1, math.Inf(1)), "1+Infi"},
	}
	for _, c := range cases {
		if got := termc.FormatValue(c.v); got != c.want {
			t.Errorf("formatting %v: want %q, got %q", c.v, c.want, got)
		}
	}
}

func TestFormatBase(t *testing.T) {
	cases := []struct {
		v    complex128
		base int
		want string
	}{
		{0, 2, "0b0"},
		{10, 2, "0b1010"},
		{-5, 2, "-0b101"},
		{0.5, 2, "0b0.1"},
		{2.75, 2, "0b10.11"},
		{8, 8, "0o10"},
		{255, 16, "0xff"},
		{0.1, 16, "0x0.1999999999"},
		{1 << 64, 16, "0x10000000000000000"},
		{3 + 2i, 16, "0x3+0x2i"},
		{1i, 2, "i"},
		{1 - 1i, 8, "0o1-i"},
		{-4i, 2, "-0b100i"},
		{complex(math.Inf(1), 0), 16, "Inf"},
	}
	for _, c := range cases {
		if got := termc.FormatBase(c.v, c.base); got != c.want {
			t.Errorf("formatting %v in base %d: want %q, got %q", c.v, c.base, c.want, got)
		}
	}
}

func TestFormatBasePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("formatting in base 10 did not panic")
		}
	}()
	termc.FormatBase(1, 10)
}

func TestFormatResults(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"1"}, "1"},
		{[]string{"1", "2i", "7-2i"}, "1;2i;7-2i"},
	}
	for _, c := range cases {
		if got := termc.FormatResults(c.in); got != c.want {
			t.Errorf("joining %q: want %q, got %q", c.in, c.want, got)
		}
	}
}
