package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/termc"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func testApp(defs string) (*app, *bytes.Buffer) {
	var out bytes.Buffer
	return newApp(termc.NewSession(), &out, "dec", defs), &out
}

func TestCall(t *testing.T) {
	cases := []struct {
		name   string
		inputs []string
		out    string
		code   int
	}{
		{
			name:   "values",
			inputs: []string{"1+2", "f(x) = x^2", "f(3)", "5+3i"},
			out:    "3;9;5+3i\n",
		},
		{
			name:   "definitions and calls",
			inputs: []string{"custom_constant = 5*pi/4", "cos(custom_constant)", "f(a, b, c) = a + b - c", "f(5, 3-2i, sin(pi/2))"},
			out:    "-0.7071067811865477;7-2i\n",
		},
		{
			name:   "definitions",
			inputs: []string{"c = 1"},
			out:    "",
		},
		{
			name:   "failure",
			inputs: []string{"1", "2 +", "3"},
			out:    "In input 2:\nsyntax error: Expected function or operation.\n2 +\n   ^\n1\n",
			code:   1,
		},
		{
			name:   "domain",
			inputs: []string{"ln(0)"},
			out:    "In input 1:\ndomain error: Expected argument inside the domain of ln. Found: 0\nln(0)\n^~\n",
			code:   1,
		},
		{
			name:   "undefined",
			inputs: []string{"  3-cis(pi)  "},
			out:    "In input 1:\nundefined symbol: Expected function or operation. Found: cis\n3-cis(pi)\n  ^~~\n",
			code:   1,
		},
		{
			name:   "format",
			inputs: []string{"format hex", "255", "format bin", "5"},
			out:    "0xff;0b101\n",
		},
		{
			name:   "badformat",
			inputs: []string{"format dec2"},
			out:    "In input 1:\nError: unknown format \"dec2\": must be one of dec, bin, oct, hex\n",
			code:   1,
		},
		{
			name:   "exit",
			inputs: []string{"1", "exit", "2"},
			out:    "1\n",
		},
		{
			name:   "ans",
			inputs: []string{"2", "ans*ans", "ans+1"},
			out:    "2;4;5\n",
		},
		{
			name:   "commandnames",
			inputs: []string{"save = 4", "format(x) = 2x", "format(save)"},
			out:    "8\n",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, out := testApp(filepath.Join(t.TempDir(), "defs.json"))
			code := a.call(c.inputs)
			assert.Equal(t, c.code, code)
			assert.Equal(t, c.out, out.String())
		})
	}
}

func TestCallEcho(t *testing.T) {
	a, out := testApp("")
	a.echo = true
	assert.Equal(t, 0, a.call([]string{"2pi", "f(x) = x"}))
	assert.Equal(t, "((2) * (pi)) : 6.283185307179586\n", out.String())
}

func TestCommand(t *testing.T) {
	cases := []struct {
		line string
		name string
		arg  string
		ok   bool
	}{
		{"exit", "exit", "", true},
		{"  exit  ", "exit", "", true},
		{"load", "load", "", true},
		{"load defs.yaml", "load", "defs.yaml", true},
		{"save   /tmp/x y.json ", "save", "/tmp/x y.json", true},
		{"format hex", "format", "hex", true},
		{"save = 1", "", "", false},
		{"load (1)", "", "", false},
		{"format(2)", "", "", false},
		{"exits", "", "", false},
		{"1 + exit", "", "", false},
	}
	for _, c := range cases {
		name, arg, ok := command(c.line)
		assert.Equal(t, c.ok, ok, c.line)
		assert.Equal(t, c.name, name, c.line)
		assert.Equal(t, c.arg, arg, c.line)
	}
}

func TestSaveLoad(t *testing.T) {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sub", "defs"+ext)
			a, out := testApp("")
			require.Equal(t, 0, a.call([]string{"f(x) = x^2", "c = 79.882", "save " + path}))
			assert.Empty(t, out.String())
			require.FileExists(t, path)

			b, out := testApp("")
			require.Equal(t, 0, b.call([]string{"load " + path, "f(c)"}))
			assert.Equal(t, "6381.133924000001\n", out.String())
		})
	}
}

func TestSaveLoadDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termc_context.json")
	a, _ := testApp(path)
	o, err := a.step("k = 3i")
	require.NoError(t, err)
	assert.Equal(t, "defined k", o.note)
	o, err = a.step("save")
	require.NoError(t, err)
	assert.Equal(t, "saved 1 definitions to "+path, o.note)

	b, _ := testApp(path)
	o, err = b.step("load")
	require.NoError(t, err)
	assert.Equal(t, "loaded 1 definitions from "+path, o.note)
	o, err = b.step("k*k")
	require.NoError(t, err)
	assert.Equal(t, "-9", o.value)
}

func TestSaveNonFinite(t *testing.T) {
	for _, ext := range []string{".json", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "defs"+ext)
			a, out := testApp("")
			require.Equal(t, 0, a.call([]string{"c = 1E400", "exp(1000)", "save " + path}))
			assert.Equal(t, "Inf\n", out.String())

			b, out := testApp("")
			require.Equal(t, 0, b.call([]string{"load " + path, "ans", "-c", "c - c"}))
			assert.Equal(t, "Inf;-Inf;NaN\n", out.String())
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.json")
	unknown := filepath.Join(dir, "unknown.json")
	require.NoError(t, os.WriteFile(unknown, []byte(`{"constants": [], "extra": 1}`), 0o644))
	malformed := filepath.Join(dir, "malformed.yaml")
	require.NoError(t, os.WriteFile(malformed, []byte("functions:\n  - name: f\n    params: [x]\n    body: {op: pow}\n"), 0o644))

	for _, path := range []string{missing, unknown, malformed} {
		a, _ := testApp("")
		_, err := a.step("keep = 1")
		require.NoError(t, err)
		_, err = a.step("load " + path)
		assert.Error(t, err, path)
		assert.Equal(t, []string{"keep"}, a.sess.Symbols().ConstNames(), path)
		assert.Empty(t, a.sess.Symbols().FuncNames(), path)
	}

	a, _ := testApp("")
	_, err := a.step("load " + malformed)
	var ce *termc.CodecError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, `function "f"`, ce.Record)
	assert.True(t, strings.HasPrefix(err.Error(), "load "+malformed+": "))
}

func TestFormats(t *testing.T) {
	cases := map[string]string{
		"dec": "10.5-i",
		"bin": "0b1010.1-i",
		"oct": "0o12.4-i",
		"hex": "0xa.8-i",
	}
	for name, want := range cases {
		assert.Equal(t, want, formats[name](10.5-1i), name)
	}
}
