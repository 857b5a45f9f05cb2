package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func golden(t *testing.T, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	return string(data)
}

func TestRunDefaultPrintsHDTable(t *testing.T) {
	code, out, errOut := runCmd(t)

	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, golden(t, "hd.golden"), out)
	assert.Empty(t, errOut)
}

func TestRunIsDeterministic(t *testing.T) {
	_, a, _ := runCmd(t)
	_, b, _ := runCmd(t)
	assert.Equal(t, a, b)
}

func TestRunSDPreset(t *testing.T) {
	for _, args := range [][]string{
		{"--preset", "sd"},
		{"--sample-rate", "48000"},
	} {
		code, out, errOut := runCmd(t, args...)
		require.Equal(t, exitOK, code, errOut)
		assert.Equal(t, golden(t, "sd.golden"), out, "args %v", args)
	}
}

func TestRunGoFormat(t *testing.T) {
	code, out, errOut := runCmd(t, "-f", "go", "--name", "hdCoeffs")
	require.Equal(t, exitOK, code, errOut)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "var hdCoeffs = [2][12]float64{", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "\t{-0.0005187988281, -0.0053405761719,"), lines[1])
	assert.True(t, strings.HasSuffix(lines[2], "-0.0053405761719, -0.0005187988281},"), lines[2])
	assert.Equal(t, "}", lines[3])
}

func TestRunFlagOverrides(t *testing.T) {
	code, out, errOut := runCmd(t, "--bits", "8", "--precision", "4")
	require.Equal(t, exitOK, code, errOut)

	want := "[\n" +
		"\t[0.0000, -0.0039, -0.0195, -0.0547, -0.1367, -0.4023, 1.2656, 0.2227, 0.0898, 0.0352, 0.0117, 0.0039],\n" +
		"\t[0.0039, 0.0117, 0.0352, 0.0898, 0.2227, 1.2656, -0.4023, -0.1367, -0.0547, -0.0195, -0.0039, 0.0000],\n" +
		"]\n"
	assert.Equal(t, want, out)
}

func TestRunConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coeffs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preset: sd\nformat: go\n"), 0o600))

	code, out, errOut := runCmd(t, "-c", path, "--format", "bracket")
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, golden(t, "sd.golden"), out)
}

func TestRunReport(t *testing.T) {
	code, out, errOut := runCmd(t, "--report")
	require.Equal(t, exitOK, code)

	assert.Equal(t, golden(t, "hd.golden"), out, "report must not touch stdout")
	assert.Contains(t, errOut, "frequency response")
	assert.Contains(t, errOut, "phase_dc_gains")
	assert.Contains(t, errOut, "peak_tap=11")
	assert.NotContains(t, errOut, "stopband_db")

	code, _, errOut = runCmd(t, "-r", "--preset", "sd")
	require.Equal(t, exitOK, code)
	assert.Contains(t, errOut, "stopband_db")
}

func TestRunVerbose(t *testing.T) {
	code, _, errOut := runCmd(t, "-v")
	require.Equal(t, exitOK, code)
	assert.Contains(t, errOut, "designing")
}

func TestRunHelp(t *testing.T) {
	code, out, errOut := runCmd(t, "--help")
	assert.Equal(t, exitOK, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Usage: polycoeffs")
	assert.Contains(t, errOut, "--preset")
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"--nope"}},
		{name: "positional argument", args: []string{"extra"}},
		{name: "unknown preset", args: []string{"--preset", "uhd"}},
		{name: "indivisible taps", args: []string{"--taps", "25"}},
		{name: "bad rounding", args: []string{"--rounding", "up"}},
		{name: "bad format", args: []string{"-f", "csv"}},
		{name: "bad precision", args: []string{"--precision", "40"}},
		{name: "bad name", args: []string{"-f", "go", "--name", "1bad"}},
		{name: "unit factor", args: []string{"--factor", "1"}},
		{name: "unsupported rate", args: []string{"--sample-rate", "192000"}},
		{name: "missing config", args: []string{"-c", "does-not-exist.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, _ := runCmd(t, tt.args...)
			assert.Equal(t, exitUsage, code)
			assert.Empty(t, out)
		})
	}
}
