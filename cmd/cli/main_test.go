package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"npdecide/app"
	"npdecide/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseDistributionFlag(t *testing.T) {
	family, p1, p2, err := parseDistributionFlag("h0", "expon: 1 :2.5")
	require.NoError(t, err)
	assert.Equal(t, "expon", family)
	assert.Equal(t, 1.0, p1)
	assert.Equal(t, 2.5, p2)

	for _, bad := range []string{"norm", "norm:0", "norm:x:1", "norm:0:y", "norm:0:1:2"} {
		_, _, _, err := parseDistributionFlag("h1", bad)
		assert.ErrorIs(t, err, core.ErrInvalidParameter, bad)
	}
}

func TestContinuousCommand_Text(t *testing.T) {
	out, err := runCLI(t, "continuous", "--alpha", "0.05", "--h0", "norm:0:1", "--h1", "norm:1:1")
	require.NoError(t, err)
	assert.Contains(t, out, "Threshold c*: 1.6449")
	assert.Contains(t, out, "Power:        0.2595")
	assert.Contains(t, out, "H0: Normal(0, 1)")
}

func TestContinuousCommand_JSON(t *testing.T) {
	out, err := runCLI(t, "continuous", "--output", "json", "--h0", "uniform:0:10", "--h1", "uniform:5:10", "--alpha", "0.2")
	require.NoError(t, err)

	var calc app.ContinuousCalculation
	require.NoError(t, json.Unmarshal([]byte(out), &calc))
	assert.InDelta(t, 8.0, calc.Result.Threshold, 1e-9)
	assert.InDelta(t, 0.7, calc.Result.Power, 1e-9)
}

func TestContinuousCommand_InvalidScale(t *testing.T) {
	_, err := runCLI(t, "continuous", "--h1", "norm:1:0")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestMatrixCommand_Text(t *testing.T) {
	out, err := runCLI(t, "matrix", "--text", "0,4;5,1;6,3;3,2", "--controlled", "0", "--l-star", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Optimal: Strategy 4 (100%)")
	assert.Contains(t, out, "Minimum uncontrolled loss: 2.0000")
}

func TestMatrixCommand_YAMLFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.csv")
	require.NoError(t, os.WriteFile(path, []byte("L,J\n0,4\n5,1\n6,3\n3,2\n"), 0o600))

	out, err := runCLI(t, "matrix", "--file", path, "--l-star", "3", "-o", "yaml")
	require.NoError(t, err)

	var doc struct {
		Result struct {
			Description    string `yaml:"description"`
			Classification string `yaml:"classification"`
		} `yaml:"result"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Strategy 4 (100%)", doc.Result.Description)
	assert.Equal(t, "pure", doc.Result.Classification)
}

func TestMatrixCommand_Flags(t *testing.T) {
	_, err := runCLI(t, "matrix", "--l-star", "3")
	assert.Error(t, err)

	_, err = runCLI(t, "matrix", "--text", "0,4", "--file", "x.csv", "--l-star", "3")
	assert.Error(t, err)

	_, err = runCLI(t, "matrix", "--text", "5,1", "--l-star", "3")
	assert.ErrorIs(t, err, core.ErrNoFeasibleStrategy)
}

func TestRender_UnknownFormat(t *testing.T) {
	err := render(&bytes.Buffer{}, "xml", &app.MatrixCalculation{})
	assert.Error(t, err)
}
