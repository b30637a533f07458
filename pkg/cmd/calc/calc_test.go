package calc

import (
	"bytes"
	"encoding/json"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCalcCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStintsTable(t *testing.T) {
	out, err := run(t, "stints",
		"--minutes", "60", "--lap-time", "90", "--tank", "100", "--fuel-per-lap", "2.5")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "laps per tank"))
	assert.Assert(t, is.Contains(out, "20, 20"))
}

func TestStintsJSON(t *testing.T) {
	out, err := run(t, "stints", "-o", "json",
		"--minutes", "60", "--lap-time", "90", "--tank", "100", "--fuel-per-lap", "2.5")
	assert.NilError(t, err)
	var got map[string]any
	assert.NilError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, got["total_laps"], 40.0)
	assert.Equal(t, got["pit_stops"], 1.0)
}

func TestCalcErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing flag", []string{"stints", "--minutes", "60"}, "required flag"},
		{
			"invalid argument",
			[]string{"tirewear", "--laps", "5", "--life", "0"},
			"invalid argument",
		},
		{"invalid time", []string{"format", "1:75.000"}, "invalid argument"},
		{"unknown output", []string{"format", "-o", "xml", "65"}, "unknown output format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestFormat(t *testing.T) {
	out, err := run(t, "format", "-o", "json", "65.25", "1:05.250")
	assert.NilError(t, err)
	var got map[string]float64
	assert.NilError(t, json.Unmarshal([]byte(out), &got))
	assert.DeepEqual(t, got, map[string]float64{"65.25": 65.25, "1:05.250": 65.25})
}
