package calc

import (
	"errors"
	"math"
	"testing"

	"gotest.tools/v3/assert"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		secs float64
		want string
	}{
		{0, "0:00.000"},
		{59.999, "0:59.999"},
		{65.25, "1:05.250"},
		{125.5, "2:05.500"},
		{3600, "60:00.000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, FormatTime(tt.secs), tt.want)
		})
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "1:05.250", want: 65.25},
		{in: "0:59.999", want: 59.999},
		{in: "59.999", want: 59.999},
		{in: " 2:05.500 ", want: 125.5},
		{in: "32.1", want: 32.1},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1:xx", wantErr: true},
		{in: "1:60.000", wantErr: true},
		{in: "-1:00.000", wantErr: true},
		{in: "-3.5", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTime(tt.in)
			if tt.wantErr {
				assert.Assert(t, errors.Is(err, ErrInvalidArgument), "got %v", err)
				return
			}
			assert.NilError(t, err)
			assert.Assert(t, math.Abs(got-tt.want) < 1e-9, "got %v want %v", got, tt.want)
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, secs := range []float64{0, 1.001, 59.5, 61.234, 95.678, 3599.999, 7322.1} {
		got, err := ParseTime(FormatTime(secs))
		assert.NilError(t, err)
		assert.Assert(t, math.Abs(got-secs) < 0.0005, "secs %v got %v", secs, got)
	}
}
