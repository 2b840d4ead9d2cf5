package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlaybackTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "plain_seconds", input: "90", want: 90},
		{name: "fractional_seconds", input: "90.25", want: 90.25},
		{name: "minutes_seconds", input: "1:30", want: 90},
		{name: "fractional_minutes_seconds", input: "1:30.5", want: 90.5},
		{name: "hours_minutes_seconds", input: "0:01:30", want: 90},
		{name: "hours_carry", input: "2:00:00", want: 7200},
		{name: "whitespace_tolerated", input: " 45 ", want: 45},
		{name: "empty", input: "", wantErr: true},
		{name: "not_a_number", input: "soon", wantErr: true},
		{name: "negative", input: "-5", wantErr: true},
		{name: "too_many_components", input: "1:2:3:4", wantErr: true},
		{name: "fractional_minutes", input: "1.5:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePlaybackTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestFrameTime(t *testing.T) {
	got, err := FrameTime(50, 25)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-9)

	got, err = FrameTime(0, 30)
	require.NoError(t, err)
	assert.Zero(t, got)

	_, err = FrameTime(10, 0)
	assert.Error(t, err)

	_, err = FrameTime(-1, 25)
	assert.Error(t, err)
}
