package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    [4]float64
		wantErr bool
	}{
		{name: "red", input: "#ff0000", want: [4]float64{1, 0, 0, 1}},
		{name: "no_hash_prefix", input: "00ff00", want: [4]float64{0, 1, 0, 1}},
		{name: "with_alpha", input: "#00000080", want: [4]float64{0, 0, 0, 128.0 / 255}},
		{name: "grey_panel_default", input: "#80808080", want: [4]float64{128.0 / 255, 128.0 / 255, 128.0 / 255, 128.0 / 255}},
		{name: "too_short", input: "#fff", wantErr: true},
		{name: "bad_digits", input: "#gggggg", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-9, "component %d", i)
			}
		})
	}
}
