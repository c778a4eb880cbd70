package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{name: "parenthesized pair", raw: "(40.7,-74.0)", lat: 40.7, lng: -74.0},
		{name: "bare pair", raw: "48.85,2.35", lat: 48.85, lng: 2.35},
		{name: "spaces inside", raw: "( 40.7 , -74.0 )", lat: 40.7, lng: -74.0},
		{name: "missing component", raw: "(40.7)", wantErr: true},
		{name: "too many components", raw: "(1,2,3)", wantErr: true},
		{name: "non numeric", raw: "(north,south)", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lat, lng, err := splitCoordinates(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.lat, lat)
			assert.Equal(t, tc.lng, lng)
		})
	}
}
