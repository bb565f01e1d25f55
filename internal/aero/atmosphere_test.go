package aero

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAirDensity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		altitude float64
		want     float64
	}{
		{name: "sea level", altitude: 0, want: 1.2250},
		{name: "negative clamps to sea level", altitude: -300, want: SeaLevelDensity},
		{name: "mid troposphere", altitude: 5000, want: 0.73612},
		{name: "tropopause", altitude: 11000, want: 0.36392},
		{name: "narrowbody cruise", altitude: 11900, want: 0.31577},
		{name: "stratosphere", altitude: 20000, want: 0.08803},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, AirDensity(tt.altitude), 1e-4)
		})
	}
}

func TestAirDensityDecreasesWithAltitude(t *testing.T) {
	t.Parallel()

	prev := AirDensity(0)
	for h := 500.0; h <= 25000; h += 500 {
		cur := AirDensity(h)
		assert.Less(t, cur, prev, "density at %v m", h)
		prev = cur
	}
}
