package aero

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveFullRecord(t *testing.T) {
	t.Parallel()

	d := Derive(Inputs{
		MTOW:           78000,
		WingArea:       122.6,
		Wingspan:       35.8,
		CruiseSpeed:    840,
		LandingSpeed:   250,
		CruiseAltitude: 11900,
	})

	require.NotNil(t, d.WingLoading)
	assert.InDelta(t, 636.215, *d.WingLoading, 1e-3)
	require.NotNil(t, d.AspectRatio)
	assert.InDelta(t, 10.4538, *d.AspectRatio, 1e-4)
	require.NotNil(t, d.AirDensityCruise)
	assert.InDelta(t, 0.31577, *d.AirDensityCruise, 1e-4)
	require.NotNil(t, d.CruiseCL)
	assert.InDelta(t, 0.6528, *d.CruiseCL, 1e-3)
	require.NotNil(t, d.LandingCL)
	assert.InDelta(t, 1.7942, *d.LandingCL, 1e-3)
	require.NotNil(t, d.EquivalentAirspeed)
	assert.InDelta(t, 426.48, *d.EquivalentAirspeed, 0.05)
}

func TestDeriveMissingInputs(t *testing.T) {
	t.Parallel()

	t.Run("no altitude", func(t *testing.T) {
		t.Parallel()
		d := Derive(Inputs{MTOW: 1000, WingArea: 10, CruiseSpeed: 200, LandingSpeed: 90})
		assert.Nil(t, d.AirDensityCruise)
		assert.Nil(t, d.CruiseCL)
		assert.Nil(t, d.EquivalentAirspeed)
		assert.NotNil(t, d.LandingCL)
		assert.NotNil(t, d.WingLoading)
	})

	t.Run("no wing area", func(t *testing.T) {
		t.Parallel()
		d := Derive(Inputs{MTOW: 1000, Wingspan: 11, CruiseSpeed: 200, CruiseAltitude: 3000})
		assert.Nil(t, d.WingLoading)
		assert.Nil(t, d.AspectRatio)
		assert.Nil(t, d.CruiseCL)
		assert.NotNil(t, d.EquivalentAirspeed)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, Derived{}, Derive(Inputs{}))
	})
}

func TestLiftCoefficient(t *testing.T) {
	t.Parallel()

	// 1 kN over 1 m² at 10 m/s in sea level air.
	assert.InDelta(t, 16.3265, LiftCoefficient(1000, SeaLevelDensity, 1, 10), 1e-4)
}
