// Package aero computes the aerodynamic quantities shown alongside catalog
// records: ISA air density, wing loading, lift coefficients, aspect ratio and
// equivalent airspeed.
package aero

import "math"

// International Standard Atmosphere constants.
const (
	GasConstant        = 287.05287 // J/(kg·K)
	Gravity            = 9.80665   // m/s²
	SeaLevelPressure   = 101325.0  // Pa
	SeaLevelTemp       = 288.15    // K
	SeaLevelDensity    = 1.225     // kg/m³
	LapseRate          = -0.0065   // K/m
	TropopauseAltitude = 11000.0   // m
)

// AirDensity returns the ISA air density in kg/m³ at altitudeM meters.
// Negative altitudes clamp to sea level.
func AirDensity(altitudeM float64) float64 {
	if altitudeM < 0 {
		return SeaLevelDensity
	}
	return isaDensity(altitudeM, GasConstant)
}

func isaDensity(h, r float64) float64 {
	exp := -Gravity / (LapseRate * r)
	if h <= TropopauseAltitude {
		t := SeaLevelTemp + LapseRate*h
		p := SeaLevelPressure * math.Pow(t/SeaLevelTemp, exp)
		return p / (r * t)
	}
	// Isothermal layer above the tropopause.
	t1 := SeaLevelTemp + LapseRate*TropopauseAltitude
	p1 := SeaLevelPressure * math.Pow(t1/SeaLevelTemp, exp)
	p := p1 * math.Exp(-Gravity*(h-TropopauseAltitude)/(r*t1))
	return p / (r * t1)
}
