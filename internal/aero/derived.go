package aero

import "math"

const (
	// catalogGravity is the g used for catalog lift coefficients (kg → N).
	catalogGravity = 9.8
	// cruiseWeightFraction is the share of MTOW assumed during cruise.
	cruiseWeightFraction = 0.9
	// landingWeightFraction is the share of MTOW assumed on landing.
	landingWeightFraction = 0.85
)

// Inputs holds the stored quantities a derivation needs. A zero value means
// the quantity is unknown.
type Inputs struct {
	MTOW           float64 // kg
	WingArea       float64 // m²
	Wingspan       float64 // m
	CruiseSpeed    float64 // km/h, true airspeed
	LandingSpeed   float64 // km/h
	CruiseAltitude float64 // m
}

// Derived holds computed values; nil fields could not be computed.
type Derived struct {
	WingLoading        *float64 `json:"wing_loading"`
	AirDensityCruise   *float64 `json:"air_density_cruise"`
	CruiseCL           *float64 `json:"cruise_cl"`
	LandingCL          *float64 `json:"landing_cl"`
	AspectRatio        *float64 `json:"aspect_ratio"`
	EquivalentAirspeed *float64 `json:"equivalent_airspeed"`
}

// Derive computes every derived value that the inputs allow.
func Derive(in Inputs) Derived {
	var d Derived

	if in.MTOW != 0 && in.WingArea > 0 {
		d.WingLoading = ptr(in.MTOW / in.WingArea)
	}
	if in.Wingspan != 0 && in.WingArea > 0 {
		d.AspectRatio = ptr(in.Wingspan * in.Wingspan / in.WingArea)
	}
	if in.MTOW != 0 && in.WingArea != 0 && in.LandingSpeed != 0 {
		w := landingWeightFraction * in.MTOW * catalogGravity
		d.LandingCL = ptr(LiftCoefficient(w, SeaLevelDensity, in.WingArea, in.LandingSpeed/3.6))
	}
	if in.CruiseAltitude == 0 {
		return d
	}

	rho := AirDensity(in.CruiseAltitude)
	d.AirDensityCruise = ptr(rho)
	if in.CruiseSpeed == 0 {
		return d
	}
	d.EquivalentAirspeed = ptr(EquivalentAirspeed(in.CruiseSpeed, rho))
	if in.MTOW != 0 && in.WingArea != 0 {
		w := cruiseWeightFraction * in.MTOW * catalogGravity
		d.CruiseCL = ptr(LiftCoefficient(w, rho, in.WingArea, in.CruiseSpeed/3.6))
	}
	return d
}

// LiftCoefficient returns CL = 2W / (rho·S·v²) for weight in N, density in
// kg/m³, area in m² and speed in m/s.
func LiftCoefficient(weightN, rho, area, speedMS float64) float64 {
	return 2 * weightN / (rho * area * speedMS * speedMS)
}

// EquivalentAirspeed converts a true airspeed at density rho to EAS, in the
// same unit as tas.
func EquivalentAirspeed(tas, rho float64) float64 {
	return tas * math.Sqrt(rho/SeaLevelDensity)
}

func ptr(v float64) *float64 { return &v }
