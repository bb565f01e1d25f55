package model

// ParameterCategory groups chartable parameters in the UI.
type ParameterCategory string

const (
	ParameterPhysical    ParameterCategory = "physical"
	ParameterPerformance ParameterCategory = "performance"
	ParameterEngine      ParameterCategory = "engine"
	ParameterGeneral     ParameterCategory = "general"
	ParameterCalculated  ParameterCategory = "calculated"
)

// Parameter describes a value that can be charted or filtered on.
type Parameter struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Category ParameterCategory `json:"category"`
}

// Parameters returns the chartable parameters in display order.
func Parameters() []Parameter {
	return []Parameter{
		{ID: "mtow", Name: "MTOW (kg)", Category: ParameterPhysical},
		{ID: "wing_area", Name: "Área da Asa (m²)", Category: ParameterPhysical},
		{ID: "wingspan", Name: "Envergadura (m)", Category: ParameterPhysical},
		{ID: "cruise_speed", Name: "Velocidade de Cruzeiro (km/h)", Category: ParameterPerformance},
		{ID: "takeoff_speed", Name: "Velocidade de Decolagem (km/h)", Category: ParameterPerformance},
		{ID: "landing_speed", Name: "Velocidade de Pouso (km/h)", Category: ParameterPerformance},
		{ID: "service_ceiling", Name: "Teto de Serviço (m)", Category: ParameterPerformance},
		{ID: "max_thrust", Name: "Tração Máxima (kN)", Category: ParameterEngine},
		{ID: "engine_count", Name: "Número de Motores", Category: ParameterEngine},
		{ID: "first_flight_year", Name: "Ano do Primeiro Voo", Category: ParameterGeneral},
		{ID: "wing_loading", Name: "Carga Alar (kg/m²)", Category: ParameterCalculated},
		{ID: "cruise_cl", Name: "CL de Cruzeiro", Category: ParameterCalculated},
		{ID: "landing_cl", Name: "CL de Pouso", Category: ParameterCalculated},
	}
}

type valueGetter func(v *AircraftView) *float64

var numericFields = map[string]valueGetter{
	"mtow":                func(v *AircraftView) *float64 { return v.MTOW },
	"wing_area":           func(v *AircraftView) *float64 { return v.WingArea },
	"wingspan":            func(v *AircraftView) *float64 { return v.Wingspan },
	"cruise_speed":        func(v *AircraftView) *float64 { return v.CruiseSpeed },
	"takeoff_speed":       func(v *AircraftView) *float64 { return v.TakeoffSpeed },
	"landing_speed":       func(v *AircraftView) *float64 { return v.LandingSpeed },
	"service_ceiling":     func(v *AircraftView) *float64 { return v.ServiceCeiling },
	"max_thrust":          func(v *AircraftView) *float64 { return v.MaxThrust },
	"engine_count":        func(v *AircraftView) *float64 { return intToFloat(v.EngineCount) },
	"first_flight_year":   func(v *AircraftView) *float64 { return intToFloat(v.FirstFlightYear) },
	"cruise_altitude":     func(v *AircraftView) *float64 { return v.CruiseAltitude },
	"max_speed":           func(v *AircraftView) *float64 { return v.MaxSpeed },
	"range":               func(v *AircraftView) *float64 { return v.Range },
	"max_roc":             func(v *AircraftView) *float64 { return v.MaxROC },
	"wing_loading":        func(v *AircraftView) *float64 { return v.WingLoading },
	"cruise_cl":           func(v *AircraftView) *float64 { return v.CruiseCL },
	"landing_cl":          func(v *AircraftView) *float64 { return v.LandingCL },
	"aspect_ratio":        func(v *AircraftView) *float64 { return v.AspectRatio },
	"equivalent_airspeed": func(v *AircraftView) *float64 { return v.EquivalentAirspeed },
	"air_density_cruise":  func(v *AircraftView) *float64 { return v.AirDensityCruise },
}

// IsNumericParameter reports whether param names a numeric stored or derived
// value.
func IsNumericParameter(param string) bool {
	_, ok := numericFields[param]
	return ok
}

// Value returns the numeric value for param, or nil when the parameter is
// unknown or the record has no value for it.
func (v *AircraftView) Value(param string) *float64 {
	get, ok := numericFields[param]
	if !ok {
		return nil
	}
	return get(v)
}

func intToFloat(i *int) *float64 {
	if i == nil {
		return nil
	}
	f := float64(*i)
	return &f
}
