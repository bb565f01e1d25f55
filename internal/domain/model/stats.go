package model

// ScatterPoint is one record plotted against two parameters.
type ScatterPoint struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// TimelinePoint is one record's parameter value at its first flight year.
type TimelinePoint struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// ComparisonRow holds the comparison parameters for a single record.
type ComparisonRow struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	MTOW           *float64 `json:"mtow"`
	WingArea       *float64 `json:"wing_area"`
	Wingspan       *float64 `json:"wingspan"`
	CruiseSpeed    *float64 `json:"cruise_speed"`
	TakeoffSpeed   *float64 `json:"takeoff_speed"`
	LandingSpeed   *float64 `json:"landing_speed"`
	ServiceCeiling *float64 `json:"service_ceiling"`
	MaxThrust      *float64 `json:"max_thrust"`
	WingLoading    *float64 `json:"wing_loading"`
	CruiseCL       *float64 `json:"cruise_cl"`
	LandingCL      *float64 `json:"landing_cl"`
}

// NewComparisonRow copies the comparison parameters out of v.
func NewComparisonRow(v *AircraftView) ComparisonRow {
	return ComparisonRow{
		ID:             v.ID,
		Name:           v.DisplayName(),
		MTOW:           v.MTOW,
		WingArea:       v.WingArea,
		Wingspan:       v.Wingspan,
		CruiseSpeed:    v.CruiseSpeed,
		TakeoffSpeed:   v.TakeoffSpeed,
		LandingSpeed:   v.LandingSpeed,
		ServiceCeiling: v.ServiceCeiling,
		MaxThrust:      v.MaxThrust,
		WingLoading:    v.WingLoading,
		CruiseCL:       v.CruiseCL,
		LandingCL:      v.LandingCL,
	}
}
