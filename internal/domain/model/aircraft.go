//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/target/aircraft-catalog/internal/aero"
)

const (
	maxNameLen     = 100
	maxCategoryLen = 50
	maxImageURLLen = 500
	minFlightYear  = 1800
	maxFlightYear  = 2100
)

// Aircraft is a stored catalog record. Units: mass kg, area m², length m,
// speeds km/h (cruise is true airspeed), thrust kN, altitudes m.
type Aircraft struct {
	ID              int64     `json:"id"                db:"id"`
	Name            string    `json:"name"              db:"name"`
	Manufacturer    *string   `json:"manufacturer"      db:"manufacturer"`
	Model           *string   `json:"model"             db:"model"`
	FirstFlightYear *int      `json:"first_flight_year" db:"first_flight_year"`
	MTOW            *float64  `json:"mtow"              db:"mtow"`
	WingArea        *float64  `json:"wing_area"         db:"wing_area"`
	Wingspan        *float64  `json:"wingspan"          db:"wingspan"`
	CruiseSpeed     *float64  `json:"cruise_speed"      db:"cruise_speed"`
	TakeoffSpeed    *float64  `json:"takeoff_speed"     db:"takeoff_speed"`
	LandingSpeed    *float64  `json:"landing_speed"     db:"landing_speed"`
	ServiceCeiling  *float64  `json:"service_ceiling"   db:"service_ceiling"`
	MaxThrust       *float64  `json:"max_thrust"        db:"max_thrust"`
	EngineType      *string   `json:"engine_type"       db:"engine_type"`
	EngineCount     *int      `json:"engine_count"      db:"engine_count"`
	CategoryType    *string   `json:"category_type"     db:"category_type"`
	CategoryEra     *string   `json:"category_era"      db:"category_era"`
	CategoryEngine  *string   `json:"category_engine"   db:"category_engine"`
	CategorySize    *string   `json:"category_size"     db:"category_size"`
	ImageURL        *string   `json:"image_url"         db:"image_url"`
	CruiseAltitude  *float64  `json:"cruise_altitude"   db:"cruise_altitude"`
	MaxSpeed        *float64  `json:"max_speed"         db:"max_speed"`
	Range           *float64  `json:"range"             db:"range_km"`
	MaxROC          *float64  `json:"max_roc"           db:"max_roc"`
	CreatedAt       time.Time `json:"created_at"        db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"        db:"updated_at"`
}

// DisplayName joins manufacturer and model, the label used by charts.
func (a *Aircraft) DisplayName() string {
	return strings.TrimSpace(deref(a.Manufacturer) + " " + deref(a.Model))
}

// Derive computes the aerodynamic values for the record.
func (a *Aircraft) Derive() aero.Derived {
	return aero.Derive(aero.Inputs{
		MTOW:           derefFloat(a.MTOW),
		WingArea:       derefFloat(a.WingArea),
		Wingspan:       derefFloat(a.Wingspan),
		CruiseSpeed:    derefFloat(a.CruiseSpeed),
		LandingSpeed:   derefFloat(a.LandingSpeed),
		CruiseAltitude: derefFloat(a.CruiseAltitude),
	})
}

// AircraftView is the API representation: stored columns plus derived values.
type AircraftView struct {
	Aircraft
	aero.Derived
}

// NewAircraftView derives the computed values for a.
func NewAircraftView(a Aircraft) AircraftView {
	return AircraftView{Aircraft: a, Derived: a.Derive()}
}

// AircraftListOptions controls paging and filtering for listing aircraft.
// Sort supports "id", "name", "first_flight_year", "mtow" and "created_at".
type AircraftListOptions struct {
	Limit        int
	Offset       int
	Q            *string // substring match on name (ILIKE)
	Sort         string
	Dir          string
	WithYearOnly bool // only records with a first flight year
}

// AircraftInput carries the writable fields for create and import.
type AircraftInput struct {
	Name            string   `json:"name"`
	Manufacturer    *string  `json:"manufacturer,omitempty"`
	Model           *string  `json:"model,omitempty"`
	FirstFlightYear *int     `json:"first_flight_year,omitempty"`
	MTOW            *float64 `json:"mtow,omitempty"`
	WingArea        *float64 `json:"wing_area,omitempty"`
	Wingspan        *float64 `json:"wingspan,omitempty"`
	CruiseSpeed     *float64 `json:"cruise_speed,omitempty"`
	TakeoffSpeed    *float64 `json:"takeoff_speed,omitempty"`
	LandingSpeed    *float64 `json:"landing_speed,omitempty"`
	ServiceCeiling  *float64 `json:"service_ceiling,omitempty"`
	MaxThrust       *float64 `json:"max_thrust,omitempty"`
	EngineType      *string  `json:"engine_type,omitempty"`
	EngineCount     *int     `json:"engine_count,omitempty"`
	CategoryType    *string  `json:"category_type,omitempty"`
	CategoryEra     *string  `json:"category_era,omitempty"`
	CategoryEngine  *string  `json:"category_engine,omitempty"`
	CategorySize    *string  `json:"category_size,omitempty"`
	ImageURL        *string  `json:"image_url,omitempty"`
	CruiseAltitude  *float64 `json:"cruise_altitude,omitempty"`
	MaxSpeed        *float64 `json:"max_speed,omitempty"`
	Range           *float64 `json:"range,omitempty"`
	MaxROC          *float64 `json:"max_roc,omitempty"`
}

// Validate trims text fields and checks lengths and numeric ranges.
func (in *AircraftInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(in.Name) > maxNameLen {
		return fmt.Errorf("name cannot exceed %d characters", maxNameLen)
	}
	p := in.patch()
	return p.validateFields()
}

// Patch converts the input into an update touching every non-nil field.
// When skipZero is set, zero numbers and blank strings are left out too so
// sparse upstream data does not erase stored values.
func (in *AircraftInput) Patch(skipZero bool) AircraftPatch {
	p := in.patch()
	name := in.Name
	p.Name = &name
	if skipZero {
		p.dropZeroes()
	}
	return p
}

func (in *AircraftInput) patch() AircraftPatch {
	return AircraftPatch{
		Manufacturer:    in.Manufacturer,
		Model:           in.Model,
		FirstFlightYear: in.FirstFlightYear,
		MTOW:            in.MTOW,
		WingArea:        in.WingArea,
		Wingspan:        in.Wingspan,
		CruiseSpeed:     in.CruiseSpeed,
		TakeoffSpeed:    in.TakeoffSpeed,
		LandingSpeed:    in.LandingSpeed,
		ServiceCeiling:  in.ServiceCeiling,
		MaxThrust:       in.MaxThrust,
		EngineType:      in.EngineType,
		EngineCount:     in.EngineCount,
		CategoryType:    in.CategoryType,
		CategoryEra:     in.CategoryEra,
		CategoryEngine:  in.CategoryEngine,
		CategorySize:    in.CategorySize,
		ImageURL:        in.ImageURL,
		CruiseAltitude:  in.CruiseAltitude,
		MaxSpeed:        in.MaxSpeed,
		Range:           in.Range,
		MaxROC:          in.MaxROC,
	}
}

// AircraftPatch is a partial update; nil fields are left unchanged.
type AircraftPatch struct {
	Name            *string  `json:"name,omitempty"`
	Manufacturer    *string  `json:"manufacturer,omitempty"`
	Model           *string  `json:"model,omitempty"`
	FirstFlightYear *int     `json:"first_flight_year,omitempty"`
	MTOW            *float64 `json:"mtow,omitempty"`
	WingArea        *float64 `json:"wing_area,omitempty"`
	Wingspan        *float64 `json:"wingspan,omitempty"`
	CruiseSpeed     *float64 `json:"cruise_speed,omitempty"`
	TakeoffSpeed    *float64 `json:"takeoff_speed,omitempty"`
	LandingSpeed    *float64 `json:"landing_speed,omitempty"`
	ServiceCeiling  *float64 `json:"service_ceiling,omitempty"`
	MaxThrust       *float64 `json:"max_thrust,omitempty"`
	EngineType      *string  `json:"engine_type,omitempty"`
	EngineCount     *int     `json:"engine_count,omitempty"`
	CategoryType    *string  `json:"category_type,omitempty"`
	CategoryEra     *string  `json:"category_era,omitempty"`
	CategoryEngine  *string  `json:"category_engine,omitempty"`
	CategorySize    *string  `json:"category_size,omitempty"`
	ImageURL        *string  `json:"image_url,omitempty"`
	CruiseAltitude  *float64 `json:"cruise_altitude,omitempty"`
	MaxSpeed        *float64 `json:"max_speed,omitempty"`
	Range           *float64 `json:"range,omitempty"`
	MaxROC          *float64 `json:"max_roc,omitempty"`
}

// Validate checks a partial update. At least one field must be set.
func (p *AircraftPatch) Validate() error {
	if !p.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(name) > maxNameLen {
			return fmt.Errorf("name cannot exceed %d characters", maxNameLen)
		}
		p.Name = &name
	}
	return p.validateFields()
}

// HasUpdates reports whether any field is set.
func (p *AircraftPatch) HasUpdates() bool {
	return len(p.Columns()) > 0
}

// Column is a column name and the value to store in it.
type Column struct {
	Name  string
	Value any
}

// Columns lists the set fields in table column order.
func (p *AircraftPatch) Columns() []Column {
	var cols []Column
	add := func(name string, set bool, v any) {
		if set {
			cols = append(cols, Column{Name: name, Value: v})
		}
	}
	add("name", p.Name != nil, p.Name)
	add("manufacturer", p.Manufacturer != nil, p.Manufacturer)
	add("model", p.Model != nil, p.Model)
	add("first_flight_year", p.FirstFlightYear != nil, p.FirstFlightYear)
	add("mtow", p.MTOW != nil, p.MTOW)
	add("wing_area", p.WingArea != nil, p.WingArea)
	add("wingspan", p.Wingspan != nil, p.Wingspan)
	add("cruise_speed", p.CruiseSpeed != nil, p.CruiseSpeed)
	add("takeoff_speed", p.TakeoffSpeed != nil, p.TakeoffSpeed)
	add("landing_speed", p.LandingSpeed != nil, p.LandingSpeed)
	add("service_ceiling", p.ServiceCeiling != nil, p.ServiceCeiling)
	add("max_thrust", p.MaxThrust != nil, p.MaxThrust)
	add("engine_type", p.EngineType != nil, p.EngineType)
	add("engine_count", p.EngineCount != nil, p.EngineCount)
	add("category_type", p.CategoryType != nil, p.CategoryType)
	add("category_era", p.CategoryEra != nil, p.CategoryEra)
	add("category_engine", p.CategoryEngine != nil, p.CategoryEngine)
	add("category_size", p.CategorySize != nil, p.CategorySize)
	add("image_url", p.ImageURL != nil, p.ImageURL)
	add("cruise_altitude", p.CruiseAltitude != nil, p.CruiseAltitude)
	add("max_speed", p.MaxSpeed != nil, p.MaxSpeed)
	add("range_km", p.Range != nil, p.Range)
	add("max_roc", p.MaxROC != nil, p.MaxROC)
	return cols
}

func (p *AircraftPatch) validateFields() error {
	texts := []struct {
		name  string
		value *string
		max   int
	}{
		{"manufacturer", p.Manufacturer, maxNameLen},
		{"model", p.Model, maxNameLen},
		{"engine_type", p.EngineType, maxCategoryLen},
		{"category_type", p.CategoryType, maxCategoryLen},
		{"category_era", p.CategoryEra, maxCategoryLen},
		{"category_engine", p.CategoryEngine, maxCategoryLen},
		{"category_size", p.CategorySize, maxCategoryLen},
		{"image_url", p.ImageURL, maxImageURLLen},
	}
	for _, f := range texts {
		if f.value != nil && utf8.RuneCountInString(*f.value) > f.max {
			return fmt.Errorf("%s cannot exceed %d characters", f.name, f.max)
		}
	}

	numbers := []struct {
		name  string
		value *float64
	}{
		{"mtow", p.MTOW},
		{"wing_area", p.WingArea},
		{"wingspan", p.Wingspan},
		{"cruise_speed", p.CruiseSpeed},
		{"takeoff_speed", p.TakeoffSpeed},
		{"landing_speed", p.LandingSpeed},
		{"service_ceiling", p.ServiceCeiling},
		{"max_thrust", p.MaxThrust},
		{"cruise_altitude", p.CruiseAltitude},
		{"max_speed", p.MaxSpeed},
		{"range", p.Range},
		{"max_roc", p.MaxROC},
	}
	for _, f := range numbers {
		if f.value != nil && *f.value < 0 {
			return fmt.Errorf("%s must not be negative", f.name)
		}
	}

	if p.EngineCount != nil && *p.EngineCount < 0 {
		return errors.New("engine_count must not be negative")
	}
	if y := p.FirstFlightYear; y != nil && (*y < minFlightYear || *y > maxFlightYear) {
		return fmt.Errorf("first_flight_year must be between %d and %d", minFlightYear, maxFlightYear)
	}
	return nil
}

func (p *AircraftPatch) dropZeroes() {
	for _, s := range []**string{&p.Manufacturer, &p.Model, &p.EngineType, &p.CategoryType,
		&p.CategoryEra, &p.CategoryEngine, &p.CategorySize, &p.ImageURL} {
		if *s != nil && strings.TrimSpace(**s) == "" {
			*s = nil
		}
	}
	for _, f := range []**float64{&p.MTOW, &p.WingArea, &p.Wingspan, &p.CruiseSpeed, &p.TakeoffSpeed,
		&p.LandingSpeed, &p.ServiceCeiling, &p.MaxThrust, &p.CruiseAltitude, &p.MaxSpeed, &p.Range, &p.MaxROC} {
		if *f != nil && **f == 0 {
			*f = nil
		}
	}
	for _, i := range []**int{&p.FirstFlightYear, &p.EngineCount} {
		if *i != nil && **i == 0 {
			*i = nil
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
