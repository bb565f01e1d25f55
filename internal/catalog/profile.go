// Package catalog holds the classification rules, cruise altitude estimator,
// and embedded reference datasets used to populate the aircraft catalog.
package catalog

import (
	"strings"

	"github.com/target/aircraft-catalog/internal/domain/model"
)

// Profile is the subset of a record the classification rules look at. Zero
// values mean unknown.
type Profile struct {
	Name            string
	EngineType      string
	CategoryType    string
	FirstFlightYear int
	MTOW            float64
	CruiseSpeed     float64
	ServiceCeiling  float64
	CruiseAltitude  float64
}

// ProfileOfInput builds a Profile from an import or create payload.
func ProfileOfInput(in *model.AircraftInput) Profile {
	return Profile{
		Name:            in.Name,
		EngineType:      str(in.EngineType),
		CategoryType:    str(in.CategoryType),
		FirstFlightYear: num(in.FirstFlightYear),
		MTOW:            num(in.MTOW),
		CruiseSpeed:     num(in.CruiseSpeed),
		ServiceCeiling:  num(in.ServiceCeiling),
		CruiseAltitude:  num(in.CruiseAltitude),
	}
}

// ProfileOfAircraft builds a Profile from a stored record.
func ProfileOfAircraft(a *model.Aircraft) Profile {
	return Profile{
		Name:            a.Name,
		EngineType:      str(a.EngineType),
		CategoryType:    str(a.CategoryType),
		FirstFlightYear: num(a.FirstFlightYear),
		MTOW:            num(a.MTOW),
		CruiseSpeed:     num(a.CruiseSpeed),
		ServiceCeiling:  num(a.ServiceCeiling),
		CruiseAltitude:  num(a.CruiseAltitude),
	}
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func num[T int | float64](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

func containsAny(s string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
