package testutil

import "github.com/target/aircraft-catalog/internal/domain/model"

// AircraftBuilder provides a fluent interface for building AircraftInput
// fixtures.
type AircraftBuilder struct {
	in model.AircraftInput
}

// NewAircraft starts a builder for a named record.
func NewAircraft(name string) *AircraftBuilder {
	return &AircraftBuilder{in: model.AircraftInput{Name: name}}
}

// WithMaker sets manufacturer and model.
func (b *AircraftBuilder) WithMaker(manufacturer, modelName string) *AircraftBuilder {
	b.in.Manufacturer = StringPtr(manufacturer)
	b.in.Model = StringPtr(modelName)
	return b
}

// WithYear sets the first flight year.
func (b *AircraftBuilder) WithYear(year int) *AircraftBuilder {
	b.in.FirstFlightYear = IntPtr(year)
	return b
}

// WithWing sets MTOW in kg and wing area in m².
func (b *AircraftBuilder) WithWing(mtow, wingArea float64) *AircraftBuilder {
	b.in.MTOW = FloatPtr(mtow)
	b.in.WingArea = FloatPtr(wingArea)
	return b
}

// WithCruise sets cruise speed in km/h and cruise altitude in m.
func (b *AircraftBuilder) WithCruise(speed, altitude float64) *AircraftBuilder {
	b.in.CruiseSpeed = FloatPtr(speed)
	b.in.CruiseAltitude = FloatPtr(altitude)
	return b
}

// WithCategory sets the category type.
func (b *AircraftBuilder) WithCategory(category string) *AircraftBuilder {
	b.in.CategoryType = StringPtr(category)
	return b
}

// Build returns a pointer to a copy of the input.
func (b *AircraftBuilder) Build() *model.AircraftInput {
	in := b.in
	return &in
}

// A320 is a typical narrowbody fixture.
func A320() *model.AircraftInput {
	return NewAircraft("Airbus A320").
		WithMaker("Airbus", "A320").
		WithYear(1987).
		WithWing(78000, 122.6).
		WithCruise(840, 11900).
		Build()
}

// WrightFlyer is a pioneer-era fixture.
func WrightFlyer() *model.AircraftInput {
	return NewAircraft("Wright Flyer").
		WithMaker("Wright Brothers", "Flyer").
		WithYear(1903).
		WithWing(338, 47.4).
		WithCruise(48, 3).
		Build()
}
