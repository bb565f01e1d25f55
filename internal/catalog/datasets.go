package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"

	"github.com/target/aircraft-catalog/internal/domain/model"
)

var (
	//go:embed datasets/sample.json
	sampleJSON []byte
	//go:embed datasets/predefined.json
	predefinedJSON []byte
	//go:embed datasets/birds.json
	birdsJSON []byte
)

const (
	birdGravity      = 9.8
	birdManufacturer = "Natureza"
	birdNamePrefix   = "Ave - "
	// defaultBirdImage is used for birds without their own photo.
	defaultBirdImage = "https://upload.wikimedia.org/wikipedia/commons/thumb/4/4a/" +
		"Wandering_Albatross_in_flight_-_SE_Tasmania.jpg/1280px-Wandering_Albatross_in_flight_-_SE_Tasmania.jpg"
)

// Bird is a seabird measured for comparison with aircraft.
type Bird struct {
	Name          string  `json:"name"`
	WeightNewtons float64 `json:"weight_newtons"`
	WingArea      float64 `json:"wing_area"`
	SpeedMPS      float64 `json:"speed_mps"`
	ImageURL      string  `json:"image_url"`
}

// SampleAircraft returns the historical sample loaded by the sample import.
// Each call returns fresh values.
func SampleAircraft() ([]model.AircraftInput, error) {
	return decodeAircraft("sample", sampleJSON)
}

// PredefinedAircraft returns the reference aircraft used by the predefined
// online source, historical types first.
func PredefinedAircraft() ([]model.AircraftInput, error) {
	return decodeAircraft("predefined", predefinedJSON)
}

// Birds returns the embedded seabird measurements.
func Birds() ([]Bird, error) {
	var birds []Bird
	if err := json.Unmarshal(birdsJSON, &birds); err != nil {
		return nil, fmt.Errorf("decode birds dataset: %w", err)
	}
	return birds, nil
}

// BirdRecords converts the seabirds into catalog records: weight becomes
// mass in kg (3 decimals) and speed becomes km/h (1 decimal).
func BirdRecords() ([]model.AircraftInput, error) {
	birds, err := Birds()
	if err != nil {
		return nil, err
	}
	out := make([]model.AircraftInput, 0, len(birds))
	for _, b := range birds {
		out = append(out, b.AircraftInput())
	}
	return out, nil
}

// AircraftInput converts b into a catalog record.
func (b Bird) AircraftInput() model.AircraftInput {
	image := b.ImageURL
	if image == "" {
		image = defaultBirdImage
	}
	mtow := roundTo(b.WeightNewtons/birdGravity, 3)
	speed := roundTo(b.SpeedMPS*3.6, 1)
	area := b.WingArea
	return model.AircraftInput{
		Name:           birdNamePrefix + b.Name,
		Manufacturer:   strPtr(birdManufacturer),
		Model:          strPtr(b.Name),
		MTOW:           &mtow,
		WingArea:       &area,
		CruiseSpeed:    &speed,
		CategoryType:   strPtr(TypeBird),
		CategoryEra:    strPtr("biologica"),
		CategoryEngine: strPtr("muscular"),
		CategorySize:   strPtr("muito_leve"),
		ImageURL:       &image,
	}
}

func decodeAircraft(name string, body []byte) ([]model.AircraftInput, error) {
	var out []model.AircraftInput
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s dataset: %w", name, err)
	}
	return out, nil
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

func strPtr(s string) *string { return &s }
