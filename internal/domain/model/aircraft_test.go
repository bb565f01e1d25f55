package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestAircraftInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      AircraftInput
		wantErr string
	}{
		{name: "ok", in: AircraftInput{Name: " Boeing 747 ", MTOW: floatPtr(412775)}},
		{name: "blank name", in: AircraftInput{Name: "   "}, wantErr: "name is required and cannot be empty"},
		{name: "long name", in: AircraftInput{Name: strings.Repeat("a", 101)}, wantErr: "name cannot exceed 100 characters"},
		{
			name:    "long category",
			in:      AircraftInput{Name: "x", CategoryEra: strPtr(strings.Repeat("b", 51))},
			wantErr: "category_era cannot exceed 50 characters",
		},
		{name: "negative mtow", in: AircraftInput{Name: "x", MTOW: floatPtr(-1)}, wantErr: "mtow must not be negative"},
		{name: "bad year", in: AircraftInput{Name: "x", FirstFlightYear: intPtr(1500)}, wantErr: "first_flight_year must be between 1800 and 2100"},
		{name: "negative engines", in: AircraftInput{Name: "x", EngineCount: intPtr(-2)}, wantErr: "engine_count must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestAircraftInputValidateTrimsName(t *testing.T) {
	in := AircraftInput{Name: "  Concorde "}
	require.NoError(t, in.Validate())
	assert.Equal(t, "Concorde", in.Name)
}

func TestAircraftPatchValidate(t *testing.T) {
	var empty AircraftPatch
	require.EqualError(t, empty.Validate(), "at least one field must be updated")

	blank := AircraftPatch{Name: strPtr(" ")}
	require.EqualError(t, blank.Validate(), "name cannot be empty")

	ok := AircraftPatch{Name: strPtr(" A380 "), Range: floatPtr(15200)}
	require.NoError(t, ok.Validate())
	assert.Equal(t, "A380", *ok.Name)
}

func TestAircraftPatchColumns(t *testing.T) {
	p := AircraftPatch{Model: strPtr("747"), Range: floatPtr(13450), EngineCount: intPtr(4)}

	cols := p.Columns()

	require.Len(t, cols, 3)
	assert.Equal(t, "model", cols[0].Name)
	assert.Equal(t, "engine_count", cols[1].Name)
	assert.Equal(t, "range_km", cols[2].Name)
}

func TestAircraftInputPatchSkipZero(t *testing.T) {
	in := AircraftInput{
		Name:         "Cessna 172",
		Manufacturer: strPtr(" "),
		MTOW:         floatPtr(0),
		Wingspan:     floatPtr(11),
		EngineCount:  intPtr(0),
	}

	all := in.Patch(false)
	assert.NotNil(t, all.MTOW)
	assert.NotNil(t, all.Manufacturer)

	sparse := in.Patch(true)
	assert.Equal(t, "Cessna 172", *sparse.Name)
	assert.Nil(t, sparse.MTOW)
	assert.Nil(t, sparse.Manufacturer)
	assert.Nil(t, sparse.EngineCount)
	require.NotNil(t, sparse.Wingspan)
	assert.InDelta(t, 11.0, *sparse.Wingspan, 0)
}

func TestAircraftViewJSONFlattensDerivedValues(t *testing.T) {
	a := Aircraft{
		ID:           3,
		Name:         "Airbus A320",
		Manufacturer: strPtr("Airbus"),
		Model:        strPtr("A320"),
		MTOW:         floatPtr(78000),
		WingArea:     floatPtr(122.6),
	}

	body, err := json.Marshal(NewAircraftView(a))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.InDelta(t, 636.215, got["wing_loading"], 1e-3)
	assert.Contains(t, got, "cruise_cl")
	assert.Nil(t, got["cruise_cl"])
	assert.Equal(t, "Airbus A320", got["name"])
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Airbus", (&Aircraft{Manufacturer: strPtr("Airbus")}).DisplayName())
	assert.Equal(t, "", (&Aircraft{Name: "x"}).DisplayName())
	assert.Equal(t, "Boeing 747", (&Aircraft{Manufacturer: strPtr("Boeing"), Model: strPtr("747")}).DisplayName())
}

func TestViewValue(t *testing.T) {
	v := NewAircraftView(Aircraft{MTOW: floatPtr(1000), WingArea: floatPtr(10), FirstFlightYear: intPtr(1969)})

	require.NotNil(t, v.Value("wing_loading"))
	assert.InDelta(t, 100.0, *v.Value("wing_loading"), 1e-9)
	require.NotNil(t, v.Value("first_flight_year"))
	assert.InDelta(t, 1969.0, *v.Value("first_flight_year"), 0)
	assert.Nil(t, v.Value("cruise_speed"))
	assert.Nil(t, v.Value("name"))
	assert.False(t, IsNumericParameter("name"))
	assert.True(t, IsNumericParameter("equivalent_airspeed"))
}
