package aero

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSIRecord() Record {
	return Record{
		"name":              "Test",
		"mtow_N":            735000.0,
		"wing_area_m2":      122.6,
		"wingspan_m":        35.8,
		"cruise_speed_ms":   230.0,
		"cruise_altitude_m": 11000.0,
		"takeoff_speed_ms":  75.0,
		"landing_speed_ms":  0.0,
		"empty_weight_N":    400000.0,
		"max_payload_N":     200000.0,
		"fuel_capacity_kg":  19000.0,
		"max_thrust_kN":     240.0,
		"livery":            "blue",
	}
}

func TestProcessRecord(t *testing.T) {
	t.Parallel()

	got, err := ProcessRecord(sampleSIRecord())
	require.NoError(t, err)

	want := Record{
		"name":                   "Test",
		"mtow_N":                 735000.0,
		"wing_area_m2":           122.6,
		"wingspan_m":             35.8,
		"cruise_speed_ms":        230.0,
		"cruise_altitude_m":      11000.0,
		"takeoff_speed_ms":       75.0,
		"landing_speed_ms":       0.0,
		"empty_weight_N":         400000.0,
		"max_payload_N":          200000.0,
		"fuel_capacity_kg":       19000.0,
		"max_thrust_kN":          240.0,
		"livery":                 "blue",
		"length_m":               nil,
		"height_m":               nil,
		"max_power_kW":           nil,
		"notes":                  nil,
		"air_density_kgm3":       0.363916,
		"wing_loading_Nm2":       5995.106036,
		"aspect_ratio":           10.453834,
		"VE_cruise_ms":           125.359743,
		"CL_cruise":              0.622831,
		"CL_takeoff":             1.740059,
		"useful_load_N":          335000.0,
		"max_fuel_load_N":        135000.0,
		"max_fuel_weight_N":      186390.0,
		"thrust_to_weight_ratio": 0.326531,
	}

	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-5)); diff != "" {
		t.Errorf("ProcessRecord() mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessRecordRejects(t *testing.T) {
	t.Parallel()

	tests := map[string]func(Record){
		"missing required":   func(r Record) { delete(r, "cruise_altitude_m") },
		"null required":      func(r Record) { r["wingspan_m"] = nil },
		"non numeric":        func(r Record) { r["mtow_N"] = "heavy" },
		"zero wing area":     func(r Record) { r["wing_area_m2"] = 0.0 },
		"zero cruise speed":  func(r Record) { r["cruise_speed_ms"] = 0.0 },
		"zero mtow":          func(r Record) { r["mtow_N"] = 0.0 },
		"negative mtow":      func(r Record) { r["mtow_N"] = -1.0 },
		"infinite value":     func(r Record) { r["max_thrust_kN"] = "Inf" },
		"bad optional value": func(r Record) { r["fuel_capacity_kg"] = []any{1} },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rec := sampleSIRecord()
			mutate(rec)
			_, err := ProcessRecord(rec)
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestProcessRecordAcceptsNumericStrings(t *testing.T) {
	t.Parallel()

	rec := sampleSIRecord()
	rec["mtow_N"] = " 735000 "
	got, err := ProcessRecord(rec)
	require.NoError(t, err)
	assert.InDelta(t, 735000.0, got["mtow_N"], 1e-9)
}

func TestProcessDocumentAssignsIDsAcrossCollections(t *testing.T) {
	t.Parallel()

	bad := map[string]any(sampleSIRecord())
	delete(bad, "mtow_N")
	doc := map[string]any{
		"aircraft": []any{map[string]any(sampleSIRecord()), bad},
		"birds":    []any{map[string]any(sampleSIRecord())},
		"version":  "2",
	}

	rep := (&Pipeline{}).ProcessDocument(doc, 5)

	assert.Equal(t, Report{Processed: 2, Dropped: 1, NextID: 8}, rep)
	aircraft := doc["aircraft"].([]any)
	require.Len(t, aircraft, 1)
	assert.Equal(t, 5, aircraft[0].(map[string]any)["id"])
	birds := doc["birds"].([]any)
	require.Len(t, birds, 1)
	assert.Equal(t, 7, birds[0].(map[string]any)["id"])
	assert.Equal(t, "2", doc["version"])
}

func TestProcessFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "birds.json")
	out := filepath.Join(dir, "birds_processed.json")
	body, err := json.Marshal(map[string]any{"birds": []any{sampleSIRecord()}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(in, body, 0o600))

	rep, err := (&Pipeline{}).ProcessFile(in, out, 10)
	require.NoError(t, err)
	assert.Equal(t, 11, rep.NextID)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	var doc struct {
		Birds []map[string]any `json:"birds"`
	}
	require.NoError(t, json.Unmarshal(written, &doc))
	require.Len(t, doc.Birds, 1)
	assert.InDelta(t, 0.6228, doc.Birds[0]["CL_cruise"], 1e-4)
	assert.EqualValues(t, 10, doc.Birds[0]["id"])
}

func TestProcessFileDropsDegenerateRecords(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "aircraft.json")
	out := filepath.Join(dir, "aircraft_processed.json")
	stalled := sampleSIRecord()
	stalled["cruise_speed_ms"] = 0.0
	weightless := sampleSIRecord()
	weightless["mtow_N"] = 0.0
	body, err := json.Marshal(map[string]any{"aircraft": []any{sampleSIRecord(), stalled, weightless}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(in, body, 0o600))

	rep, err := (&Pipeline{}).ProcessFile(in, out, 1)
	require.NoError(t, err)
	assert.Equal(t, Report{Processed: 1, Dropped: 2, NextID: 4}, rep)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	var doc struct {
		Aircraft []map[string]any `json:"aircraft"`
	}
	require.NoError(t, json.Unmarshal(written, &doc))
	require.Len(t, doc.Aircraft, 1)
	assert.EqualValues(t, 1, doc.Aircraft[0]["id"])
}
