package aero

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
)

// pipelineGasConstant is the rounded gas constant used by the SI export.
const pipelineGasConstant = 287.05

// fuelGravity converts fuel mass to weight in the SI export.
const fuelGravity = 9.81

// Record is a single SI-unit record. Keys the pipeline does not know about are
// carried through untouched.
type Record map[string]any

// Collections processed inside an SI document, in ID assignment order.
var siCollections = []string{"aircraft", "birds"}

var requiredSIFields = []string{
	"mtow_N",
	"wing_area_m2",
	"wingspan_m",
	"cruise_speed_ms",
	"cruise_altitude_m",
}

// Fields used as divisors in the derived values.
var positiveSIFields = []string{"mtow_N", "wing_area_m2", "cruise_speed_ms"}

var optionalSIFields = []string{
	"empty_weight_N",
	"max_payload_N",
	"length_m",
	"height_m",
	"max_power_kW",
	"fuel_capacity_kg",
	"notes",
}

// ErrInvalidRecord marks a record the pipeline had to drop.
var ErrInvalidRecord = errors.New("invalid SI record")

// Report summarizes one ProcessDocument call.
type Report struct {
	Processed int
	Dropped   int
	NextID    int
}

// Pipeline enriches SI-unit aircraft and bird documents with derived values.
type Pipeline struct {
	Logger *slog.Logger
}

func (p *Pipeline) logger() *slog.Logger {
	if p == nil || p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

// ProcessDocument assigns sequential IDs starting at startID to every record
// in the aircraft and birds collections, then replaces each collection with the
// records that could be processed. Other top-level keys are left alone.
func (p *Pipeline) ProcessDocument(doc map[string]any, startID int) Report {
	rep := Report{NextID: startID}
	for _, key := range siCollections {
		raw, ok := doc[key].([]any)
		if !ok {
			continue
		}
		out := make([]any, 0, len(raw))
		for _, item := range raw {
			rec, isObj := item.(map[string]any)
			if !isObj {
				rep.Dropped++
				continue
			}
			rec["id"] = rep.NextID
			rep.NextID++

			processed, err := ProcessRecord(Record(rec))
			if err != nil {
				p.logger().Warn("dropping SI record", "collection", key, "name", rec["name"], "error", err)
				rep.Dropped++
				continue
			}
			out = append(out, map[string]any(processed))
			rep.Processed++
		}
		doc[key] = out
	}
	return rep
}

// ProcessFile reads an SI document from in, processes it and writes the
// indented result to out. It returns the next free ID.
func (p *Pipeline) ProcessFile(in, out string, startID int) (Report, error) {
	body, err := os.ReadFile(in)
	if err != nil {
		return Report{NextID: startID}, fmt.Errorf("read %s: %w", in, err)
	}
	var doc map[string]any
	if err = json.Unmarshal(body, &doc); err != nil {
		return Report{NextID: startID}, fmt.Errorf("decode %s: %w", in, err)
	}

	rep := p.ProcessDocument(doc, startID)

	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return rep, fmt.Errorf("encode %s: %w", out, err)
	}
	if err = os.WriteFile(out, encoded, 0o600); err != nil {
		return rep, fmt.Errorf("write %s: %w", out, err)
	}
	p.logger().Info("SI document processed", "input", in, "output", out,
		"processed", rep.Processed, "dropped", rep.Dropped)
	return rep, nil
}

// ProcessRecord returns a copy of rec with optional fields defaulted to null
// and derived values added. Records missing a required field, carrying a
// non-numeric value, a non-positive mass, wing area or cruise speed, or a
// non-finite derived value are rejected.
func ProcessRecord(rec Record) (Record, error) {
	out := make(Record, len(rec)+16)
	for k, v := range rec {
		out[k] = v
	}
	for _, f := range optionalSIFields {
		if _, ok := out[f]; !ok {
			out[f] = nil
		}
	}

	vals := make(map[string]float64, len(requiredSIFields))
	for _, f := range requiredSIFields {
		v, present, err := numberField(out, f)
		if err != nil {
			return nil, err
		}
		if !present {
			return nil, fmt.Errorf("%w: missing required field %s", ErrInvalidRecord, f)
		}
		vals[f] = v
		out[f] = v
	}

	for _, f := range positiveSIFields {
		if vals[f] <= 0 {
			return nil, fmt.Errorf("%w: %s must be positive", ErrInvalidRecord, f)
		}
	}
	mtow, area, speed := vals["mtow_N"], vals["wing_area_m2"], vals["cruise_speed_ms"]

	rhoCruise := isaDensity(vals["cruise_altitude_m"], pipelineGasConstant)
	rhoSL := isaDensity(0, pipelineGasConstant)

	out["air_density_kgm3"] = rhoCruise
	out["wing_loading_Nm2"] = mtow / area
	out["aspect_ratio"] = vals["wingspan_m"] * vals["wingspan_m"] / area
	out["VE_cruise_ms"] = speed * math.Sqrt(rhoCruise/rhoSL)
	out["CL_cruise"] = mtow / (0.5 * rhoCruise * speed * speed * area)

	if err := withNumber(out, "takeoff_speed_ms", func(v float64) {
		if v != 0 {
			out["CL_takeoff"] = mtow / (0.5 * rhoSL * v * v * area)
		}
	}); err != nil {
		return nil, err
	}
	if err := withNumber(out, "landing_speed_ms", func(v float64) {
		if v != 0 {
			out["CL_landing"] = mtow / (0.5 * rhoSL * v * v * area)
		}
	}); err != nil {
		return nil, err
	}

	empty, hasEmpty, err := numberField(out, "empty_weight_N")
	if err != nil {
		return nil, err
	}
	payload, hasPayload, err := numberField(out, "max_payload_N")
	if err != nil {
		return nil, err
	}
	if hasEmpty {
		out["useful_load_N"] = mtow - empty
		if hasPayload {
			out["max_fuel_load_N"] = mtow - empty - payload
		}
	}
	if err = withNumber(out, "fuel_capacity_kg", func(v float64) {
		out["max_fuel_weight_N"] = v * fuelGravity
	}); err != nil {
		return nil, err
	}
	if err = withNumber(out, "max_thrust_kN", func(v float64) {
		out["thrust_to_weight_ratio"] = v * 1000 / mtow
	}); err != nil {
		return nil, err
	}
	if err = checkFinite(out); err != nil {
		return nil, err
	}
	return out, nil
}

// checkFinite rejects records holding NaN or infinite numbers, which JSON
// cannot encode.
func checkFinite(rec Record) error {
	for k, v := range rec {
		f, ok := v.(float64)
		if ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidRecord, k)
		}
	}
	return nil
}

func withNumber(rec Record, key string, fn func(float64)) error {
	v, ok, err := numberField(rec, key)
	if err != nil {
		return err
	}
	if ok {
		fn(v)
	}
	return nil
}

// numberField reads key as a float. Absent and null values report ok=false;
// numeric strings are accepted.
func numberField(rec Record, key string) (value float64, ok bool, err error) {
	raw, present := rec[key]
	if !present || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, true, nil
	case int:
		return float64(v), true, nil
	case json.Number:
		f, convErr := v.Float64()
		if convErr != nil {
			return 0, false, fmt.Errorf("%w: %s is not numeric", ErrInvalidRecord, key)
		}
		return f, true, nil
	case string:
		f, convErr := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if convErr != nil {
			return 0, false, fmt.Errorf("%w: %s is not numeric", ErrInvalidRecord, key)
		}
		return f, true, nil
	default:
		return 0, false, fmt.Errorf("%w: %s is not numeric", ErrInvalidRecord, key)
	}
}
