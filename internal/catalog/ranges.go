package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// RangeUpdate sets the range in km of the record with the given name.
type RangeUpdate struct {
	Name    string
	RangeKM float64
}

// RangeParseError reports a malformed line in a range file.
type RangeParseError struct {
	Line int
	Text string
	Err  error
}

func (e *RangeParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *RangeParseError) Unwrap() error { return e.Err }

// ParseRangeUpdates reads "name|range_km" lines. Blank lines and lines
// starting with # are skipped. Parsing continues past malformed lines, which
// are returned as errors alongside the valid updates.
func ParseRangeUpdates(r io.Reader) ([]RangeUpdate, []error, error) {
	var (
		updates []RangeUpdate
		bad     []error
	)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		name, value, ok := strings.Cut(text, "|")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			bad = append(bad, &RangeParseError{Line: line, Text: text, Err: fmt.Errorf("expected name|range_km")})
			continue
		}
		km, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || km < 0 {
			if err == nil {
				err = fmt.Errorf("range must not be negative")
			}
			bad = append(bad, &RangeParseError{Line: line, Text: text, Err: err})
			continue
		}
		updates = append(updates, RangeUpdate{Name: name, RangeKM: km})
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read range updates: %w", err)
	}
	return updates, bad, nil
}
