package model

import (
	"strings"
	"time"
)

// ImportSource names an online data source.
type ImportSource string

const (
	SourcePredefined  ImportSource = "predefined"
	SourceEurocontrol ImportSource = "eurocontrol"
	SourceAviation    ImportSource = "aviation"
	SourceWikipedia   ImportSource = "wikipedia"
	SourceAll         ImportSource = "all"
	// SourceSample and SourceBirds tag runs of the embedded datasets.
	SourceSample ImportSource = "sample"
	SourceBirds  ImportSource = "birds"
)

const (
	DefaultMaxAircraft = 10
	MaxOnlineAircraft  = 50
)

// ParseImportSource normalizes an online source name. An empty value selects
// the predefined dataset.
func ParseImportSource(value string) (ImportSource, bool) {
	src := ImportSource(strings.ToLower(strings.TrimSpace(value)))
	switch src {
	case "":
		return SourcePredefined, true
	case SourcePredefined, SourceEurocontrol, SourceAviation, SourceWikipedia, SourceAll:
		return src, true
	default:
		return "", false
	}
}

// OnlineImportRequest is the body of an online import.
type OnlineImportRequest struct {
	Source      string `json:"source"`
	MaxAircraft *int   `json:"max_aircraft,omitempty"`
}

// Limit returns the requested maximum clamped to 1..MaxOnlineAircraft.
func (r *OnlineImportRequest) Limit() int {
	if r.MaxAircraft == nil {
		return DefaultMaxAircraft
	}
	return min(max(*r.MaxAircraft, 1), MaxOnlineAircraft)
}

// ImportStatus is the lifecycle state of an import run.
type ImportStatus string

const (
	ImportRunning   ImportStatus = "running"
	ImportSucceeded ImportStatus = "succeeded"
	ImportFailed    ImportStatus = "failed"
)

// ImportRun records one execution of an importer.
type ImportRun struct {
	ID         string       `json:"id"          db:"id"`
	Source     ImportSource `json:"source"      db:"source"`
	Requested  int          `json:"requested"   db:"requested"`
	Imported   int          `json:"imported"    db:"imported"`
	Status     ImportStatus `json:"status"      db:"status"`
	Output     string       `json:"output"      db:"output"`
	Error      *string      `json:"error"       db:"error"`
	StartedAt  time.Time    `json:"started_at"  db:"started_at"`
	FinishedAt *time.Time   `json:"finished_at" db:"finished_at"`
}

// FinishImportRunRequest closes an import run.
type FinishImportRunRequest struct {
	ID       string
	Imported int
	Status   ImportStatus
	Output   string
	Error    *string
}

// ImportResult is returned by the import operations.
type ImportResult struct {
	RunID  string `json:"run_id,omitempty"`
	Count  int    `json:"count"`
	Output string `json:"output,omitempty"`
}
