package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	ErrAircraftNotFound  = errors.New("aircraft not found")
	ErrImportRunNotFound = errors.New("import run not found")
)
