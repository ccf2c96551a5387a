package types

import "errors"

var (
	ErrDatasetNotFound  = errors.New("dataset file not found")
	ErrDatasetMalformed = errors.New("dataset file is malformed")
	ErrMissingColumn    = errors.New("dataset is missing a required column")
	ErrDatasetNotLoaded = errors.New("dataset not loaded")

	ErrAccessDenied = errors.New("access denied")

	ErrNotFound = errors.New("requested item not found")
)
