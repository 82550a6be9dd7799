package types

import "errors"

var (
	// ErrInvalidParameter is returned for out-of-range or non-numeric input.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrEmptyBatch is returned when binning a batch with no wealth values.
	ErrEmptyBatch = errors.New("empty batch")

	// ErrEmptyPopulation is returned when summarizing a population of size 0.
	ErrEmptyPopulation = errors.New("empty population")
)
