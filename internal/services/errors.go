package services

import "errors"

var (
	ErrNoImages         = errors.New("no images provided")
	ErrExtractionFailed = errors.New("address extraction failed")
	ErrTooManyStops     = errors.New("too many stops")
)
