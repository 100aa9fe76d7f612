package platform

import (
	"errors"
)

var (
	// ErrNoKeyword is returned when a request carries neither a keyword nor an
	// image a keyword could be resolved from. The only hard, user-facing
	// failure of the pipeline.
	ErrNoKeyword = errors.New("no usable search keyword in request")
	// ErrIdentification is returned when the vision service failed to produce
	// a usable identification from the provided image.
	ErrIdentification = errors.New("can't identify product from image")
)
