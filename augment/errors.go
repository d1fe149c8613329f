package augment

import "errors"

var (
	ErrInvalidConfiguration = errors.New("augment: invalid configuration")
	ErrInvalidDurationUnit  = errors.New("augment: invalid duration unit")
	ErrInvalidSampleRate    = errors.New("augment: invalid sample rate")
)
