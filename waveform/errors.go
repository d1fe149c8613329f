package waveform

import "errors"

var (
	ErrRaggedChannels = errors.New("waveform: channels differ in length")
	ErrInvalidShape   = errors.New("waveform: invalid shape")
)
