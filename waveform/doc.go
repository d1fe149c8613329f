// Package waveform defines the in-memory float32 sample container consumed
// and produced by augmentation transforms.
//
// A Waveform has shape (channels, samples). Mono input created with FromMono
// reports Mono() so callers can round-trip a 1-D signal without gaining a
// channel axis. Samples are stored planar: each channel is one contiguous run.
package waveform
