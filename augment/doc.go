// Package augment provides randomized waveform transforms for training-data
// augmentation.
//
// Every transform follows a plan-then-execute pattern. RandomizeParameters
// draws a parameter value object from a caller-supplied random source, and
// Apply consumes it to produce a new waveform. Transforms hold only their
// validated configuration, so one instance may be shared across goroutines as
// long as each goroutine draws from its own Rand.
//
// Transforms in this package:
//   - GainTransition: fade between two random gains over a random span that
//     may start before or end after the audio.
//
// The Gate type supplies the probability check common to all transforms, and
// LoadGainTransitionConfig reads YAML configuration, translating deprecated
// keys to their current names.
package augment
