// Package buffer provides pooled float64 work buffers for kernels that
// process float32 waveforms at float64 precision. A transform loads a channel
// into a Buffer, runs its vector math, and stores the result back, without
// allocating per call once the pool is warm.
package buffer
