package buffer

// Buffer is a resizable float64 work area.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	if length < 0 {
		length = 0
	}
	return &Buffer{samples: make([]float64, length)}
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Cap returns the current capacity of the backing slice.
func (b *Buffer) Cap() int {
	return cap(b.samples)
}

// Resize sets the length to n, reusing existing capacity when possible.
// Contents are unspecified after Resize; callers overwrite or Zero them.
func (b *Buffer) Resize(n int) {
	if n < 0 {
		n = 0
	}
	if n <= cap(b.samples) {
		b.samples = b.samples[:n]
		return
	}
	b.samples = make([]float64, n)
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	clear(b.samples)
}

// Load resizes b to len(src) and widens src into it.
func (b *Buffer) Load(src []float32) {
	b.Resize(len(src))
	for i, v := range src {
		b.samples[i] = float64(v)
	}
}

// Store narrows b into dst and returns the number of samples written.
func (b *Buffer) Store(dst []float32) int {
	n := min(len(dst), len(b.samples))
	for i := range n {
		dst[i] = float32(b.samples[i])
	}
	return n
}
