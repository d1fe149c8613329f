package fade

// Window is a fade curve placed on a sample axis of Total samples.
//
// Samples [Start, End) receive curve points [CurveStart, CurveEnd). Samples
// before Start hold the curve's first level and samples from End onward hold
// its last level. End-Start always equals CurveEnd-CurveStart.
type Window struct {
	Start      int
	End        int
	CurveStart int
	CurveEnd   int
	Total      int
}

// Crop places a curve of length points whose first point sits at sample t0
// (possibly negative) on the range [0, total). Points falling outside the
// range are dropped from either end.
func Crop(t0, length, total int) Window {
	if length < 0 {
		length = 0
	}
	if total < 0 {
		total = 0
	}

	start := clampInt(t0, 0, total)
	end := clampInt(t0+length, 0, total)
	if end < start {
		end = start
	}

	curveStart := clampInt(start-t0, 0, length)

	return Window{
		Start:      start,
		End:        end,
		CurveStart: curveStart,
		CurveEnd:   curveStart + (end - start),
		Total:      total,
	}
}

// Len returns the number of samples covered by the transition.
func (w Window) Len() int { return w.End - w.Start }

// Empty reports whether no curve point lands on the sample axis.
func (w Window) Empty() bool { return w.End == w.Start }

// HoldsStart reports whether a pre-transition region exists.
func (w Window) HoldsStart() bool { return w.Start > 0 }

// HoldsEnd reports whether a post-transition region exists.
func (w Window) HoldsEnd() bool { return w.End < w.Total }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
