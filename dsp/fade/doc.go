// Package fade builds logarithmic gain-transition curves and places them on a
// sample axis.
//
// A curve is interpolated linearly in decibels and converted to linear
// amplitude, which is what a listener perceives as an even fade. Placement is
// pure integer arithmetic: Crop maps a curve that may start before sample 0
// or run past the last sample onto the valid sample range, and reports which
// part of the curve survives. Keeping the index math separate from the
// multiply lets each be verified on its own.
package fade
