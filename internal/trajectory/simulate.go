// Package trajectory computes a single station's bikes-at-start-of-bucket
// series from an initial count and a delta array, under capacity clamping.
package trajectory

// Simulate runs x[0] = clamp(x0, 0, cap), x[b+1] = clamp(x[b]+delta[b], 0, cap)
// and returns the series x[0..B) aligned to delta's length. Clamping is
// silent: it represents dock-full rejections and empty-station refusals
// absorbed by the trajectory, not reported as errors.
//
// Simulate is O(B), allocates exactly one slice, and is safe to call in the
// inner loop of the day planner's candidate evaluation.
func Simulate(x0, cap int, delta []int) []int {
	b := len(delta)
	x := make([]int, b)
	cur := clamp(x0, 0, cap)
	for i := 0; i < b; i++ {
		x[i] = cur
		cur = clamp(cur+delta[i], 0, cap)
	}
	return x
}

// SimulateInto writes the trajectory into a caller-provided buffer (must have
// length >= len(delta)), avoiding an allocation.
func SimulateInto(out []int, x0, cap int, delta []int) {
	cur := clamp(x0, 0, cap)
	for i := range delta {
		out[i] = cur
		cur = clamp(cur+delta[i], 0, cap)
	}
}

// SimulateTail re-simulates the suffix of a trajectory starting at bucket
// b0, given the count entering b0 (x at b0). The prefix [0,b0) is left
// untouched by the caller, matching the planner's resim-from-b0 optimization:
// earlier deltas are unchanged by a move placed at or after b0.
func SimulateTail(out []int, b0, xAtB0, cap int, delta []int) {
	cur := clamp(xAtB0, 0, cap)
	for i := b0; i < len(delta); i++ {
		out[i] = cur
		cur = clamp(cur+delta[i], 0, cap)
	}
}

func clamp(x, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
