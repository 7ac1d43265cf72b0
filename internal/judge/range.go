package judge

// DifficultyRange anchors a window width at difficulty 0, 5 and 10.
type DifficultyRange struct {
	Min, Mid, Max float64
}

// Interpolate maps a difficulty in [0, 10] onto the range piecewise linearly.
// The caller clamps difficulty.
func (r DifficultyRange) Interpolate(difficulty float64) float64 {
	if difficulty > 5 {
		return r.Mid + (r.Max-r.Mid)*(difficulty-5)/5
	}
	return r.Min + (r.Mid-r.Min)*difficulty/5
}

// Per-result ranges for the Lazer profile, Perfect to Miss.
var lazerRanges = [...]DifficultyRange{
	{22.4, 19.4, 13.9},
	{64, 49, 34},
	{97, 82, 67},
	{127, 112, 97},
	{151, 136, 121},
	{188, 173, 158},
}
