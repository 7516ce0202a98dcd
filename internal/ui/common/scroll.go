package common

// WheelDelta is the content distance one wheel notch scrolls: a 1/factor
// share of the visible height, at least one line, in units of unit.
func WheelDelta(visible int32, factor int, unit int64) int64 {
	if unit < 1 {
		unit = 1
	}
	lines := int64(1)
	if factor > 0 && int64(visible)/int64(factor) > 1 {
		lines = int64(visible) / int64(factor)
	}
	return lines * unit
}
