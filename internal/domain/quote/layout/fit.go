package layout

// Fit scales a w×h box to the largest size that fits maxW×maxH while keeping
// its aspect ratio. Degenerate input yields zero.
func Fit(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	scale := min(maxW/w, maxH/h)
	return w * scale, h * scale
}
