package growth

// DetectTransition inspects a recent LAI history (windowed first and second
// finite differences) for the signature of a phase shift. The detection is
// advisory telemetry only; stage transitions in Advance do not depend on it.
func DetectTransition(lai []float64, window int) (string, bool) {
	if window < 2 || len(lai) < window+1 {
		return "", false
	}
	recent := lai[len(lai)-window-1:]
	d1 := make([]float64, len(recent)-1)
	for i := range d1 {
		d1[i] = recent[i+1] - recent[i]
	}
	d2 := make([]float64, len(d1)-1)
	for i := range d2 {
		d2[i] = d1[i+1] - d1[i]
	}

	var m1, m2 float64
	for _, v := range d1 {
		m1 += v
	}
	m1 /= float64(len(d1))
	if len(d2) > 0 {
		for _, v := range d2 {
			m2 += v
		}
		m2 /= float64(len(d2))
	}

	switch {
	case m1 > 0.05 && m2 > 0.01:
		return "establishment_to_exponential", true
	case m1 < 0.02 && m2 < -0.01:
		return "exponential_to_maturation", true
	}
	return "", false
}
