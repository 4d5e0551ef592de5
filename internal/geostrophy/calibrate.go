package geostrophy

// Calibrate returns the streamfunction amplitude whose balanced flow peaks
// at uTarget. The velocities are linear in the amplitude, so one evaluation
// at unit amplitude gives the exact scale.
//
// If the unit-amplitude flow is identically zero (L far below the grid
// spacing, for example) Calibrate returns 0, which callers must read as "no
// field" rather than as an error.
func Calibrate(lon, lat []float64, centerLon, centerLat, L, uTarget float64) float64 {
	const unit = 1.0
	psi := Streamfunction(lon, lat, centerLon, centerLat, L, unit)
	u, v, _ := Derive(psi, lon, lat)
	umax := MaxSpeed(u, v)
	if umax == 0 {
		return 0
	}
	return unit * uTarget / umax
}
