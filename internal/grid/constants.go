package grid

// Physical constants shared by every component. They are never modified.
const (
	EarthRadius  = 6.371e6      // m
	Omega        = 7.2921159e-5 // s^-1
	Gravity      = 9.81         // m s^-2
	DefaultDepth = 4000.0       // m
)
