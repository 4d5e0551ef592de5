package vm

// Record is the set of diagnostics produced by one command run.
type Record struct {
	Timestamp int64 // unix ms
	Run       string
	NX, NY    int

	Psi0           float64
	AdvectiveCFL   float64
	GravityWaveCFL float64
	RecommendedDt  float64
}
