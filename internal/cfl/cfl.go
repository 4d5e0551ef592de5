// Package cfl computes Courant numbers for an initial state on the
// latitude-longitude grid. Numeric domain problems are not masked: a
// negative depth gives NaN, and a NaN anywhere propagates to the result.
package cfl

import (
	"fmt"
	"math"

	"github.com/rtm0/qgs/internal/grid"
)

// DefaultTarget is the gravity-wave Courant number used to recommend a
// timestep.
const DefaultTarget = 0.5

// Advective returns max(|u|dt/dx + |v|dt/dy).
func Advective(u, v, dx, dy grid.Field, dt float64) float64 {
	c := make([]float64, len(u.Data))
	for k := range c {
		c[k] = math.Abs(u.Data[k])*dt/dx.Data[k] + math.Abs(v.Data[k])*dt/dy.Data[k]
	}
	return grid.Reduce(c, math.Max)
}

// WaveSpeed returns the shallow-water gravity wave speed sqrt(gH).
func WaveSpeed(h float64) float64 {
	return math.Sqrt(grid.Gravity * h)
}

// GravityWave returns max(c·dt/dx) with c = sqrt(gH).
func GravityWave(dx grid.Field, h, dt float64) float64 {
	c := WaveSpeed(h)
	n := make([]float64, len(dx.Data))
	for k, d := range dx.Data {
		n[k] = c * dt / d
	}
	return grid.Reduce(n, math.Max)
}

// RecommendedDt returns the timestep that puts the gravity-wave Courant
// number at target on the smallest cell.
func RecommendedDt(dx grid.Field, h, target float64) float64 {
	return target * dx.Min() / WaveSpeed(h)
}

// Report holds the three diagnostics printed before a run.
type Report struct {
	Advective     float64
	GravityWave   float64
	RecommendedDt float64
}

// Diagnose computes every diagnostic for velocities u, v on g.
func Diagnose(u, v grid.Field, g *grid.Grid, h, dt float64) Report {
	return Report{
		Advective:     Advective(u, v, g.DX, g.DY, dt),
		GravityWave:   GravityWave(g.DX, h, dt),
		RecommendedDt: RecommendedDt(g.DX, h, DefaultTarget),
	}
}

// Finite reports whether every diagnostic is a number.
func (r Report) Finite() bool {
	for _, x := range []float64{r.Advective, r.GravityWave, r.RecommendedDt} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Summary returns the report as key/value pairs suitable for logging.
func (r Report) Summary() []any {
	return []any{
		"advectiveCFL", r.Advective,
		"gravityWaveCFL", r.GravityWave,
		"recommendedDt", r.RecommendedDt,
	}
}

// Lines returns the human-readable report.
func (r Report) Lines() []string {
	return []string{
		fmt.Sprintf("Advective CFL (max(|u|dt/dx + |v|dt/dy)) = %g", r.Advective),
		fmt.Sprintf("Gravity-wave CFL (max(c dt/dx)) = %g", r.GravityWave),
		fmt.Sprintf("Recommended dt (for gravity CFL<%g): dt <= %.1f s", DefaultTarget, r.RecommendedDt),
	}
}
