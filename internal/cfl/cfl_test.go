package cfl

import (
	"math"
	"strings"
	"testing"

	"github.com/rtm0/qgs/internal/grid"
)

func equatorDX(nx int) grid.Field {
	lon, _ := grid.Coordinates(nx, 1, 0)
	dx, _ := grid.Metrics(lon, []float64{0})
	return dx
}

func TestGravityWaveExample(t *testing.T) {
	dx := equatorDX(1440)
	if d := dx.At(0, 0); math.Abs(d-27798.7) > 1 {
		t.Fatalf("equatorial dx = %g", d)
	}
	if c := WaveSpeed(4000); math.Abs(c-198.09) > 0.01 {
		t.Errorf("wave speed %g, expected about 198.09", c)
	}
	if n := GravityWave(dx, 4000, 60); math.Abs(n-0.428) > 1e-3 {
		t.Errorf("gravity-wave CFL %g, expected about 0.428", n)
	}
	if dt := RecommendedDt(dx, 4000, DefaultTarget); math.Abs(dt-70.1) > 0.1 {
		t.Errorf("recommended dt %g, expected about 70.1", dt)
	}
}

func TestGravityWaveFullGrid(t *testing.T) {
	// The smallest cells sit next to the poles and dominate.
	g := grid.New(1440, 720, 0)
	n := GravityWave(g.DX, 4000, 60)
	want := WaveSpeed(4000) * 60 / g.DX.At(0, 0)
	if math.Abs(n-want) > 1e-9*want {
		t.Errorf("gravity-wave CFL %g, expected %g", n, want)
	}
	if n <= GravityWave(equatorDX(1440), 4000, 60) {
		t.Errorf("polar CFL %g not above equatorial", n)
	}
	dt := RecommendedDt(g.DX, 4000, DefaultTarget)
	if math.Abs(GravityWave(g.DX, 4000, dt)-DefaultTarget) > 1e-12 {
		t.Errorf("recommended dt %g does not give CFL %g", dt, DefaultTarget)
	}
}

func TestAdvective(t *testing.T) {
	dx := grid.Constant(2, 2, 1000)
	dy := grid.Constant(2, 2, 2000)
	u := grid.Field{NX: 2, NY: 2, Data: []float64{1, -3, 0.5, 0}}
	v := grid.Field{NX: 2, NY: 2, Data: []float64{0, 2, -4, 0}}
	// Cell 1: 3*10/1000 + 2*10/2000 = 0.04; cell 2: 0.005 + 0.02 = 0.025.
	if got := Advective(u, v, dx, dy, 10); math.Abs(got-0.04) > 1e-15 {
		t.Errorf("advective CFL %g, expected 0.04", got)
	}
	zero := grid.NewField(2, 2)
	if got := Advective(zero, zero, dx, dy, 10); got != 0 {
		t.Errorf("advective CFL of rest state %g", got)
	}
}

func TestNegativeDepth(t *testing.T) {
	dx := equatorDX(36)
	if n := GravityWave(dx, -10, 60); !math.IsNaN(n) {
		t.Errorf("gravity-wave CFL %g, expected NaN", n)
	}
	if dt := RecommendedDt(dx, -10, DefaultTarget); !math.IsNaN(dt) {
		t.Errorf("recommended dt %g, expected NaN", dt)
	}
}

func TestDiagnose(t *testing.T) {
	g := grid.New(36, 18, 0)
	u := grid.Constant(g.NX, g.NY, 1)
	v := grid.NewField(g.NX, g.NY)
	r := Diagnose(u, v, g, 4000, 60)
	if !r.Finite() {
		t.Fatalf("report not finite: %+v", r)
	}
	if want := 60 / g.DX.Min(); math.Abs(r.Advective-want) > 1e-12*want {
		t.Errorf("advective %g, expected %g", r.Advective, want)
	}
	lines := r.Lines()
	if len(lines) != 3 || !strings.HasPrefix(lines[2], "Recommended dt") {
		t.Errorf("unexpected report lines %q", lines)
	}

	bad := Diagnose(u, v, g, -1, 60)
	if bad.Finite() {
		t.Errorf("report with negative depth is finite: %+v", bad)
	}
	if !math.IsNaN(bad.GravityWave) || math.IsNaN(bad.Advective) {
		t.Errorf("NaN in the wrong place: %+v", bad)
	}
}
