package geostrophy

import "github.com/rtm0/qgs/internal/grid"

// Params describes the initial eddy.
type Params struct {
	CenterLon, CenterLat float64 // degrees
	L                    float64 // horizontal scale, m
	U0                   float64 // target peak speed, m/s
	H                    float64 // mean depth, m
}

// State is a balanced initial condition. Every field is freshly allocated.
type State struct {
	Psi0 float64
	Psi  grid.Field
	U    grid.Field
	V    grid.Field
	Eta  grid.Field
	// Depth is H everywhere.
	Depth grid.Field
}

// Build calibrates the amplitude for p.U0 and derives every field on g.
func Build(g *grid.Grid, p Params) *State {
	psi0 := Calibrate(g.Lon, g.Lat, p.CenterLon, p.CenterLat, p.L, p.U0)
	psi := Streamfunction(g.Lon, g.Lat, p.CenterLon, p.CenterLat, p.L, psi0)
	u, v, eta := Derive(psi, g.Lon, g.Lat)
	return &State{
		Psi0:  psi0,
		Psi:   psi,
		U:     u,
		V:     v,
		Eta:   eta,
		Depth: Depth(g.NX, g.NY, p.H),
	}
}
