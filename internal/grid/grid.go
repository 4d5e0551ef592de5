// Package grid builds the cell-centered latitude-longitude grid and its
// metric terms.
//
// All functions require nx, ny >= 1. Violations are not checked and yield
// degenerate output.
package grid

import "math"

// Grid holds everything derived from the grid resolution. It is computed
// once per run and must not be modified afterwards.
type Grid struct {
	NX, NY int
	Lon0   float64

	Lon []float64 // cell centers, degrees east in [0,360)
	Lat []float64 // cell centers, degrees north in (-90,90)
	F   []float64 // Coriolis parameter per latitude

	DX, DY Field // m
}

// New computes coordinates, metrics and the Coriolis parameter for an
// nx×ny grid whose longitudes start at lon0.
func New(nx, ny int, lon0 float64) *Grid {
	lon, lat := Coordinates(nx, ny, lon0)
	dx, dy := Metrics(lon, lat)
	return &Grid{
		NX:   nx,
		NY:   ny,
		Lon0: lon0,
		Lon:  lon,
		Lat:  lat,
		F:    Coriolis(lat),
		DX:   dx,
		DY:   dy,
	}
}

// DLon returns the zonal spacing in degrees.
func (g *Grid) DLon() float64 { return 360 / float64(g.NX) }

// DLat returns the meridional spacing in degrees.
func (g *Grid) DLat() float64 { return 180 / float64(g.NY) }

// Area returns the approximate area of each cell, dx*dy, in m^2.
func (g *Grid) Area() Field {
	a := NewField(g.NX, g.NY)
	for k := range a.Data {
		a.Data[k] = g.DX.Data[k] * g.DY.Data[k]
	}
	return a
}

// Coordinates returns the cell-center longitudes and latitudes in degrees.
func Coordinates(nx, ny int, lon0 float64) (lon, lat []float64) {
	dlon := 360 / float64(nx)
	dlat := 180 / float64(ny)

	lon = make([]float64, nx)
	for i := range lon {
		l := math.Mod(lon0+dlon*(0.5+float64(i)), 360)
		if l < 0 {
			l += 360
		}
		if l >= 360 {
			l = 0
		}
		lon[i] = l
	}
	lat = make([]float64, ny)
	for j := range lat {
		lat[j] = -90 + dlat*(0.5+float64(j))
	}
	return lon, lat
}

// Coriolis returns f = 2Ω sin(φ) for latitudes given in degrees.
func Coriolis(lat []float64) []float64 {
	f := make([]float64, len(lat))
	for j, l := range lat {
		f[j] = 2 * Omega * math.Sin(radians(l))
	}
	return f
}

// Metrics returns the zonal and meridional cell sizes in meters. dx shrinks
// with cos(latitude); dy is the same everywhere.
func Metrics(lon, lat []float64) (dx, dy Field) {
	nx, ny := len(lon), len(lat)
	dlon := 2 * math.Pi / float64(nx)
	dlat := math.Pi / float64(ny)

	dx = NewField(nx, ny)
	dy = NewField(nx, ny)
	for j, l := range lat {
		dxj := EarthRadius * math.Cos(radians(l)) * dlon
		for i := 0; i < nx; i++ {
			dx.Set(i, j, dxj)
			dy.Set(i, j, EarthRadius*dlat)
		}
	}
	return dx, dy
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
