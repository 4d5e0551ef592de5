// Package geostrophy derives a geostrophically balanced initial state from
// a Gaussian streamfunction.
package geostrophy

import (
	"math"

	"github.com/rtm0/qgs/internal/grid"
)

// Streamfunction returns psi0·exp(-r²/2L²) on the grid, where r is measured
// in a local plane around (centerLon, centerLat). The zonal distance uses
// the cosine of centerLat only, so the bump is distorted far from its
// center.
func Streamfunction(lon, lat []float64, centerLon, centerLat, L, psi0 float64) grid.Field {
	psi := grid.NewField(len(lon), len(lat))
	cos0 := math.Cos(radians(centerLat))
	for i, lo := range lon {
		x := grid.EarthRadius * cos0 * radians(lo-centerLon)
		for j, la := range lat {
			y := grid.EarthRadius * radians(la-centerLat)
			r2 := x*x + y*y
			psi.Set(i, j, psi0*math.Exp(-0.5*r2/(L*L)))
		}
	}
	return psi
}

// Derive computes the geostrophic velocities u = -∂ψ/∂y, v = ∂ψ/∂x and the
// surface height eta = fψ/g.
//
// Zonal derivatives are centered and periodic; the two edge columns span
// dx[0]+dx[nx-1]. Meridional derivatives are centered inside and one-sided
// at the first and last latitude. With ny < 2 the meridional derivative is
// zero.
func Derive(psi grid.Field, lon, lat []float64) (u, v, eta grid.Field) {
	nx, ny := psi.NX, psi.NY
	dx, dy := grid.Metrics(lon, lat)
	f := grid.Coriolis(lat)

	u = grid.NewField(nx, ny)
	v = grid.NewField(nx, ny)
	eta = grid.NewField(nx, ny)

	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			east, west := (i+1)%nx, (i-1+nx)%nx
			span := 2 * dx.At(i, j)
			if i == 0 || i == nx-1 {
				span = (dx.At(0, j) + dx.At(nx-1, j)) / 2 * 2
			}
			v.Set(i, j, (psi.At(east, j)-psi.At(west, j))/span)

			var dpsidy float64
			switch {
			case ny < 2:
			case j == 0:
				dpsidy = (psi.At(i, 1) - psi.At(i, 0)) / dy.At(i, 0)
			case j == ny-1:
				dpsidy = (psi.At(i, ny-1) - psi.At(i, ny-2)) / dy.At(i, ny-1)
			default:
				dpsidy = (psi.At(i, j+1) - psi.At(i, j-1)) / (2 * dy.At(i, j))
			}
			u.Set(i, j, -dpsidy)

			eta.Set(i, j, f[j]*psi.At(i, j)/grid.Gravity)
		}
	}
	return u, v, eta
}

// Depth returns the flat-bottom depth field.
func Depth(nx, ny int, h float64) grid.Field {
	return grid.Constant(nx, ny, h)
}

// MaxSpeed returns the largest sqrt(u²+v²) over the grid.
func MaxSpeed(u, v grid.Field) float64 {
	s := make([]float64, len(u.Data))
	for k := range s {
		s[k] = math.Sqrt(u.Data[k]*u.Data[k] + v.Data[k]*v.Data[k])
	}
	return grid.Reduce(s, math.Max)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
