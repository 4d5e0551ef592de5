// Package ncfield stores an initial state as a netCDF classic file so that
// standard tools (ncview, xarray, panoply) can inspect it, and loads fields
// back from such files.
package ncfield

import (
	"fmt"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/cdf"
	"github.com/batchatco/go-native-netcdf/netcdf/util"

	"github.com/rtm0/qgs/internal/grid"
)

// Dimension names; fields are stored as (lon, lat) like the binary records.
const (
	DimLon = "lon"
	DimLat = "lat"
)

// Var is one field to export.
type Var struct {
	Name     string
	Units    string
	LongName string
	Field    grid.Field
}

// Attr is a global attribute. Values must be float64, int32 or string.
type Attr struct {
	Name  string
	Value any
}

// Export writes the grid axes, vars and global attributes to path,
// replacing any existing file.
func Export(path string, g *grid.Grid, vars []Var, attrs []Attr) error {
	cw, err := cdf.OpenWriter(path)
	if err != nil {
		return err
	}

	if len(attrs) > 0 {
		keys := make([]string, len(attrs))
		vals := make(map[string]any, len(attrs))
		for i, a := range attrs {
			keys[i] = a.Name
			vals[a.Name] = a.Value
		}
		om, err := util.NewOrderedMap(keys, vals)
		if err != nil {
			cw.Close()
			return err
		}
		if err := cw.AddGlobalAttrs(om); err != nil {
			cw.Close()
			return err
		}
	}

	axes := []Var{
		{Name: DimLon, Units: "degrees_east", LongName: "longitude"},
		{Name: DimLat, Units: "degrees_north", LongName: "latitude"},
	}
	for i, values := range [][]float64{g.Lon, g.Lat} {
		if err := addVar(cw, axes[i], values, []string{axes[i].Name}); err != nil {
			cw.Close()
			return err
		}
	}
	for _, v := range vars {
		if v.Field.NX != g.NX || v.Field.NY != g.NY {
			cw.Close()
			return fmt.Errorf("%s is %dx%d, grid is %dx%d", v.Name, v.Field.NX, v.Field.NY, g.NX, g.NY)
		}
		if err := addVar(cw, v, v.Field.Rows(), []string{DimLon, DimLat}); err != nil {
			cw.Close()
			return err
		}
	}
	return cw.Close()
}

func addVar(cw *cdf.CDFWriter, v Var, values any, dims []string) error {
	attrs, err := util.NewOrderedMap(
		[]string{"units", "long_name"},
		map[string]any{"units": v.Units, "long_name": v.LongName})
	if err != nil {
		return err
	}
	err = cw.AddVar(v.Name, api.Variable{
		Values:     values,
		Dimensions: dims,
		Attributes: attrs,
	})
	if err != nil {
		return fmt.Errorf("adding %s: %w", v.Name, err)
	}
	return nil
}
