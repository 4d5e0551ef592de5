package ncfield

import (
	"fmt"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"

	"github.com/rtm0/qgs/internal/grid"
)

// File gives access to fields stored by Export.
type File struct {
	nc  api.Group
	Lon []float64
	Lat []float64
}

// Open opens a netCDF file and reads its axes.
func Open(path string) (*File, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, err
	}
	f := &File{nc: nc}
	f.Lon, err = values[[]float64](nc, DimLon)
	if err != nil {
		nc.Close()
		return nil, err
	}
	f.Lat, err = values[[]float64](nc, DimLat)
	if err != nil {
		nc.Close()
		return nil, err
	}
	return f, nil
}

// Close closes the file.
func (f *File) Close() {
	f.nc.Close()
}

// Field loads the named (lon, lat) variable.
func (f *File) Field(name string) (grid.Field, error) {
	rows, err := values[[][]float64](f.nc, name)
	if err != nil {
		return grid.Field{}, err
	}
	if len(rows) != len(f.Lon) || (len(rows) > 0 && len(rows[0]) != len(f.Lat)) {
		return grid.Field{}, fmt.Errorf("%s does not match the %dx%d axes", name, len(f.Lon), len(f.Lat))
	}
	return grid.FromRows(rows), nil
}

// Summary returns information about the file suitable for logging.
func (f *File) Summary() []any {
	return []any{
		"vars", f.nc.ListVariables(),
		"loCnt", len(f.Lon),
		"laCnt", len(f.Lat),
	}
}

func values[T []float64 | [][]float64](nc api.Group, name string) (T, error) {
	vg, err := nc.GetVarGetter(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	v, err := vg.Values()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	t, ok := v.(T)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected type %T", name, v)
	}
	return t, nil
}
