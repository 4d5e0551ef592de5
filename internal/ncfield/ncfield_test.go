package ncfield

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/rtm0/qgs/internal/grid"
)

func TestExportLoad(t *testing.T) {
	g := grid.New(8, 4, 0)
	u := grid.NewField(g.NX, g.NY)
	for k := range u.Data {
		u.Data[k] = float64(k) / 3
	}
	depth := grid.Constant(g.NX, g.NY, 4000)

	path := filepath.Join(t.TempDir(), "init.nc")
	err := Export(path, g,
		[]Var{
			{Name: "U", Units: "m s-1", LongName: "zonal velocity", Field: u},
			{Name: "DEPTH", Units: "m", LongName: "depth", Field: depth},
		},
		[]Attr{{"nx", int32(g.NX)}, {"psi0", 1.5e4}, {"endian", "<"}})
	if err != nil {
		t.Fatal(err)
	}

	f, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if !slices.Equal(f.Lon, g.Lon) || !slices.Equal(f.Lat, g.Lat) {
		t.Errorf("axes differ: %v %v", f.Lon, f.Lat)
	}
	for name, want := range map[string]grid.Field{"U": u, "DEPTH": depth} {
		got, err := f.Field(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got.NX != g.NX || got.NY != g.NY || !slices.Equal(got.Data, want.Data) {
			t.Errorf("%s: round trip mismatch", name)
		}
	}
	if _, err := f.Field("V"); err == nil {
		t.Errorf("missing variable loaded without error")
	}
	if _, err := f.Field(DimLon); err == nil {
		t.Errorf("1-D axis loaded as a field")
	}
}

func TestExportShapeMismatch(t *testing.T) {
	g := grid.New(8, 4, 0)
	path := filepath.Join(t.TempDir(), "bad.nc")
	err := Export(path, g, []Var{{Name: "U", Units: "m s-1", Field: grid.NewField(4, 4)}}, nil)
	if err == nil {
		t.Errorf("mismatched field exported without error")
	}
}
