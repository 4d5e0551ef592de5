package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/rtm0/qgs/internal/cfl"
	"github.com/rtm0/qgs/internal/geostrophy"
	"github.com/rtm0/qgs/internal/grid"
	"github.com/rtm0/qgs/internal/meta"
	"github.com/rtm0/qgs/internal/mitgcm"
	"github.com/rtm0/qgs/internal/ncfield"
	"github.com/rtm0/qgs/internal/vm"
)

// initOptions are the inputs of "qgs init".
type initOptions struct {
	nx, ny    int
	lon0      float64
	params    geostrophy.Params
	dt        float64
	outDir    string
	ext       string
	format    mitgcm.Format
	ncPath    string
	precision string
	endian    string
}

func runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var o initOptions
	fs.IntVar(&o.nx, "nx", 1440, "number of longitudes")
	fs.IntVar(&o.ny, "ny", 720, "number of latitudes")
	fs.Float64Var(&o.lon0, "lon0", 0, "longitude origin in degrees")
	fs.Float64Var(&o.params.H, "H", grid.DefaultDepth, "mean depth in m")
	fs.Float64Var(&o.dt, "dt", 60, "model timestep in s, used for the CFL report")
	fs.Float64Var(&o.params.L, "L", 1e6, "horizontal scale of the eddy in m")
	fs.Float64Var(&o.params.U0, "U0", 0.1, "target peak speed in m/s")
	fs.Float64Var(&o.params.CenterLon, "center-lon", 180, "eddy center longitude in degrees")
	fs.Float64Var(&o.params.CenterLat, "center-lat", 0, "eddy center latitude in degrees")
	fs.StringVar(&o.outDir, "outdir", "./input", "output directory")
	fs.StringVar(&o.ext, "ext", ".bin", "extension of the binary files")
	fs.StringVar(&o.precision, "precision", "float32", "element precision: float32 or float64")
	fs.StringVar(&o.endian, "endian", "<", "byte order: < (little) or > (big)")
	fs.StringVar(&o.ncPath, "nc", "", "also export all fields to this netCDF file")
	c := addCommon(fs)

	logger, err := c.setup(fs, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "qgs init: %v\n", err)
		return 2
	}
	if o.format, err = mitgcm.ParseFormat(o.precision, o.endian); err != nil {
		logger.Error("Invalid output format", "err", err)
		return 2
	}
	if o.nx < 1 || o.ny < 1 || o.params.L <= 0 {
		logger.Error("Grid counts and L must be positive", "nx", o.nx, "ny", o.ny, "L", o.params.L)
		return 2
	}

	if err := initialize(logger, &o, c); err != nil {
		logger.Error("Could not write the initial condition", "err", err)
		return 1
	}
	return 0
}

func initialize(logger *slog.Logger, o *initOptions, c *common) error {
	g := grid.New(o.nx, o.ny, o.lon0)
	logger.Info("grid", "nx", g.NX, "ny", g.NY, "dlonDeg", g.DLon(), "dlatDeg", g.DLat())

	s := geostrophy.Build(g, o.params)
	if s.Psi0 == 0 {
		logger.Warn("Calibration degenerate, all velocities are zero", "psi0", s.Psi0, "L", o.params.L)
	} else {
		logger.Info("Computed psi0 amplitude", "psi0", s.Psi0, "maxSpeed", geostrophy.MaxSpeed(s.U, s.V))
	}

	if err := os.MkdirAll(o.outDir, 0o755); err != nil {
		return err
	}
	logger.Info("Writing files", "outdir", o.outDir, "format", o.format)
	if err := writeRecords(o.outDir, o.ext, s, o.format); err != nil {
		return err
	}

	m := meta.New(g, o.params, s, o.format)
	if err := meta.Write(filepath.Join(o.outDir, meta.FileName), m); err != nil {
		return err
	}
	logger.Info("Wrote metadata", "file", meta.FileName)

	if o.ncPath != "" {
		if err := ncfield.Export(o.ncPath, g, stateVars(s), metaAttrs(m)); err != nil {
			return fmt.Errorf("netCDF export: %w", err)
		}
		logger.Info("Exported netCDF", "file", o.ncPath)
	}

	r := cfl.Diagnose(s.U, s.V, g, o.params.H, o.dt)
	if !r.Finite() {
		logger.Warn("CFL diagnostics are not finite, check H", append(r.Summary(), "H", o.params.H)...)
	} else {
		logger.Info("CFL diagnostics", append(r.Summary(), "dt", o.dt)...)
	}

	return c.push(logger, vm.Record{
		NX:             g.NX,
		NY:             g.NY,
		Psi0:           s.Psi0,
		AdvectiveCFL:   r.Advective,
		GravityWaveCFL: r.GravityWave,
		RecommendedDt:  r.RecommendedDt,
	})
}

// Record file names; the extension is chosen by the caller.
const (
	uName     = "U_init"
	vName     = "V_init"
	etaName   = "ETA_init"
	depthName = "DEPTH"
)

// writeRecords writes the four records concurrently. After an error the
// files on disk must be considered invalid.
func writeRecords(dir, ext string, s *geostrophy.State, fm mitgcm.Format) error {
	var eg errgroup.Group
	for name, f := range map[string]grid.Field{
		uName:     s.U,
		vName:     s.V,
		etaName:   s.Eta,
		depthName: s.Depth,
	} {
		f := f
		path := filepath.Join(dir, name+ext)
		eg.Go(func() error {
			return mitgcm.WriteFile(path, f, fm)
		})
	}
	return eg.Wait()
}

func stateVars(s *geostrophy.State) []ncfield.Var {
	return []ncfield.Var{
		{Name: "PSI", Units: "m2 s-1", LongName: "streamfunction", Field: s.Psi},
		{Name: uName, Units: "m s-1", LongName: "zonal velocity", Field: s.U},
		{Name: vName, Units: "m s-1", LongName: "meridional velocity", Field: s.V},
		{Name: etaName, Units: "m", LongName: "surface height anomaly", Field: s.Eta},
		{Name: depthName, Units: "m", LongName: "depth", Field: s.Depth},
	}
}

func metaAttrs(m meta.Meta) []ncfield.Attr {
	return []ncfield.Attr{
		{Name: "nx", Value: int32(m.NX)},
		{Name: "ny", Value: int32(m.NY)},
		{Name: "lon0", Value: m.Lon0},
		{Name: "lat0", Value: m.Lat0},
		{Name: "dlon_deg", Value: m.DLon},
		{Name: "dlat_deg", Value: m.DLat},
		{Name: "H", Value: m.H},
		{Name: "g", Value: m.G},
		{Name: "Omega", Value: m.Omega},
		{Name: "psi0", Value: m.Psi0},
		{Name: "L", Value: m.L},
		{Name: "U0_target", Value: m.U0},
		{Name: "precision", Value: m.Precision},
		{Name: "endian", Value: m.Endian},
	}
}
