package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/rtm0/qgs/internal/cfl"
	"github.com/rtm0/qgs/internal/grid"
	"github.com/rtm0/qgs/internal/mitgcm"
	"github.com/rtm0/qgs/internal/ncfield"
	"github.com/rtm0/qgs/internal/vm"
)

// checkOptions are the inputs of "qgs cfl".
type checkOptions struct {
	uPath, vPath string
	ncPath       string
	nx, ny       int
	h, dt        float64
	format       mitgcm.Format
}

func runCFL(args []string) int {
	fs := flag.NewFlagSet("cfl", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: qgs cfl [flags] Ufile Vfile\n       qgs cfl [flags] -nc file")
		fs.PrintDefaults()
	}
	var o checkOptions
	var precision, endian string
	fs.Float64Var(&o.h, "H", grid.DefaultDepth, "mean depth in m")
	fs.Float64Var(&o.dt, "dt", 60, "model timestep in s")
	fs.IntVar(&o.nx, "nx", 1440, "number of longitudes")
	fs.IntVar(&o.ny, "ny", 720, "number of latitudes")
	fs.StringVar(&precision, "precision", "float32", "element precision: float32 or float64")
	fs.StringVar(&endian, "endian", "<", "byte order: < (little) or > (big)")
	fs.StringVar(&o.ncPath, "nc", "", "read U_init and V_init from this netCDF export instead of binary files")
	c := addCommon(fs)

	logger, err := c.setup(fs, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "qgs cfl: %v\n", err)
		return 2
	}
	if o.format, err = mitgcm.ParseFormat(precision, endian); err != nil {
		logger.Error("Invalid input format", "err", err)
		return 2
	}
	if o.ncPath == "" {
		if fs.NArg() != 2 {
			fs.Usage()
			return 2
		}
		o.uPath, o.vPath = fs.Arg(0), fs.Arg(1)
	}

	r, g, err := check(logger, &o)
	switch {
	case errors.Is(err, mitgcm.ErrCorrupt):
		logger.Error("Corrupt input record", "err", err)
		return 1
	case err != nil:
		logger.Error("Could not read velocities", "err", err)
		return 1
	}

	printReport(os.Stdout, r)
	if !r.Finite() {
		logger.Warn("CFL diagnostics are not finite, check H", append(r.Summary(), "H", o.h)...)
	}
	err = c.push(logger, vm.Record{
		NX:             g.NX,
		NY:             g.NY,
		Psi0:           math.NaN(),
		AdvectiveCFL:   r.Advective,
		GravityWaveCFL: r.GravityWave,
		RecommendedDt:  r.RecommendedDt,
	})
	if err != nil {
		logger.Error("Could not push diagnostics", "err", err)
		return 1
	}
	return 0
}

// check loads the velocities and computes the diagnostics.
func check(logger *slog.Logger, o *checkOptions) (cfl.Report, *grid.Grid, error) {
	var u, v grid.Field
	if o.ncPath != "" {
		f, err := ncfield.Open(o.ncPath)
		if err != nil {
			return cfl.Report{}, nil, err
		}
		defer f.Close()
		logger.Info("netCDF summary", f.Summary()...)
		o.nx, o.ny = len(f.Lon), len(f.Lat)
		if u, err = f.Field(uName); err != nil {
			return cfl.Report{}, nil, err
		}
		if v, err = f.Field(vName); err != nil {
			return cfl.Report{}, nil, err
		}
	} else {
		var eg errgroup.Group
		eg.Go(func() (err error) {
			u, err = mitgcm.ReadFile(o.uPath, o.nx, o.ny, o.format)
			return err
		})
		eg.Go(func() (err error) {
			v, err = mitgcm.ReadFile(o.vPath, o.nx, o.ny, o.format)
			return err
		})
		if err := eg.Wait(); err != nil {
			return cfl.Report{}, nil, err
		}
	}

	g := grid.New(o.nx, o.ny, 0)
	r := cfl.Diagnose(u, v, g, o.h, o.dt)
	logger.Info("CFL diagnostics", append(r.Summary(), "dt", o.dt)...)
	return r, g, nil
}

func printReport(w io.Writer, r cfl.Report) {
	for _, l := range r.Lines() {
		fmt.Fprintln(w, l)
	}
}
