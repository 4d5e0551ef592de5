// Command qgs prepares and checks initial conditions for the QGS
// shallow-water tutorial.
//
//	qgs init [flags]            write U_init, V_init, ETA_init, DEPTH and init_meta.json
//	qgs cfl [flags] Ufile Vfile  report Courant numbers for an initial state
//
// Run "qgs <command> -h" for the flags of each command.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rtm0/qgs/internal/config"
	"github.com/rtm0/qgs/internal/logging"
	"github.com/rtm0/qgs/internal/vm"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "init":
		os.Exit(runInit(args))
	case "cfl":
		os.Exit(runCFL(args))
	case "help", "-h", "-help", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "qgs: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: qgs <command> [flags] [args]

commands:
  init   build a balanced eddy and write the model input files
  cfl    check advective and gravity-wave CFL numbers of U/V files
`)
}

// common holds the flags shared by every command.
type common struct {
	params       *string
	logLevel     *string
	logFile      *string
	vmInsertURL  *string
	metricPrefix *string
	run          *string
}

func addCommon(fs *flag.FlagSet) *common {
	return &common{
		params:       fs.String("params", "", "KEY=value parameter file; keys are flag names, command line flags win"),
		logLevel:     fs.String("loglevel", "info", "log level: debug, info, warn or error"),
		logFile:      fs.String("logfile", "", "also append logs to this file (rotated)"),
		vmInsertURL:  fs.String("vmInsertUrl", "", "if set, push diagnostics to this Victoria Metrics insert API URL, e.g. http://localhost:8428/write"),
		metricPrefix: fs.String("metricPrefix", "qgs", "metric name prefix for Victoria Metrics"),
		run:          fs.String("run", "", "run label attached to pushed metrics"),
	}
}

// setup parses args, applies the parameter file and creates the logger.
func (c *common) setup(fs *flag.FlagSet, args []string) (*slog.Logger, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *c.params != "" {
		if err := config.ApplyFile(fs, *c.params); err != nil {
			return nil, err
		}
	}
	return logging.New(*c.logLevel, *c.logFile)
}

// push sends rec to Victoria Metrics if an insert URL was given.
func (c *common) push(logger *slog.Logger, rec vm.Record) error {
	if *c.vmInsertURL == "" {
		return nil
	}
	vmCli, err := vm.NewClient(logger, *c.vmInsertURL, *c.metricPrefix)
	if err != nil {
		return err
	}
	rec.Timestamp = time.Now().UnixMilli()
	rec.Run = *c.run
	return vmCli.Insert([]vm.Record{rec})
}
