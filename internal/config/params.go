// Package config applies parameter files to command-line flags.
//
// A parameter file holds KEY=value lines (comments and quoting as in .env
// files). Keys are flag names, so a file for "qgs init" might read:
//
//	nx=720
//	ny=360
//	center-lat=35
//	precision=float64
//
// Flags given on the command line win over the file. The process
// environment is never read or modified.
package config

import (
	"flag"
	"fmt"
	"sort"

	"github.com/joho/godotenv"
)

// ApplyFile sets every flag of fs named in the parameter file at path,
// except flags already set on the command line. fs must have been parsed.
func ApplyFile(fs *flag.FlagSet, path string) error {
	params, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("reading parameters: %w", err)
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if fs.Lookup(k) == nil {
			return fmt.Errorf("%s: unknown parameter %q", path, k)
		}
		if explicit[k] {
			continue
		}
		if err := fs.Set(k, params[k]); err != nil {
			return fmt.Errorf("%s: invalid %s: %w", path, k, err)
		}
	}
	return nil
}
