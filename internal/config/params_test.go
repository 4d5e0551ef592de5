package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newFlags() (*flag.FlagSet, *int, *float64, *string) {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	nx := fs.Int("nx", 1440, "")
	h := fs.Float64("H", 4000, "")
	prec := fs.String("precision", "float32", "")
	return fs, nx, h, prec
}

func writeParams(t *testing.T, s string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qgs.params")
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestApplyFile(t *testing.T) {
	path := writeParams(t, "# coarse run\nnx=360\nH=1000\nprecision=\"float64\"\n")
	fs, nx, h, prec := newFlags()
	if err := fs.Parse([]string{"-H", "250"}); err != nil {
		t.Fatal(err)
	}
	if err := ApplyFile(fs, path); err != nil {
		t.Fatal(err)
	}
	if *nx != 360 {
		t.Errorf("nx = %d, expected 360", *nx)
	}
	if *h != 250 {
		t.Errorf("H = %g, command line value 250 was overridden", *h)
	}
	if *prec != "float64" {
		t.Errorf("precision = %q", *prec)
	}
	if _, ok := os.LookupEnv("nx"); ok {
		t.Errorf("parameter leaked into the environment")
	}
}

func TestApplyFileErrors(t *testing.T) {
	for name, contents := range map[string]string{
		"unknown key": "ny=10\n",
		"bad value":   "nx=many\n",
	} {
		fs, _, _, _ := newFlags()
		if err := fs.Parse(nil); err != nil {
			t.Fatal(err)
		}
		err := ApplyFile(fs, writeParams(t, contents))
		if err == nil || !strings.Contains(err.Error(), "qgs.params") {
			t.Errorf("%s: got error %v", name, err)
		}
	}

	fs, _, _, _ := newFlags()
	if err := ApplyFile(fs, filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Errorf("missing file accepted")
	}
}
