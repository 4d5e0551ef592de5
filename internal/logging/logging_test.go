package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	var out bytes.Buffer
	file := filepath.Join(t.TempDir(), "qgs.log")
	logger, err := newLogger(&out, "warn", file)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("calibration degenerate", "psi0", 0.0)

	if strings.Contains(out.String(), "hidden") {
		t.Errorf("info record written at warn level: %s", out.String())
	}
	if !strings.Contains(out.String(), "psi0=0") {
		t.Errorf("missing warn record: %s", out.String())
	}
	b, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b, out.Bytes()) {
		t.Errorf("log file differs from stdout:\n%s\n%s", b, out.String())
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"debug", "info", "WARN", "error", ""} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("%q: %v", s, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Errorf("invalid level accepted")
	}
}
