// Package mitgcm reads and writes fields as single Fortran-unformatted
// records, the layout MITgcm expects for initial conditions:
//
//	int32 N | N bytes of payload | int32 N
//
// The payload is longitude-major with the latitude index varying fastest.
// Markers and elements use the byte order of the Format.
package mitgcm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/rtm0/qgs/internal/grid"
)

const markerSize = 4

// ErrCorrupt is wrapped by every decoding failure caused by the file
// contents rather than by I/O.
var ErrCorrupt = errors.New("corrupt record")

// Encode writes f as one framed record.
func Encode(w io.Writer, f grid.Field, fm Format) error {
	bo := fm.order()
	size := fm.Precision.Size()
	n := len(f.Data) * size
	if n > math.MaxInt32 {
		return fmt.Errorf("payload of %d bytes does not fit a record marker", n)
	}

	buf := make([]byte, markerSize+n+markerSize)
	bo.PutUint32(buf, uint32(n))
	p := buf[markerSize : markerSize+n]
	for k, v := range f.Data {
		if fm.Precision == Float64 {
			bo.PutUint64(p[k*8:], math.Float64bits(v))
		} else {
			bo.PutUint32(p[k*4:], math.Float32bits(float32(v)))
		}
	}
	bo.PutUint32(buf[markerSize+n:], uint32(n))

	_, err := w.Write(buf)
	return err
}

// Decode reads one framed record holding an nx×ny field. Both markers must
// equal nx*ny*size and nothing may follow the trailing marker.
func Decode(r io.Reader, nx, ny int, fm Format) (grid.Field, error) {
	bo := fm.order()
	size := fm.Precision.Size()
	want := nx * ny * size

	var marker [markerSize]byte
	if _, err := io.ReadFull(r, marker[:]); err != nil {
		return grid.Field{}, truncated("leading marker", err)
	}
	lead := int32(bo.Uint32(marker[:]))
	if int(lead) != want {
		return grid.Field{}, fmt.Errorf("%w: leading marker %d, expected %d bytes for %dx%d %s",
			ErrCorrupt, lead, want, nx, ny, fm.Precision)
	}

	payload := make([]byte, want)
	if _, err := io.ReadFull(r, payload); err != nil {
		return grid.Field{}, truncated("payload", err)
	}
	if _, err := io.ReadFull(r, marker[:]); err != nil {
		return grid.Field{}, truncated("trailing marker", err)
	}
	if trail := int32(bo.Uint32(marker[:])); trail != lead {
		return grid.Field{}, fmt.Errorf("%w: trailing marker %d does not match leading marker %d",
			ErrCorrupt, trail, lead)
	}
	var extra [1]byte
	switch _, err := io.ReadFull(r, extra[:]); {
	case err == nil:
		return grid.Field{}, fmt.Errorf("%w: data after the record", ErrCorrupt)
	case !errors.Is(err, io.EOF):
		return grid.Field{}, err
	}

	f := grid.NewField(nx, ny)
	for k := range f.Data {
		if fm.Precision == Float64 {
			f.Data[k] = math.Float64frombits(bo.Uint64(payload[k*8:]))
		} else {
			f.Data[k] = float64(math.Float32frombits(bo.Uint32(payload[k*4:])))
		}
	}
	return f, nil
}

func truncated(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated %s", ErrCorrupt, what)
	}
	return err
}

// WriteFile creates path and writes f to it as one record. A failure part
// way through leaves a malformed file behind.
func WriteFile(path string, f grid.Field, fm Format) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(fp, f, fm); err != nil {
		fp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return fp.Close()
}

// ReadFile reads the single record stored in path.
func ReadFile(path string, nx, ny int, fm Format) (grid.Field, error) {
	fp, err := os.Open(path)
	if err != nil {
		return grid.Field{}, err
	}
	defer fp.Close()

	f, err := Decode(bufio.NewReader(fp), nx, ny, fm)
	if err != nil {
		return grid.Field{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return f, nil
}
