// Package meta writes the JSON sidecar that describes an initial state.
package meta

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/rtm0/qgs/internal/geostrophy"
	"github.com/rtm0/qgs/internal/grid"
	"github.com/rtm0/qgs/internal/mitgcm"
)

// FileName is the sidecar written next to the binary records.
const FileName = "init_meta.json"

// Meta mirrors init_meta.json. Lon0 and Lat0 are the first cell centers.
type Meta struct {
	NX        int     `json:"nx"`
	NY        int     `json:"ny"`
	Lon0      float64 `json:"lon0"`
	Lat0      float64 `json:"lat0"`
	DLon      float64 `json:"dlon_deg"`
	DLat      float64 `json:"dlat_deg"`
	H         float64 `json:"H"`
	G         float64 `json:"g"`
	Omega     float64 `json:"Omega"`
	Psi0      float64 `json:"psi0"`
	L         float64 `json:"L"`
	U0        float64 `json:"U0_target"`
	Precision string  `json:"precision"`
	Endian    string  `json:"endian"`
}

// New collects the sidecar values for state s built on g with p.
func New(g *grid.Grid, p geostrophy.Params, s *geostrophy.State, fm mitgcm.Format) Meta {
	return Meta{
		NX:        g.NX,
		NY:        g.NY,
		Lon0:      g.Lon[0],
		Lat0:      g.Lat[0],
		DLon:      g.DLon(),
		DLat:      g.DLat(),
		H:         p.H,
		G:         grid.Gravity,
		Omega:     grid.Omega,
		Psi0:      s.Psi0,
		L:         p.L,
		U0:        p.U0,
		Precision: fm.Precision.String(),
		Endian:    mitgcm.ByteOrderSymbol(fm.Order),
	}
}

// Write stores m as indented JSON.
func Write(path string, m Meta) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Read loads a sidecar written by Write.
func Read(path string) (Meta, error) {
	var m Meta
	b, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	err = json.Unmarshal(b, &m)
	return m, err
}

// Format returns the record format recorded in m.
func (m Meta) Format() (mitgcm.Format, error) {
	return mitgcm.ParseFormat(m.Precision, m.Endian)
}
