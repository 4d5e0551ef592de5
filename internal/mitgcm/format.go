package mitgcm

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Precision is the on-disk element width.
type Precision int

const (
	Float32 Precision = iota
	Float64
)

// ParsePrecision accepts "float32", "float64", "32" or "64".
func ParsePrecision(s string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "float32", "32":
		return Float32, nil
	case "float64", "64":
		return Float64, nil
	}
	return 0, fmt.Errorf("unknown precision %q, expected float32 or float64", s)
}

// Size returns the element size in bytes.
func (p Precision) Size() int {
	if p == Float64 {
		return 8
	}
	return 4
}

func (p Precision) String() string {
	if p == Float64 {
		return "float64"
	}
	return "float32"
}

// ParseByteOrder accepts "<" or "little" and ">" or "big".
func ParseByteOrder(s string) (binary.ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "<", "little":
		return binary.LittleEndian, nil
	case ">", "big":
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf("unknown byte order %q, expected < or >", s)
}

// ByteOrderSymbol returns "<" for little-endian and ">" for big-endian.
func ByteOrderSymbol(bo binary.ByteOrder) string {
	if bo == binary.BigEndian {
		return ">"
	}
	return "<"
}

// Format selects how record payloads are laid out.
type Format struct {
	Precision Precision
	Order     binary.ByteOrder
}

// ParseFormat parses a precision and a byte order together.
func ParseFormat(precision, order string) (Format, error) {
	p, err := ParsePrecision(precision)
	if err != nil {
		return Format{}, err
	}
	bo, err := ParseByteOrder(order)
	if err != nil {
		return Format{}, err
	}
	return Format{Precision: p, Order: bo}, nil
}

func (f Format) order() binary.ByteOrder {
	if f.Order == nil {
		return binary.LittleEndian
	}
	return f.Order
}

func (f Format) String() string {
	return ByteOrderSymbol(f.order()) + f.Precision.String()
}
