package grid

import "math"

// Field is a dense nx×ny array stored longitude-major: the latitude index
// varies fastest. This is also the on-disk order of a record payload.
type Field struct {
	NX, NY int
	Data   []float64
}

// NewField allocates a zero field.
func NewField(nx, ny int) Field {
	return Field{NX: nx, NY: ny, Data: make([]float64, nx*ny)}
}

// Constant returns a field with every cell set to v.
func Constant(nx, ny int, v float64) Field {
	f := NewField(nx, ny)
	for k := range f.Data {
		f.Data[k] = v
	}
	return f
}

// FromRows builds a field from rows[i][j], i over longitude.
func FromRows(rows [][]float64) Field {
	nx := len(rows)
	ny := 0
	if nx > 0 {
		ny = len(rows[0])
	}
	f := NewField(nx, ny)
	for i, row := range rows {
		copy(f.Data[i*ny:(i+1)*ny], row)
	}
	return f
}

func (f Field) At(i, j int) float64 {
	return f.Data[i*f.NY+j]
}

func (f Field) Set(i, j int, v float64) {
	f.Data[i*f.NY+j] = v
}

// Rows returns the field as rows[i][j]. The rows share memory with f.
func (f Field) Rows() [][]float64 {
	rows := make([][]float64, f.NX)
	for i := range rows {
		rows[i] = f.Data[i*f.NY : (i+1)*f.NY]
	}
	return rows
}

// Max returns the largest value. A NaN anywhere makes the result NaN.
func (f Field) Max() float64 {
	return Reduce(f.Data, math.Max)
}

// Min returns the smallest value. A NaN anywhere makes the result NaN.
func (f Field) Min() float64 {
	return Reduce(f.Data, math.Min)
}

// Reduce folds xs with op, returning NaN for an empty slice. math.Max and
// math.Min both propagate NaN, which plain comparisons would drop.
func Reduce(xs []float64, op func(a, b float64) float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	r := xs[0]
	for _, x := range xs[1:] {
		r = op(r, x)
	}
	return r
}
