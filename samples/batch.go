// Package samples defines the batch type shared by the evaluators and the
// plot dispatcher: an ordered sequence of fixed-shape points, either flat
// vectors or h x w x c image tensors. A batch is owned by the caller and
// borrowed read-only by the evaluation core; every transforming operation
// returns a fresh batch.
package samples

import (
	"gonum.org/v1/gonum/mat"

	"github.com/mixturelab/ganeval/pkg/errors"
)

// Batch is an immutable batch of points with a common tensor shape.
// Vector batches use shape (1, dim, 1).
type Batch struct {
	n      int
	h      int
	w      int
	c      int
	data   []float64 // row-major, n * h * w * c
	images bool
}

// NewVector creates a batch of n flat points of dimension d.
// len(data) must equal n*d.
func NewVector(n, d int, data []float64) (*Batch, error) {
	if n < 0 || d <= 0 {
		return nil, errors.NewValueError("samples.NewVector", "n must be >= 0 and d > 0")
	}
	if len(data) != n*d {
		return nil, errors.NewDimensionError("samples.NewVector", n*d, len(data), 0)
	}
	return &Batch{n: n, h: 1, w: d, c: 1, data: data}, nil
}

// NewImages creates a batch of n images of shape h x w x c.
// len(data) must equal n*h*w*c.
func NewImages(n, h, w, c int, data []float64) (*Batch, error) {
	if n < 0 || h <= 0 || w <= 0 || c <= 0 {
		return nil, errors.NewValueError("samples.NewImages", "image dimensions must be positive")
	}
	if len(data) != n*h*w*c {
		return nil, errors.NewDimensionError("samples.NewImages", n*h*w*c, len(data), 0)
	}
	return &Batch{n: n, h: h, w: w, c: c, data: data, images: true}, nil
}

// Len returns the number of points in the batch.
func (b *Batch) Len() int { return b.n }

// Dim returns the flattened dimensionality of each point.
func (b *Batch) Dim() int { return b.h * b.w * b.c }

// Shape returns the per-point tensor shape (h, w, c).
func (b *Batch) Shape() (h, w, c int) { return b.h, b.w, b.c }

// IsImages reports whether the batch holds image tensors.
func (b *Batch) IsImages() bool { return b.images }

// Matrix returns an n x Dim dense view of the batch, each point flattened
// into one row. The view shares the batch's backing array; callers must
// treat it as read-only.
func (b *Batch) Matrix() *mat.Dense {
	if b.n == 0 {
		return &mat.Dense{}
	}
	return mat.NewDense(b.n, b.Dim(), b.data)
}

// Row returns the flattened values of point i. The slice shares the
// batch's backing array.
func (b *Batch) Row(i int) []float64 {
	d := b.Dim()
	return b.data[i*d : (i+1)*d]
}

// At returns the intensity of image i at (y, x, channel).
func (b *Batch) At(i, y, x, ch int) float64 {
	return b.data[((i*b.h+y)*b.w+x)*b.c+ch]
}

// Head returns a batch holding the first n points (all points when the
// batch is shorter). The returned batch shares the backing array.
func (b *Batch) Head(n int) *Batch {
	if n > b.n {
		n = b.n
	}
	head := *b
	head.n = n
	head.data = b.data[:n*b.Dim()]
	return &head
}

// Gather returns a new batch holding copies of the points at the given
// indices, in order.
func (b *Batch) Gather(indices []int) *Batch {
	d := b.Dim()
	data := make([]float64, 0, len(indices)*d)
	for _, i := range indices {
		data = append(data, b.Row(i)...)
	}
	out := *b
	out.n = len(indices)
	out.data = data
	return &out
}

// ToUnitRange maps a batch from the symmetric [-1, 1] convention to
// [0, 1]: x/2 + 0.5.
func ToUnitRange(b *Batch) *Batch {
	return b.apply(func(x float64) float64 { return x/2 + 0.5 })
}

// ToSymRange maps a batch from [0, 1] back to the symmetric [-1, 1]
// convention: 2*(x - 0.5).
func ToSymRange(b *Batch) *Batch {
	return b.apply(func(x float64) float64 { return 2 * (x - 0.5) })
}

func (b *Batch) apply(f func(float64) float64) *Batch {
	data := make([]float64, len(b.data))
	for i, v := range b.data {
		data[i] = f(v)
	}
	out := *b
	out.data = data
	return &out
}
