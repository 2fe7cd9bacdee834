package samples

import (
	"github.com/mixturelab/ganeval/pkg/errors"
)

// SplitTriple splits each composite image into its three digit sub-images.
// When byChannel is true the digits are stacked in the channel axis
// (c must be 3, sub-images are h x w x 1); otherwise they are concatenated
// in width (w must be divisible by 3, sub-images are h x w/3 x c).
func SplitTriple(b *Batch, byChannel bool) (first, second, third *Batch, err error) {
	if !b.images {
		return nil, nil, nil, errors.NewValueError("samples.SplitTriple", "batch does not hold images")
	}
	if byChannel {
		return splitChannels(b)
	}
	return splitWidth(b)
}

func splitChannels(b *Batch) (*Batch, *Batch, *Batch, error) {
	if b.c != 3 {
		return nil, nil, nil, errors.NewInputShapeError("samples.SplitTriple",
			[]int{b.h, b.w, 3}, []int{b.h, b.w, b.c})
	}
	subs := make([][]float64, 3)
	for k := range subs {
		subs[k] = make([]float64, b.n*b.h*b.w)
	}
	idx := 0
	for i := 0; i < b.n; i++ {
		for y := 0; y < b.h; y++ {
			for x := 0; x < b.w; x++ {
				for k := 0; k < 3; k++ {
					subs[k][idx] = b.At(i, y, x, k)
				}
				idx++
			}
		}
	}
	out := make([]*Batch, 3)
	for k := range out {
		out[k] = &Batch{n: b.n, h: b.h, w: b.w, c: 1, data: subs[k], images: true}
	}
	return out[0], out[1], out[2], nil
}

func splitWidth(b *Batch) (*Batch, *Batch, *Batch, error) {
	if b.w%3 != 0 {
		return nil, nil, nil, errors.NewInputShapeError("samples.SplitTriple",
			[]int{b.h, -3, b.c}, []int{b.h, b.w, b.c})
	}
	w3 := b.w / 3
	subs := make([][]float64, 3)
	for k := range subs {
		subs[k] = make([]float64, 0, b.n*b.h*w3*b.c)
	}
	for i := 0; i < b.n; i++ {
		for y := 0; y < b.h; y++ {
			for k := 0; k < 3; k++ {
				for x := k * w3; x < (k+1)*w3; x++ {
					for ch := 0; ch < b.c; ch++ {
						subs[k] = append(subs[k], b.At(i, y, x, ch))
					}
				}
			}
		}
	}
	out := make([]*Batch, 3)
	for k := range out {
		out[k] = &Batch{n: b.n, h: b.h, w: w3, c: b.c, data: subs[k], images: true}
	}
	return out[0], out[1], out[2], nil
}
