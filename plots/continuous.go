package plots

import (
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/mixturelab/ganeval/pkg/errors"
	"github.com/mixturelab/ganeval/pkg/log"
	"github.com/mixturelab/ganeval/samples"
)

var (
	realColor   = color.RGBA{R: 220, A: 255}
	fakeColor   = color.RGBA{B: 220, A: 255}
	weightColor = color.RGBA{G: 160, A: 255}
)

// plot1D overlays density-normalized histograms of the real and fake
// scalars and, when weights are given, a weight curve over the sorted real
// points scaled to 80% of the tallest histogram bin.
func (d *Dispatcher) plot1D(step int, realPoints, fakePoints *samples.Batch, weights []float64, prefix string) error {
	maxVal := d.cfg.MaxVal * 1.2
	p := plot.New()
	p.X.Min, p.X.Max = -maxVal, maxVal

	var maxDensity float64
	addHist := func(b *samples.Batch, col color.RGBA) error {
		if b == nil || b.Len() == 0 {
			return nil
		}
		vals := make(plotter.Values, b.Len())
		for i := range vals {
			vals[i] = b.Row(i)[0]
		}
		h, err := plotter.NewHist(vals, 100)
		if err != nil {
			return errors.Wrap(err, "building histogram")
		}
		h.Normalize(1)
		h.FillColor = nil
		h.LineStyle.Color = col
		h.LineStyle.Width = vg.Points(2)
		for _, bin := range h.Bins {
			if bin.Weight > maxDensity {
				maxDensity = bin.Weight
			}
		}
		p.Add(h)
		return nil
	}
	if err := addHist(realPoints, realColor); err != nil {
		return err
	}
	if err := addHist(fakePoints, fakeColor); err != nil {
		return err
	}

	if weights != nil && realPoints != nil && realPoints.Len() > 0 {
		line, err := weightCurve(realPoints, weights, maxDensity)
		if err != nil {
			return err
		}
		p.Add(line)
		p.Legend.Add("weights", line)
		p.Legend.Top = true
		p.Legend.Left = true
	}

	path, err := d.outFile(mixtureFile(prefix, step, 2))
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "saving 1-d mixture plot")
	}
	d.logger.Debug("wrote plot", log.OperationKey, "plot", log.StepKey, step, "file", path)
	return nil
}

// weightCurve sorts the real points and scales the weight vector so its
// peak sits at 80% of the tallest density bin.
func weightCurve(realPoints *samples.Batch, weights []float64, maxDensity float64) (*plotter.Line, error) {
	type pair struct{ x, w float64 }
	pairs := make([]pair, realPoints.Len())
	maxW := 0.0
	for i := range pairs {
		pairs[i] = pair{x: realPoints.Row(i)[0], w: weights[i]}
		if weights[i] > maxW {
			maxW = weights[i]
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].x < pairs[j].x })

	scale := 1.0
	if maxW > 0 {
		scale = maxDensity * 0.8 / maxW
	}
	xys := make(plotter.XYs, len(pairs))
	for i, pr := range pairs {
		xys[i].X = pr.x
		xys[i].Y = pr.w * scale
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, errors.Wrap(err, "building weight curve")
	}
	line.Color = weightColor
	line.Width = vg.Points(3)
	return line, nil
}

// plot2D overlays scatter plots of the real and fake 2-vectors and, when
// weights are given, writes a second scatter of the real points colored by
// weight.
func (d *Dispatcher) plot2D(step int, realPoints, fakePoints *samples.Batch, weights []float64, prefix string) error {
	maxVal := d.cfg.MaxVal * 2
	p := plot.New()
	p.X.Min, p.X.Max = -maxVal, maxVal
	p.Y.Min, p.Y.Max = -maxVal, maxVal
	p.Legend.Top = true
	p.Legend.Left = true

	addScatter := func(b *samples.Batch, col color.RGBA, label string) error {
		if b == nil || b.Len() == 0 {
			return nil
		}
		s, err := plotter.NewScatter(batchXYs(b))
		if err != nil {
			return errors.Wrap(err, "building scatter")
		}
		s.GlyphStyle.Color = col
		s.GlyphStyle.Radius = vg.Points(2)
		p.Add(s)
		p.Legend.Add(label, s)
		return nil
	}
	if err := addScatter(realPoints, realColor, "real"); err != nil {
		return err
	}
	if err := addScatter(fakePoints, fakeColor, "fake"); err != nil {
		return err
	}

	path, err := d.outFile(mixtureFile(prefix, step, 2))
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return errors.Wrap(err, "saving 2-d mixture plot")
	}
	d.logger.Debug("wrote plot", log.OperationKey, "plot", log.StepKey, step, "file", path)

	if weights == nil || realPoints == nil || realPoints.Len() == 0 {
		return nil
	}
	return d.plotWeights2D(step, realPoints, weights, prefix, maxVal)
}

// plotWeights2D colors the real points by their current mixture weight.
func (d *Dispatcher) plotWeights2D(step int, realPoints *samples.Batch, weights []float64, prefix string, maxVal float64) error {
	p := plot.New()
	p.X.Min, p.X.Max = -maxVal, maxVal
	p.Y.Min, p.Y.Max = -maxVal, maxVal

	s, err := plotter.NewScatter(batchXYs(realPoints))
	if err != nil {
		return errors.Wrap(err, "building weight scatter")
	}
	colors := palette.Heat(12, 1).Colors()
	maxW := 0.0
	for _, w := range weights {
		if w > maxW {
			maxW = w
		}
	}
	s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		idx := 0
		if maxW > 0 {
			idx = int(weights[i] / maxW * float64(len(colors)-1))
		}
		return draw.GlyphStyle{
			Color:  colors[idx],
			Radius: vg.Points(3),
			Shape:  draw.CircleGlyph{},
		}
	}
	p.Add(s)

	path, err := d.outFile(weightsFile(prefix, step))
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return errors.Wrap(err, "saving weights plot")
	}
	d.logger.Debug("wrote plot", log.OperationKey, "plot", log.StepKey, step, "file", path)
	return nil
}

func batchXYs(b *samples.Batch) plotter.XYs {
	xys := make(plotter.XYs, b.Len())
	for i := range xys {
		row := b.Row(i)
		xys[i].X = row[0]
		xys[i].Y = row[1]
	}
	return xys
}
