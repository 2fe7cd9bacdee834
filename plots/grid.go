package plots

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/mixturelab/ganeval/eval"
	"github.com/mixturelab/ganeval/pkg/errors"
	"github.com/mixturelab/ganeval/pkg/log"
	"github.com/mixturelab/ganeval/samples"
)

// Aux carries the optional auxiliary series appended below an image grid.
// A plot request owns its series; nothing is cached across calls.
type Aux struct {
	// Losses is the per-plot-interval loss history rendered as a log-scale
	// curve.
	Losses []float64

	// PlotEvery spaces the loss curve's x axis in steps.
	PlotEvery int

	// Latent optionally holds 2-vector latent coordinates of the plotted
	// samples.
	Latent *samples.Batch

	// LatentLabels optionally colors the latent scatter by label.
	LatentLabels []int
}

// saveImageGrid tiles the batch into a row/column mosaic and writes it as
// {prefix}mixture{step:06d}.png, appending the auxiliary subplots when
// given. Digit intensities are inverted so strokes render dark on white,
// and the last column is padded with blank tiles when the count does not
// divide evenly.
func (d *Dispatcher) saveImageGrid(step int, batch *samples.Batch, prefix string, aux *Aux) error {
	if batch == nil || batch.Len() == 0 {
		return errors.NewValueError("Dispatcher.saveImageGrid", "no points to plot")
	}

	work := batch
	if d.cfg.NormalizeSym {
		work = samples.ToUnitRange(batch)
	}

	tiles, err := d.renderTiles(work)
	if err != nil {
		return err
	}
	mosaic := composeMosaic(tiles, d.cfg.MaxRows)

	out := image.Image(mosaic)
	if aux != nil && len(aux.Losses) > 0 {
		auxImg, err := renderAux(aux, mosaic.Bounds().Dx())
		if err != nil {
			return err
		}
		out = stackVertically(mosaic, auxImg)
	}

	path, err := d.outFile(mixtureFile(prefix, step, 6))
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating grid file")
	}
	defer f.Close()
	if err := png.Encode(f, out); err != nil {
		return errors.Wrap(err, "encoding grid png")
	}
	d.logger.Debug("wrote plot",
		log.OperationKey, "plot",
		log.StepKey, step,
		log.SamplesKey, batch.Len(),
		"file", path,
	)
	return nil
}

// renderTiles converts each point into one mosaic tile. Composite points
// are split into their three digits and laid side by side.
func (d *Dispatcher) renderTiles(batch *samples.Batch) ([]*image.RGBA, error) {
	if d.cfg.Kind == eval.DiscreteComposite {
		first, second, third, err := samples.SplitTriple(batch, d.cfg.CompositeByChannel)
		if err != nil {
			return nil, err
		}
		tiles := make([]*image.RGBA, batch.Len())
		for i := range tiles {
			digits := []*image.RGBA{
				pointImage(first, i, true),
				pointImage(second, i, true),
				pointImage(third, i, true),
			}
			tiles[i] = concatHorizontally(digits)
		}
		return tiles, nil
	}

	tiles := make([]*image.RGBA, batch.Len())
	for i := range tiles {
		tiles[i] = pointImage(batch, i, true)
	}
	return tiles, nil
}

// pointImage rasterizes point i of the batch, optionally inverting the
// intensities.
func pointImage(batch *samples.Batch, i int, invert bool) *image.RGBA {
	h, w, c := batch.Shape()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b float64
			if c >= 3 {
				r, g, b = batch.At(i, y, x, 0), batch.At(i, y, x, 1), batch.At(i, y, x, 2)
			} else {
				v := batch.At(i, y, x, 0)
				r, g, b = v, v, v
			}
			if invert {
				r, g, b = 1-r, 1-g, 1-b
			}
			img.SetRGBA(x, y, color.RGBA{R: toByte(r), G: toByte(g), B: toByte(b), A: 255})
		}
	}
	return img
}

func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// composeMosaic lays the tiles out in columns of at most maxRows tiles,
// padding the final column with blank tiles.
func composeMosaic(tiles []*image.RGBA, maxRows int) *image.RGBA {
	numTiles := len(tiles)
	numCols := (numTiles + maxRows - 1) / maxRows
	rows := numTiles
	if rows > maxRows {
		rows = maxRows
	}

	tw := tiles[0].Bounds().Dx()
	th := tiles[0].Bounds().Dy()
	mosaic := image.NewRGBA(image.Rect(0, 0, numCols*tw, rows*th))
	draw.Draw(mosaic, mosaic.Bounds(), image.White, image.Point{}, draw.Src)

	for i, tile := range tiles {
		col := i / maxRows
		row := i % maxRows
		target := image.Rect(col*tw, row*th, (col+1)*tw, (row+1)*th)
		draw.Draw(mosaic, target, tile, tile.Bounds().Min, draw.Src)
	}
	return mosaic
}

func concatHorizontally(imgs []*image.RGBA) *image.RGBA {
	h := imgs[0].Bounds().Dy()
	totalW := 0
	for _, img := range imgs {
		totalW += img.Bounds().Dx()
	}
	out := image.NewRGBA(image.Rect(0, 0, totalW, h))
	x := 0
	for _, img := range imgs {
		w := img.Bounds().Dx()
		draw.Draw(out, image.Rect(x, 0, x+w, h), img, img.Bounds().Min, draw.Src)
		x += w
	}
	return out
}

func stackVertically(top, bottom image.Image) image.Image {
	tb, bb := top.Bounds(), bottom.Bounds()
	w := tb.Dx()
	if bb.Dx() > w {
		w = bb.Dx()
	}
	out := image.NewRGBA(image.Rect(0, 0, w, tb.Dy()+bb.Dy()))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, tb.Dx(), tb.Dy()), top, tb.Min, draw.Src)
	draw.Draw(out, image.Rect(0, tb.Dy(), bb.Dx(), tb.Dy()+bb.Dy()), bottom, bb.Min, draw.Src)
	return out
}

// renderAux renders the loss curve and, when latent coordinates are
// given, a latent-space scatter beside it.
func renderAux(aux *Aux, widthPx int) (image.Image, error) {
	curve, err := lossCurvePlot(aux)
	if err != nil {
		return nil, err
	}

	if aux.Latent == nil || aux.Latent.Len() == 0 {
		return renderPlot(curve, widthPx, widthPx/2), nil
	}

	latent, err := latentScatterPlot(aux)
	if err != nil {
		return nil, err
	}
	left := renderPlot(curve, widthPx/2, widthPx/2)
	right := renderPlot(latent, widthPx-widthPx/2, widthPx/2)
	return concatImages(left, right), nil
}

// lossCurvePlot plots the loss history on a shifted log scale, offsetting
// negative histories so the logarithm stays defined.
func lossCurvePlot(aux *Aux) (*plot.Plot, error) {
	minLoss := aux.Losses[0]
	for _, y := range aux.Losses {
		if y < minLoss {
			minLoss = y
		}
	}
	delta := 0.0
	if minLoss < 0 {
		delta = -minLoss
	}

	every := aux.PlotEvery
	if every <= 0 {
		every = 1
	}
	xys := make(plotter.XYs, len(aux.Losses))
	for i, y := range aux.Losses {
		xys[i].X = float64((i + 1) * every)
		xys[i].Y = math.Log(1e-07 + delta + y)
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, errors.Wrap(err, "building loss curve")
	}
	p := plot.New()
	p.Add(line)
	return p, nil
}

func latentScatterPlot(aux *Aux) (*plot.Plot, error) {
	s, err := plotter.NewScatter(batchXYs(aux.Latent))
	if err != nil {
		return nil, errors.Wrap(err, "building latent scatter")
	}
	if len(aux.LatentLabels) == aux.Latent.Len() {
		colors := labelColors()
		s.GlyphStyleFunc = func(i int) vgdraw.GlyphStyle {
			return vgdraw.GlyphStyle{
				Color:  colors[aux.LatentLabels[i]%len(colors)],
				Radius: vg.Points(2),
				Shape:  vgdraw.CircleGlyph{},
			}
		}
	} else {
		s.GlyphStyle.Color = fakeColor
		s.GlyphStyle.Radius = vg.Points(2)
	}
	p := plot.New()
	p.Add(s)
	return p, nil
}

func labelColors() []color.Color {
	return []color.Color{
		color.RGBA{R: 220, A: 255},
		color.RGBA{G: 160, A: 255},
		color.RGBA{B: 220, A: 255},
		color.RGBA{R: 220, G: 160, A: 255},
		color.RGBA{R: 220, B: 220, A: 255},
		color.RGBA{G: 160, B: 220, A: 255},
		color.RGBA{R: 120, G: 120, B: 120, A: 255},
		color.RGBA{R: 220, G: 120, B: 40, A: 255},
		color.RGBA{R: 40, G: 120, B: 220, A: 255},
		color.RGBA{R: 120, G: 40, B: 220, A: 255},
	}
}

// renderPlot rasterizes a plot at the given pixel size.
func renderPlot(p *plot.Plot, widthPx, heightPx int) image.Image {
	dpi := 96.0
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(float64(widthPx)/dpi)*vg.Inch, vg.Length(float64(heightPx)/dpi)*vg.Inch),
		vgimg.UseDPI(int(dpi)),
	)
	p.Draw(vgdraw.New(c))
	return c.Image()
}

func concatImages(left, right image.Image) image.Image {
	lb, rb := left.Bounds(), right.Bounds()
	h := lb.Dy()
	if rb.Dy() > h {
		h = rb.Dy()
	}
	out := image.NewRGBA(image.Rect(0, 0, lb.Dx()+rb.Dx(), h))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, lb.Dx(), lb.Dy()), left, lb.Min, draw.Src)
	draw.Draw(out, image.Rect(lb.Dx(), 0, lb.Dx()+rb.Dx(), rb.Dy()), right, rb.Min, draw.Src)
	return out
}
