package plots

import (
	"image"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixturelab/ganeval/eval"
	"github.com/mixturelab/ganeval/samples"
)

func scalarBatch(t *testing.T, n int, seed int64) *samples.Batch {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, n)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	b, err := samples.NewVector(n, 1, data)
	require.NoError(t, err)
	return b
}

func planarBatch(t *testing.T, n int, seed int64) *samples.Batch {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, 2*n)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	b, err := samples.NewVector(n, 2, data)
	require.NoError(t, err)
	return b
}

func grayImageBatch(t *testing.T, n, h, w int, seed int64) *samples.Batch {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, n*h*w)
	for i := range data {
		data[i] = rng.Float64()
	}
	b, err := samples.NewImages(n, h, w, 1, data)
	require.NoError(t, err)
	return b
}

func uniformWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1.0 / float64(n)
	}
	return w
}

func requirePNG(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err, "expected plot file %s", path)
	assert.Greater(t, info.Size(), int64(0))
}

func TestNewDispatcherRejectsInvalidConfig(t *testing.T) {
	_, err := NewDispatcher(eval.Config{Kind: eval.Unsupported})
	assert.Error(t, err)
}

func TestMakePlots1DWritesMixtureFile(t *testing.T) {
	cfg := eval.DefaultConfig(eval.Continuous1D)
	cfg.OutDir = t.TempDir()
	d, err := NewDispatcher(cfg)
	require.NoError(t, err)

	real := scalarBatch(t, 200, 1)
	fake := scalarBatch(t, 200, 2)
	require.NoError(t, d.MakePlots(3, real, fake, uniformWeights(real.Len()), ""))

	requirePNG(t, filepath.Join(cfg.OutDir, "mixture03.png"))
}

func TestMakePlots2DWritesMixtureAndWeightsFiles(t *testing.T) {
	cfg := eval.DefaultConfig(eval.Continuous2D)
	cfg.OutDir = t.TempDir()
	d, err := NewDispatcher(cfg)
	require.NoError(t, err)

	real := planarBatch(t, 150, 3)
	fake := planarBatch(t, 150, 4)
	require.NoError(t, d.MakePlots(7, real, fake, uniformWeights(real.Len()), "run0_"))

	requirePNG(t, filepath.Join(cfg.OutDir, "run0_mixture07.png"))
	requirePNG(t, filepath.Join(cfg.OutDir, "run0_weights07.png"))
}

func TestMakePlots2DWithoutWeightsSkipsWeightsFile(t *testing.T) {
	cfg := eval.DefaultConfig(eval.Continuous2D)
	cfg.OutDir = t.TempDir()
	d, err := NewDispatcher(cfg)
	require.NoError(t, err)

	require.NoError(t, d.MakePlots(1, planarBatch(t, 50, 5), planarBatch(t, 50, 6), nil, ""))

	requirePNG(t, filepath.Join(cfg.OutDir, "mixture01.png"))
	_, err = os.Stat(filepath.Join(cfg.OutDir, "weights01.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestMakePlotsWeightLengthMismatch(t *testing.T) {
	cfg := eval.DefaultConfig(eval.Continuous1D)
	cfg.OutDir = t.TempDir()
	d, err := NewDispatcher(cfg)
	require.NoError(t, err)

	real := scalarBatch(t, 10, 7)
	err = d.MakePlots(0, real, scalarBatch(t, 10, 8), uniformWeights(5), "")
	assert.Error(t, err)
}

func TestSaveModeGalleryFilename(t *testing.T) {
	cfg := eval.DefaultConfig(eval.DiscreteSingle)
	cfg.OutDir = t.TempDir()
	d, err := NewDispatcher(cfg)
	require.NoError(t, err)

	require.NoError(t, d.SaveModeGallery(12, grayImageBatch(t, 4, 8, 8, 9), "modes_"))

	requirePNG(t, filepath.Join(cfg.OutDir, "modes_mixture000012.png"))
}

func TestMakeImageGridWithAux(t *testing.T) {
	cfg := eval.DefaultConfig(eval.DiscreteSingle)
	cfg.OutDir = t.TempDir()
	cfg.NormalizeSym = true
	d, err := NewDispatcher(cfg)
	require.NoError(t, err)

	aux := &Aux{
		Losses:       []float64{0.9, 0.4, -0.1, 0.2},
		PlotEvery:    cfg.PlotEvery,
		Latent:       planarBatch(t, 30, 10),
		LatentLabels: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	}
	require.NoError(t, d.MakeImageGrid(42, grayImageBatch(t, 20, 8, 8, 11), "", aux))

	requirePNG(t, filepath.Join(cfg.OutDir, "mixture000042.png"))
}

func TestMakeImageGridRejectsEmptyBatch(t *testing.T) {
	cfg := eval.DefaultConfig(eval.DiscreteSingle)
	cfg.OutDir = t.TempDir()
	d, err := NewDispatcher(cfg)
	require.NoError(t, err)

	empty, err := samples.NewImages(0, 8, 8, 1, nil)
	require.NoError(t, err)
	assert.Error(t, d.saveImageGrid(0, empty, "", nil))
}

func TestComposeMosaicPadsLastColumn(t *testing.T) {
	tiles := make([]*image.RGBA, 5)
	for i := range tiles {
		tiles[i] = image.NewRGBA(image.Rect(0, 0, 4, 6))
	}

	mosaic := composeMosaic(tiles, 3)

	// 5 tiles in columns of 3 need 2 columns; the second holds a blank pad.
	assert.Equal(t, 2*4, mosaic.Bounds().Dx())
	assert.Equal(t, 3*6, mosaic.Bounds().Dy())
	pad := mosaic.RGBAAt(5, 13)
	assert.Equal(t, uint8(255), pad.R)
	assert.Equal(t, uint8(255), pad.G)
	assert.Equal(t, uint8(255), pad.B)
}

func TestComposeMosaicFewerThanMaxRows(t *testing.T) {
	tiles := make([]*image.RGBA, 2)
	for i := range tiles {
		tiles[i] = image.NewRGBA(image.Rect(0, 0, 4, 4))
	}

	mosaic := composeMosaic(tiles, 16)

	assert.Equal(t, 4, mosaic.Bounds().Dx())
	assert.Equal(t, 2*4, mosaic.Bounds().Dy())
}

func TestRenderTilesCompositeWidthConcatenation(t *testing.T) {
	cfg := eval.DefaultConfig(eval.DiscreteComposite)
	cfg.OutDir = t.TempDir()
	d, err := NewDispatcher(cfg)
	require.NoError(t, err)

	batch := grayImageBatch(t, 2, 8, 12, 13)
	tiles, err := d.renderTiles(batch)
	require.NoError(t, err)
	require.Len(t, tiles, 2)
	// Three 4-wide digits laid side by side keep the original tile width.
	assert.Equal(t, 12, tiles[0].Bounds().Dx())
	assert.Equal(t, 8, tiles[0].Bounds().Dy())
}

func TestPointImageInversion(t *testing.T) {
	b, err := samples.NewImages(1, 1, 2, 1, []float64{0, 1})
	require.NoError(t, err)

	img := pointImage(b, 0, true)

	assert.Equal(t, uint8(255), img.RGBAAt(0, 0).R)
	assert.Equal(t, uint8(0), img.RGBAAt(1, 0).R)
}
