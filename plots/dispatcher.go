// Package plots renders the diagnostic images of the evaluation cycle:
// histogram and scatter overlays of real against fake points for
// continuous data, weight overlays for the boosting mixture, and tiled
// sample galleries for image data.
package plots

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mixturelab/ganeval/eval"
	"github.com/mixturelab/ganeval/pkg/errors"
	"github.com/mixturelab/ganeval/pkg/log"
	"github.com/mixturelab/ganeval/samples"
)

// Dispatcher routes batches to the visualization routine selected by the
// configured dataset kind and writes the resulting PNG files to the
// output directory.
type Dispatcher struct {
	cfg    eval.Config
	logger log.Logger
}

// NewDispatcher creates a Dispatcher for a validated configuration.
func NewDispatcher(cfg eval.Config) (*Dispatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Dispatcher{
		cfg:    cfg,
		logger: log.GetLoggerWithName("plots"),
	}, nil
}

// MakePlots renders the diagnostic plots for one step. For continuous
// kinds real and fake are overlaid and an optional weight vector over the
// real points is drawn alongside; for image kinds the fake batch is tiled
// into a mosaic. weights, when non-nil, must match the real batch length.
func (d *Dispatcher) MakePlots(step int, realPoints, fakePoints *samples.Batch, weights []float64, prefix string) error {
	if weights != nil && realPoints != nil && len(weights) != realPoints.Len() {
		return errors.NewDimensionError("Dispatcher.MakePlots", realPoints.Len(), len(weights), 0)
	}

	switch d.cfg.Kind {
	case eval.Continuous1D:
		return d.plot1D(step, realPoints, fakePoints, weights, prefix)
	case eval.Continuous2D:
		return d.plot2D(step, realPoints, fakePoints, weights, prefix)
	case eval.DiscreteSingle, eval.DiscreteComposite:
		return d.saveImageGrid(step, fakePoints, prefix, nil)
	default:
		return errors.WithStack(errors.ErrUnsupportedKind)
	}
}

// SaveModeGallery tiles one representative point per covered mode. It
// implements eval.GalleryPlotter.
func (d *Dispatcher) SaveModeGallery(step int, points *samples.Batch, prefix string) error {
	return d.saveImageGrid(step, points, prefix, nil)
}

// MakeImageGrid tiles the fake batch into a mosaic with optional
// auxiliary subplots. The auxiliary series travel with the request; the
// dispatcher holds no plotting state across calls.
func (d *Dispatcher) MakeImageGrid(step int, fakePoints *samples.Batch, prefix string, aux *Aux) error {
	return d.saveImageGrid(step, fakePoints, prefix, aux)
}

// outFile ensures the output directory exists and returns the full path
// for a plot file.
func (d *Dispatcher) outFile(name string) (string, error) {
	if d.cfg.OutDir != "" {
		if err := os.MkdirAll(d.cfg.OutDir, 0o755); err != nil {
			return "", errors.Wrap(err, "creating output directory")
		}
	}
	return filepath.Join(d.cfg.OutDir, name), nil
}

func mixtureFile(prefix string, step, width int) string {
	return fmt.Sprintf("%smixture%0*d.png", prefix, width, step)
}

func weightsFile(prefix string, step int) string {
	return fmt.Sprintf("%sweights%02d.png", prefix, step)
}
