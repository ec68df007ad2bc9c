// Package visualization renders simulation output to image files with
// gonum/plot and stitches animation frames into a video through ffmpeg.
package visualization

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Renderer writes figures beneath a single output directory, creating
// subdirectories as needed.
type Renderer struct {
	figuresDir string
	log        zerolog.Logger
}

func NewRenderer(figuresDir string, log zerolog.Logger) *Renderer {
	return &Renderer{
		figuresDir: figuresDir,
		log:        log.With().Str("component", "visualization").Logger(),
	}
}

// Shape plots the potential profile as a scatter and writes it to shape.png.
func (r *Renderer) Shape(x, v []float64) error {
	const op = "shape"

	p := plot.New()
	p.Title.Text = "Potential Shape"
	p.X.Label.Text = "x (au)"
	p.Y.Label.Text = "V (H)"

	s, err := plotter.NewScatter(xys(x, v))
	if err != nil {
		return renderErr(op, err)
	}
	s.GlyphStyle.Color = plotutil.Color(0)
	s.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(s)

	path := filepath.Join(r.figuresDir, "shape.png")
	if err := r.save(p, path); err != nil {
		return renderErr(op, err)
	}
	r.log.Info().Str("path", path).Msg("potential shape rendered")
	return nil
}

// EnergyLevels plots the potential profile together with the three lowest
// orbital energies as horizontal lines, the third dashed to mark the first
// level outside the qubit subspace. The tag distinguishes output files of
// successive pulse positions.
func (r *Renderer) EnergyLevels(x, v []float64, e1, e2, e3 float64, tag string) error {
	const op = "energy levels"

	p := plot.New()
	p.Title.Text = "Energy Levels"
	p.X.Label.Text = "x (au)"
	p.Y.Label.Text = "E (H)"
	p.Legend.Top = true

	vLine, err := plotter.NewLine(xys(x, v))
	if err != nil {
		return renderErr(op, err)
	}
	vLine.Color = plotutil.Color(0)
	p.Add(vLine)
	p.Legend.Add("V(x)", vLine)

	levels := []struct {
		name   string
		value  float64
		dashed bool
	}{
		{"E1", e1, false},
		{"E2", e2, false},
		{"E3", e3, true},
	}
	for i, lvl := range levels {
		line, err := plotter.NewLine(level(x, lvl.value))
		if err != nil {
			return renderErr(op, err)
		}
		line.Color = plotutil.Color(i + 1)
		if lvl.dashed {
			line.Dashes = plotutil.Dashes(1)
		}
		p.Add(line)
		p.Legend.Add(lvl.name, line)
	}

	path := filepath.Join(r.figuresDir, "Energies", fmt.Sprintf("energies-%s.svg", tag))
	if err := r.save(p, path); err != nil {
		return renderErr(op, err)
	}
	r.log.Info().Str("path", path).Msg("energy levels rendered")
	return nil
}

// Wavefunctions plots the probability densities of the two lowest orbital
// levels against position.
func (r *Renderer) Wavefunctions(x, ground, excited []float64, tag string) error {
	const op = "wavefunctions"

	p := plot.New()
	p.Title.Text = "Probability Densities"
	p.X.Label.Text = "x (au)"
	p.Y.Label.Text = "|ψ(x)|²"
	p.Legend.Top = true

	gLine, err := plotter.NewLine(xys(x, ground))
	if err != nil {
		return renderErr(op, err)
	}
	gLine.Color = plotutil.Color(0)
	p.Add(gLine)
	p.Legend.Add("n = 1", gLine)

	eLine, err := plotter.NewLine(xys(x, excited))
	if err != nil {
		return renderErr(op, err)
	}
	eLine.Color = plotutil.Color(1)
	p.Add(eLine)
	p.Legend.Add("n = 2", eLine)

	path := filepath.Join(r.figuresDir, "PDFs", fmt.Sprintf("pdf-%s.svg", tag))
	if err := r.save(p, path); err != nil {
		return renderErr(op, err)
	}
	r.log.Info().Str("path", path).Msg("wavefunctions rendered")
	return nil
}

// save creates the parent directory if needed and writes the plot, with the
// image format taken from the file extension.
func (r *Renderer) save(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}

// level builds a horizontal line at height e spanning the x range.
func level(x []float64, e float64) plotter.XYs {
	return plotter.XYs{{X: x[0], Y: e}, {X: x[len(x)-1], Y: e}}
}
