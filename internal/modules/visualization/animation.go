package visualization

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// FrameLimits fixes the axis ranges of every animation frame so consecutive
// frames share a coordinate system. Derived once from the first frame.
type FrameLimits struct {
	XMaxNM float64
	PsiMax float64
	EMaxEV float64
}

// Frame renders one animation frame as a two-panel PNG: probability
// densities on the left, the potential with the two qubit energies on the
// right. Position is in nanometers and energy in electronvolts so the frames
// read in laboratory units.
func (r *Renderer) Frame(index int, t float64, xNM, ground, excited, vEV []float64, e1EV, e2EV float64, lim FrameLimits) error {
	const op = "frame"

	title := "Wave Functions Inside a Time-varying Potential at t=" +
		strconv.FormatFloat(t, 'g', 2, 64) + "s"

	left := plot.New()
	left.Title.Text = title
	left.X.Label.Text = "x (nm)"
	left.Y.Label.Text = "|ψ(x)|²"
	left.X.Min, left.X.Max = 0, lim.XMaxNM
	left.Y.Min, left.Y.Max = 0, lim.PsiMax
	left.Legend.Top = true

	gLine, err := plotter.NewLine(xys(xNM, ground))
	if err != nil {
		return renderErr(op, err)
	}
	gLine.Color = plotutil.Color(0)
	left.Add(gLine)
	left.Legend.Add("n = 1", gLine)

	eLine, err := plotter.NewLine(xys(xNM, excited))
	if err != nil {
		return renderErr(op, err)
	}
	eLine.Color = plotutil.Color(1)
	left.Add(eLine)
	left.Legend.Add("n = 2", eLine)

	right := plot.New()
	right.X.Label.Text = "x (nm)"
	right.Y.Label.Text = "E (eV)"
	right.X.Min, right.X.Max = 0, lim.XMaxNM
	right.Y.Min, right.Y.Max = 0, lim.EMaxEV
	right.Legend.Top = true

	vLine, err := plotter.NewLine(xys(xNM, vEV))
	if err != nil {
		return renderErr(op, err)
	}
	vLine.Color = plotutil.Color(2)
	right.Add(vLine)
	right.Legend.Add("V(x)", vLine)

	for i, lvl := range []struct {
		name  string
		value float64
	}{{"E1", e1EV}, {"E2", e2EV}} {
		line, err := plotter.NewLine(level(xNM, lvl.value))
		if err != nil {
			return renderErr(op, err)
		}
		line.Color = plotutil.Color(i)
		right.Add(line)
		right.Legend.Add(lvl.name, line)
	}

	img := vgimg.New(12*vg.Inch, 4*vg.Inch)
	dc := draw.New(img)
	plots := [][]*plot.Plot{{left, right}}
	canvases := plot.Align(plots, draw.Tiles{Rows: 1, Cols: 2}, dc)
	left.Draw(canvases[0][0])
	right.Draw(canvases[0][1])

	dir := filepath.Join(r.figuresDir, "frames")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return renderErr(op, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index))
	f, err := os.Create(path)
	if err != nil {
		return renderErr(op, err)
	}
	defer f.Close()

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		return renderErr(op, err)
	}
	r.log.Debug().Int("frame", index).Float64("time", t).Msg("frame rendered")
	return nil
}

// EncodeVideo stitches the rendered frames into an H.264 video with ffmpeg.
func (r *Renderer) EncodeVideo(ctx context.Context, videoPath string) error {
	const op = "encode video"

	pattern := filepath.Join(r.figuresDir, "frames", "frame-%04d.png")
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-framerate", "30",
		"-i", pattern,
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		videoPath,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return renderErr(op, fmt.Errorf("ffmpeg: %w: %s", err, output))
	}
	r.log.Info().Str("path", videoPath).Msg("video encoded")
	return nil
}
