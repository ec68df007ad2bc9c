package visualization

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRenderer(t *testing.T) (*Renderer, string) {
	t.Helper()
	dir := t.TempDir()
	return NewRenderer(dir, zerolog.Nop()), dir
}

func ramp(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}
	return x
}

func TestShapeWritesFile(t *testing.T) {
	r, dir := testRenderer(t)

	x := ramp(50)
	v := make([]float64, 50)
	for i := range v {
		v[i] = float64(i * i)
	}
	require.NoError(t, r.Shape(x, v))

	info, err := os.Stat(filepath.Join(dir, "shape.png"))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestEnergyLevelsWritesFile(t *testing.T) {
	r, dir := testRenderer(t)

	x := ramp(50)
	v := make([]float64, 50)
	for i := range v {
		v[i] = 0.01 * float64(i)
	}
	require.NoError(t, r.EnergyLevels(x, v, 0.1, 0.2, 0.3, "0"))

	info, err := os.Stat(filepath.Join(dir, "Energies", "energies-0.svg"))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWavefunctionsWritesFile(t *testing.T) {
	r, dir := testRenderer(t)

	x := ramp(50)
	g := make([]float64, 50)
	e := make([]float64, 50)
	for i := range g {
		g[i] = float64(i) / 50
		e[i] = 1 - g[i]
	}
	require.NoError(t, r.Wavefunctions(x, g, e, "0"))

	info, err := os.Stat(filepath.Join(dir, "PDFs", "pdf-0.svg"))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestFrameWritesIndexedFile(t *testing.T) {
	r, dir := testRenderer(t)

	x := ramp(30)
	g := make([]float64, 30)
	e := make([]float64, 30)
	v := make([]float64, 30)
	for i := range g {
		g[i] = 0.05
		e[i] = 0.03
		v[i] = 0.001 * float64(i)
	}
	lim := FrameLimits{XMaxNM: 30, PsiMax: 0.1, EMaxEV: 0.05}
	require.NoError(t, r.Frame(7, 1.25e-12, x, g, e, v, 0.01, 0.02, lim))

	info, err := os.Stat(filepath.Join(dir, "frames", "frame-0007.png"))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestEncodeVideo(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not installed")
	}

	r, dir := testRenderer(t)
	x := ramp(30)
	flat := make([]float64, 30)
	lim := FrameLimits{XMaxNM: 30, PsiMax: 1, EMaxEV: 1}
	for i := 0; i < 3; i++ {
		require.NoError(t, r.Frame(i, float64(i), x, flat, flat, flat, 0.1, 0.2, lim))
	}

	videoPath := filepath.Join(dir, "out.mp4")
	require.NoError(t, r.EncodeVideo(context.Background(), videoPath))

	info, err := os.Stat(videoPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderErrorUnwraps(t *testing.T) {
	sentinel := errors.New("boom")
	err := renderErr("test op", sentinel)
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)

	var rerr *RenderError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "test op", rerr.Op)

	assert.NoError(t, renderErr("test op", nil))
}
