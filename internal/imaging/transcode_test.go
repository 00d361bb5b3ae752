package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.png")

	file, err := os.Create(path)
	require.NoError(t, err)

	require.NoError(t, png.Encode(file, img))
	require.NoError(t, file.Close())

	return path
}

func solidImage(alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := range 32 {
		for x := range 32 {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: alpha})
		}
	}

	return img
}

func TestTranscodeOpaque(t *testing.T) {
	t.Parallel()

	inputPath := writePNG(t, solidImage(255))
	outputPath := filepath.Join(t.TempDir(), "out.webp")

	stats, err := Transcode(inputPath, outputPath, DefaultQuality)
	require.NoError(t, err)

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	require.Positive(t, info.Size())
	require.Equal(t, info.Size(), stats.WebPBytes)
	require.Positive(t, stats.RawBytes)

	// Input stays in place; its removal is the caller's job.
	_, err = os.Stat(inputPath)
	require.NoError(t, err)
}

func TestTranscodeKeepsAlpha(t *testing.T) {
	t.Parallel()

	inputPath := writePNG(t, solidImage(128))
	outputPath := filepath.Join(t.TempDir(), "out.webp")

	_, err := Transcode(inputPath, outputPath, DefaultQuality)
	require.NoError(t, err)

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	require.Positive(t, info.Size())
}

func TestTranscodeCorruptInput(t *testing.T) {
	t.Parallel()

	inputPath := filepath.Join(t.TempDir(), "garbage.jpg")
	require.NoError(t, os.WriteFile(inputPath, []byte("<html>not an image</html>"), 0o644))

	outputPath := filepath.Join(t.TempDir(), "out.webp")

	_, err := Transcode(inputPath, outputPath, DefaultQuality)
	require.True(t, errors.Is(err, ErrConversion))

	_, statErr := os.Stat(outputPath)
	require.True(t, os.IsNotExist(statErr))
}

func TestTranscodeMissingInput(t *testing.T) {
	t.Parallel()

	_, err := Transcode(filepath.Join(t.TempDir(), "missing.jpg"), filepath.Join(t.TempDir(), "out.webp"), DefaultQuality)
	require.True(t, errors.Is(err, ErrConversion))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	if _, ok := normalize(solidImage(128)).(*image.NRGBA); !ok {
		t.Error("translucent image should normalize to NRGBA")
	}

	if _, ok := normalize(solidImage(255)).(*image.RGBA); !ok {
		t.Error("opaque image should normalize to RGBA")
	}
}

func TestReduction(t *testing.T) {
	t.Parallel()

	stats := Stats{RawBytes: 1000, WebPBytes: 250}
	if got := stats.Reduction(); got != 75.0 {
		t.Errorf("Reduction = %v, want 75", got)
	}

	if got := (Stats{}).Reduction(); got != 0 {
		t.Errorf("Reduction on zero stats = %v, want 0", got)
	}
}
