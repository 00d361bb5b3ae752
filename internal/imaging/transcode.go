// Package imaging re-encodes downloaded raster images into WebP for the web.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"

	// Registered decoders for the common raster formats people upload.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/chai2010/webp"
	"github.com/natefinch/atomic"
)

// ErrConversion marks a decode or encode failure (corrupt input, unsupported
// format). Per-record: the caller skips the entry and keeps going.
var ErrConversion = errors.New("image conversion failed")

// DefaultQuality is the WebP encoder quality used when none is configured.
const DefaultQuality = 85

// Stats reports the size delta of one transcode. Telemetry only.
type Stats struct {
	RawBytes  int64
	WebPBytes int64
}

// Reduction returns the size reduction as a percentage of the raw size.
func (s Stats) Reduction() float64 {
	if s.RawBytes == 0 {
		return 0
	}

	return float64(s.RawBytes-s.WebPBytes) / float64(s.RawBytes) * 100
}

// Transcode decodes the raster image at inputPath and writes a lossy WebP
// encoding of it to outputPath at the given quality. Images carrying
// transparency keep their alpha channel; everything else is coerced to a
// plain RGB model first. The input file is left in place; cleanup is the
// caller's job and is unconditional on both success and failure.
func Transcode(inputPath, outputPath string, quality int) (Stats, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %s: %v", ErrConversion, inputPath, err)
	}

	defer func() {
		closeErr := file.Close()
		_ = closeErr
	}()

	img, _, err := image.Decode(file)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %s: decode: %v", ErrConversion, inputPath, err)
	}

	var buf bytes.Buffer

	encodeErr := webp.Encode(&buf, normalize(img), &webp.Options{
		Lossless: false,
		Quality:  float32(quality),
	})
	if encodeErr != nil {
		return Stats{}, fmt.Errorf("%w: %s: encode: %v", ErrConversion, inputPath, encodeErr)
	}

	writeErr := atomic.WriteFile(outputPath, bytes.NewReader(buf.Bytes()))
	if writeErr != nil {
		return Stats{}, fmt.Errorf("write %s: %w", outputPath, writeErr)
	}

	stats := Stats{WebPBytes: int64(buf.Len())}

	if info, statErr := os.Stat(inputPath); statErr == nil {
		stats.RawBytes = info.Size()
	}

	return stats, nil
}

// normalize maps the decoded image onto the model the encoder expects:
// NRGBA when transparency must survive, RGBA otherwise.
func normalize(img image.Image) image.Image {
	bounds := img.Bounds()

	if hasAlpha(img) {
		dst := image.NewNRGBA(bounds)
		draw.Draw(dst, bounds, img, bounds.Min, draw.Src)

		return dst
	}

	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, img, bounds.Min, draw.Src)

	return dst
}

// hasAlpha reports whether img contains any non-opaque pixel.
func hasAlpha(img image.Image) bool {
	type opaquer interface{ Opaque() bool }

	if o, ok := img.(opaquer); ok {
		return !o.Opaque()
	}

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}

	return false
}
