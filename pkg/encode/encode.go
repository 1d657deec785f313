// Package encode turns a rendered pixel buffer into output files: PNG
// images and ASCII-art renderings (spec §4.I, §6).
package encode

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/basalt-render/raymarch/pkg/mathx"
)

// IoError wraps an underlying I/O failure with the path it was operating on.
type IoError struct {
	Path string
	Err  error
}

func (e IoError) Error() string {
	return fmt.Sprintf("encode: %s: %v", e.Path, e.Err)
}

func (e IoError) Unwrap() error { return e.Err }

// asciiRamp is a monotonically increasing brightness-to-glyph ramp (spec
// §4.I): index 0 is darkest, the last rune is brightest.
const asciiRamp = " .:-=+*#%@"

func toImage(width, height int, pixels []mathx.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := pixels[y*width+x].Clamp01()
			img.Set(x, y, color.RGBA{
				R: uint8(c.R * 255),
				G: uint8(c.G * 255),
				B: uint8(c.B * 255),
				A: 255,
			})
		}
	}
	return img
}

// WritePNG encodes a width x height buffer of colors (row-major, top to
// bottom) as a PNG at path.
func WritePNG(path string, width, height int, pixels []mathx.Color) error {
	f, err := os.Create(path)
	if err != nil {
		return IoError{Path: path, Err: err}
	}
	defer f.Close()

	if err := png.Encode(f, toImage(width, height, pixels)); err != nil {
		return IoError{Path: path, Err: err}
	}
	return nil
}

// EncodePNG returns the PNG encoding of a width x height buffer of colors
// without touching disk, for callers (such as the interactive server) that
// need the bytes in memory to push over a websocket.
func EncodePNG(w io.Writer, width, height int, pixels []mathx.Color) error {
	if err := png.Encode(w, toImage(width, height, pixels)); err != nil {
		return IoError{Path: "<writer>", Err: err}
	}
	return nil
}

// WriteASCII renders width x height colors as brightness-ramped ASCII art,
// one row per line, to w.
func WriteASCII(w io.Writer, width, height int, pixels []mathx.Color) error {
	buf := make([]byte, 0, (width+1)*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := pixels[y*width+x].Clamp01()
			lum := c.Luminance()
			idx := int(lum * float64(len(asciiRamp)))
			if idx < 0 {
				idx = 0
			}
			if idx > len(asciiRamp)-1 {
				idx = len(asciiRamp) - 1
			}
			buf = append(buf, asciiRamp[idx])
		}
		buf = append(buf, '\n')
	}
	if _, err := w.Write(buf); err != nil {
		return IoError{Path: "<writer>", Err: err}
	}
	return nil
}
