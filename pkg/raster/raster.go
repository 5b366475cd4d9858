package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Channels is the number of bytes per pixel in Raster.Pix.
const Channels = 4

// Raster is a decoded image in non-premultiplied RGBA, row-major order.
type Raster struct {
	Width  int
	Height int
	Pix    []byte
	// Format is the name reported by the matching decoder ("png", "gif", ...).
	// Empty when the raster was built from an in-memory image.
	Format string
}

// Decoder decodes compressed images into rasters. It is safe for concurrent use.
type Decoder struct {
	maxPixels int
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithMaxPixels limits width*height of accepted images. Non-positive values
// disable the limit.
func WithMaxPixels(n int) Option {
	return func(d *Decoder) {
		d.maxPixels = n
	}
}

// New returns a Decoder with the given options applied.
func New(opts ...Option) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reads r to the end and decodes its content.
// The image header is inspected before the full decode so oversized images
// are rejected without allocating their pixel buffer.
func (d *Decoder) Decode(ctx context.Context, r io.Reader) (*Raster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrEmptyInput
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Join(ErrReadInput, err)
	}
	if len(content) == 0 {
		return nil, ErrEmptyInput
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return nil, classifyDecodeError(err)
	}
	if d.maxPixels > 0 && cfg.Width > 0 && cfg.Height > d.maxPixels/cfg.Width {
		return nil, fmt.Errorf("%w: %dx%d > %d", ErrImageTooLarge, cfg.Width, cfg.Height, d.maxPixels)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, classifyDecodeError(err)
	}

	out := FromImage(img)
	out.Format = format
	return out, nil
}

// FromImage copies img into a Raster, forcing an alpha channel.
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Raster{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    dst.Pix,
	}
}

// Image returns the raster as an *image.NRGBA sharing the pixel buffer.
func (r *Raster) Image() (*image.NRGBA, error) {
	if r == nil || r.Width <= 0 || r.Height <= 0 || len(r.Pix) != r.Width*r.Height*Channels {
		return nil, ErrInvalidRaster
	}
	return &image.NRGBA{
		Pix:    r.Pix,
		Stride: r.Width * Channels,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}, nil
}

func classifyDecodeError(err error) error {
	if errors.Is(err, image.ErrFormat) {
		return errors.Join(ErrUnsupportedFormat, err)
	}
	return errors.Join(ErrDecodeImage, err)
}
