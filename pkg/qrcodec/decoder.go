package qrcodec

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/dmitrymomot/qrkit/pkg/raster"
)

// Decoder locates and decodes a QR symbol in raw pixel data.
// It keeps no state between calls and is safe for concurrent use.
type Decoder struct {
	tryHarder bool
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithTryHarder makes the reader spend more time looking for a symbol.
func WithTryHarder(enabled bool) DecoderOption {
	return func(d *Decoder) {
		d.tryHarder = enabled
	}
}

// NewDecoder returns a Decoder backed by github.com/makiuchi-d/gozxing.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{tryHarder: true}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reads the symbol from a width x height pixel buffer. The channel count
// is derived from the buffer length: 4 (RGBA), 3 (RGB) or 1 (grey).
//
// An empty string with a nil error means the image holds no readable symbol.
func (d *Decoder) Decode(width, height int, pixels []byte) (string, error) {
	img, err := toImage(width, height, pixels)
	if err != nil {
		return "", err
	}

	src := gozxing.NewLuminanceSourceFromImage(img)
	attempts := []struct {
		binarizer gozxing.Binarizer
		pure      bool
	}{
		{binarizer: gozxing.NewHybridBinarizer(src)},
		{binarizer: gozxing.NewGlobalHistgramBinarizer(src)},
		{binarizer: gozxing.NewHybridBinarizer(src), pure: true},
	}

	var lastErr error
	for _, a := range attempts {
		bmp, err := gozxing.NewBinaryBitmap(a.binarizer)
		if err != nil {
			lastErr = err
			continue
		}

		hints := map[gozxing.DecodeHintType]interface{}{}
		if d.tryHarder {
			hints[gozxing.DecodeHintType_TRY_HARDER] = true
		}
		if a.pure {
			hints[gozxing.DecodeHintType_PURE_BARCODE] = true
		}

		result, err := qrcode.NewQRCodeReader().Decode(bmp, hints)
		if err == nil {
			return result.GetText(), nil
		}
		var notFound gozxing.NotFoundException
		if !errors.As(err, &notFound) {
			lastErr = err
		}
	}

	if lastErr != nil {
		return "", errors.Join(ErrDecode, lastErr)
	}
	return "", nil
}

func toImage(width, height int, pixels []byte) (image.Image, error) {
	if width <= 0 || height <= 0 || width > math.MaxInt/height/raster.Channels {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	area := width * height
	switch len(pixels) {
	case area * raster.Channels:
		return (&raster.Raster{Width: width, Height: height, Pix: pixels}).Image()
	case area * 3:
		img := image.NewNRGBA(image.Rect(0, 0, width, height))
		for i, j := 0, 0; i < len(pixels); i, j = i+3, j+4 {
			img.Pix[j] = pixels[i]
			img.Pix[j+1] = pixels[i+1]
			img.Pix[j+2] = pixels[i+2]
			img.Pix[j+3] = 0xff
		}
		return img, nil
	case area:
		return &image.Gray{
			Pix:    pixels,
			Stride: width,
			Rect:   image.Rect(0, 0, width, height),
		}, nil
	}
	return nil, fmt.Errorf("%w: got %d bytes for %dx%d", ErrPixelDataLength, len(pixels), width, height)
}
