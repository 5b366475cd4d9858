package qrcode

import (
	"github.com/dmitrymomot/qrkit/pkg/qrcodec"
	"github.com/dmitrymomot/qrkit/pkg/raster"
)

// Config holds environment settings for the default collaborators.
type Config struct {
	MaxImagePixels  int  `env:"QR_MAX_IMAGE_PIXELS" envDefault:"16777216"` // MaxImagePixels limits width*height of uploaded images; 0 disables the limit.
	DecodeTryHarder bool `env:"QR_DECODE_TRY_HARDER" envDefault:"true"`    // DecodeTryHarder trades speed for a more thorough symbol search.
}

// NewServiceFromConfig creates a Service whose codec and image decoder are
// configured from cfg. Additional options are applied afterwards.
func NewServiceFromConfig(cfg Config, opts ...ServiceOption) *Service {
	configOpts := []ServiceOption{
		WithDecoder(qrcodec.NewDecoder(qrcodec.WithTryHarder(cfg.DecodeTryHarder))),
		WithImageDecoder(raster.New(raster.WithMaxPixels(cfg.MaxImagePixels))),
	}
	return NewService(append(configOpts, opts...)...)
}
