package qrcode

import (
	"maps"

	"github.com/dmitrymomot/qrkit/pkg/qrcodec"
)

// Options holds per-call encode options. Keys other than KeyAs are forwarded
// to the codec untouched, so codec options added later need no change here.
type Options map[string]any

// Option keys. Everything except KeyAs is interpreted by the codec.
const (
	KeyAs       = "as"
	KeyECC      = qrcodec.KeyECC
	KeyEncoding = qrcodec.KeyEncoding
	KeyVersion  = qrcodec.KeyVersion
	KeyMask     = qrcodec.KeyMask
	KeyBorder   = qrcodec.KeyBorder
	KeyScale    = qrcodec.KeyScale
	KeyOptimize = qrcodec.KeyOptimize
)

var defaultOptions = Options{
	KeyAs:    FormatGIF,
	KeyScale: 8,
}

// DefaultOptions returns a copy of the baseline options. Changing the result
// does not affect later calls.
func DefaultOptions() Options {
	return maps.Clone(defaultOptions)
}

// Combine returns the default options overridden by every key set in opts.
// Neither opts nor the defaults are modified.
func Combine(opts Options) Options {
	out := DefaultOptions()
	maps.Copy(out, opts)
	return out
}
