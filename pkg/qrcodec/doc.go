// Package qrcodec is the QR symbol codec used by the qrcode façade.
//
// Encoding is delegated to github.com/skip2/go-qrcode, which builds the module
// matrix (data encoding, Reed-Solomon blocks, masking). When the caller forces
// a mask pattern or a single-segment mode, the matrix comes from the gozxing
// encoder instead, which accepts both as hints. This package adds the
// quiet zone and renders the matrix in the supported output formats:
//
//   - gif   – GIF image bytes, one square of scale x scale pixels per module
//   - svg   – an SVG document; "optimize" merges horizontal runs
//   - ascii – half-block text, two module rows per line
//   - term  – ANSI background colours, one module per two cells
//   - raw   – the [][]bool matrix itself
//
// Decoding is delegated to github.com/makiuchi-d/gozxing. The pixel buffer is
// wrapped as an image and handed to the QR reader with a hybrid binarizer
// first, then a global histogram one, then a pure-barcode pass.
//
// # Usage
//
//	enc := qrcodec.NewEncoder()
//	out, err := enc.Encode("https://example.com", qrcodec.FormatSVG, map[string]any{
//		"ecc":   "H",
//		"scale": 4,
//	})
//
//	dec := qrcodec.NewDecoder()
//	text, err := dec.Decode(width, height, rgba)
//	if err == nil && text == "" {
//		// no symbol in the image
//	}
//
// # Options
//
// Recognised keys: ecc (L/M/Q/H or low/medium/quartile/high), encoding
// (byte, numeric, alphanumeric, kanji), version (1..40), mask (0..7), border
// (modules, default 2), scale (pixels per module, default 8) and optimize.
// Unknown keys are ignored.
//
// Text for the numeric, alphanumeric and kanji modes must fit that character
// set; kanji means double-byte Shift_JIS characters.
//
// # Error Handling
//
// Errors wrap the package sentinels ErrInvalidOption, ErrUnsupportedFormat,
// ErrEmptyContent, ErrEncode, ErrRender, ErrInvalidDimensions,
// ErrPixelDataLength and ErrDecode and can be matched with errors.Is.
package qrcodec
