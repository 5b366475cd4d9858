package qrcodec

import (
	"errors"
	"fmt"

	"github.com/makiuchi-d/gozxing"
	zxdecoder "github.com/makiuchi-d/gozxing/qrcode/decoder"
	zxencoder "github.com/makiuchi-d/gozxing/qrcode/encoder"
	skipqrcode "github.com/skip2/go-qrcode"
)

// Output formats the encoder renders.
const (
	FormatGIF   = "gif"
	FormatSVG   = "svg"
	FormatASCII = "ascii"
	FormatTerm  = "term"
	FormatRaw   = "raw"
)

// Encoder renders text as a QR symbol in one of the supported output formats.
// It keeps no state and is safe for concurrent use.
type Encoder struct{}

// NewEncoder returns an Encoder backed by github.com/skip2/go-qrcode.
// Symbols with a forced mask pattern or a fixed single-segment mode are built
// with the github.com/makiuchi-d/gozxing encoder instead.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode renders text in the given format. The concrete type of the result
// depends on the format:
//
//   - gif          → []byte (GIF image)
//   - svg, ascii, term → string
//   - raw          → [][]bool (row-major, true is a dark module)
//
// Unknown option keys are ignored.
func (e *Encoder) Encode(text, format string, opts map[string]any) (any, error) {
	switch format {
	case FormatGIF, FormatSVG, FormatASCII, FormatTerm, FormatRaw:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	p, err := parseParams(opts)
	if err != nil {
		return nil, err
	}

	m, err := symbol(text, p)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatRaw:
		return m, nil
	case FormatASCII:
		return renderASCII(m), nil
	case FormatTerm:
		return renderTerm(m), nil
	case FormatSVG:
		return renderSVG(m, p.scale, p.optimize), nil
	default:
		return renderGIF(m, p.scale)
	}
}

func symbol(text string, p params) ([][]bool, error) {
	if text == "" {
		return nil, ErrEmptyContent
	}
	if err := checkMode(p.mode, text); err != nil {
		return nil, err
	}
	if p.explicit() {
		return hintedSymbol(text, p)
	}

	var (
		q   *skipqrcode.QRCode
		err error
	)
	if p.version > 0 {
		q, err = skipqrcode.NewWithForcedVersion(text, p.version, p.level)
	} else {
		q, err = skipqrcode.New(text, p.level)
	}
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}

	// skip2 always pads with four modules; the quiet zone is applied here instead.
	q.DisableBorder = true
	return withBorder(q.Bitmap(), p.border), nil
}

// hintedSymbol encodes text as one segment. gozxing picks the segment mode
// from the content and the character set, so a text that passed checkMode
// lands in the requested mode (digits only always go numeric).
func hintedSymbol(text string, p params) ([][]bool, error) {
	// byte segments default to UTF-8 without an ECI header
	hints := map[gozxing.EncodeHintType]any{}
	if p.mode == ModeKanji {
		hints[gozxing.EncodeHintType_CHARACTER_SET] = "Shift_JIS"
	}
	if p.version > 0 {
		hints[gozxing.EncodeHintType_QR_VERSION] = p.version
	}
	if p.mask >= 0 {
		hints[gozxing.EncodeHintType_QR_MASK_PATTERN] = p.mask
	}

	code, err := zxencoder.Encoder_encode(text, zxingLevel(p.level), hints)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}

	m := code.GetMatrix()
	bitmap := make([][]bool, m.GetHeight())
	for y := range bitmap {
		bitmap[y] = make([]bool, m.GetWidth())
		for x := range bitmap[y] {
			bitmap[y][x] = m.Get(x, y) == 1
		}
	}
	return withBorder(bitmap, p.border), nil
}

func zxingLevel(level skipqrcode.RecoveryLevel) zxdecoder.ErrorCorrectionLevel {
	switch level {
	case skipqrcode.Low:
		return zxdecoder.ErrorCorrectionLevel_L
	case skipqrcode.High:
		return zxdecoder.ErrorCorrectionLevel_Q
	case skipqrcode.Highest:
		return zxdecoder.ErrorCorrectionLevel_H
	}
	return zxdecoder.ErrorCorrectionLevel_M
}

func withBorder(bitmap [][]bool, border int) [][]bool {
	size := len(bitmap) + 2*border
	out := make([][]bool, size)
	for y := range out {
		out[y] = make([]bool, size)
	}
	for y, row := range bitmap {
		copy(out[y+border][border:], row)
	}
	return out
}
