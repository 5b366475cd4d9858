package qrcode

import (
	"maps"

	"github.com/dmitrymomot/qrkit/pkg/qrcodec"
)

// OutputType tags the payload kind of an EncodeResult.
type OutputType string

const (
	TypeString        OutputType = "string"
	TypeBooleanMatrix OutputType = "boolean-matrix"
	TypeByteBuffer    OutputType = "byte-buffer"
)

// Output format identifiers accepted in the "as" option.
const (
	FormatGIF   = qrcodec.FormatGIF
	FormatSVG   = qrcodec.FormatSVG
	FormatASCII = qrcodec.FormatASCII
	FormatRaw   = qrcodec.FormatRaw
	FormatTerm  = qrcodec.FormatTerm
)

var outputTypes = map[string]OutputType{
	FormatASCII: TypeString,
	FormatTerm:  TypeString,
	FormatSVG:   TypeString,
	FormatRaw:   TypeBooleanMatrix,
	FormatGIF:   TypeByteBuffer,
}

// OutputTypes returns a copy of the format to payload kind table.
func OutputTypes() map[string]OutputType {
	return maps.Clone(outputTypes)
}

// OutputTypeOf returns the payload kind declared for format. Formats missing
// from the table resolve to the gif entry.
func OutputTypeOf(format string) OutputType {
	if t, ok := outputTypes[format]; ok {
		return t
	}
	return outputTypes[FormatGIF]
}

// encodeFormat picks the codec call for an "as" value. Only four formats have
// their own branch; everything else, "term" included, encodes as gif.
func encodeFormat(as string) string {
	switch as {
	case FormatGIF, FormatSVG, FormatASCII, FormatRaw:
		return as
	}
	return FormatGIF
}

// EncodeResult is the payload produced by Encode together with its kind.
type EncodeResult struct {
	Data any
	Type OutputType
}

// Bytes returns the payload when it is a byte buffer.
func (r *EncodeResult) Bytes() ([]byte, bool) {
	b, ok := r.Data.([]byte)
	return b, ok
}

// Text returns the payload when it is a string.
func (r *EncodeResult) Text() (string, bool) {
	s, ok := r.Data.(string)
	return s, ok
}

// Matrix returns the payload when it is a module grid.
func (r *EncodeResult) Matrix() ([][]bool, bool) {
	m, ok := r.Data.([][]bool)
	return m, ok
}

// dispatch strips "as" from opts, runs the codec for the selected branch and
// tags the result by looking up the literal "as" value. The branch and the tag
// fall back to gif independently of each other.
func dispatch(enc Encoder, text string, opts Options) (*EncodeResult, error) {
	// a non-string "as" matches no table key and no branch, so it ends up as gif
	as := FormatGIF
	if v, ok := opts[KeyAs]; ok {
		as, _ = v.(string)
	}

	codecOpts := make(map[string]any, len(opts))
	for k, v := range opts {
		if k != KeyAs {
			codecOpts[k] = v
		}
	}

	data, err := enc.Encode(text, encodeFormat(as), codecOpts)
	if err != nil {
		return nil, err
	}
	return &EncodeResult{Data: data, Type: OutputTypeOf(as)}, nil
}
