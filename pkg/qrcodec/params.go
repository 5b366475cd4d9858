package qrcodec

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
	"golang.org/x/text/encoding/japanese"
)

// Option keys understood by the codec. Any other key is ignored.
const (
	KeyECC      = "ecc"
	KeyEncoding = "encoding"
	KeyVersion  = "version"
	KeyMask     = "mask"
	KeyBorder   = "border"
	KeyScale    = "scale"
	KeyOptimize = "optimize"
)

// Encoding modes accepted by the "encoding" option.
const (
	ModeByte         = "byte"
	ModeNumeric      = "numeric"
	ModeAlphanumeric = "alphanumeric"
	ModeKanji        = "kanji"
)

const (
	defaultBorder = 2
	defaultScale  = 8
	maxScale      = 100
	maxBorder     = 100
)

type params struct {
	level    skipqrcode.RecoveryLevel
	version  int
	border   int
	scale    int
	optimize bool
	mode     string
	mask     int // forced mask pattern, -1 lets the encoder choose
}

// explicit reports whether the symbol must be built with the mask or a
// single-segment mode fixed by the caller.
func (p params) explicit() bool {
	return p.mask >= 0 || (p.mode != "" && p.mode != ModeByte)
}

func parseParams(opts map[string]any) (params, error) {
	p := params{
		level:  skipqrcode.Medium,
		border: defaultBorder,
		scale:  defaultScale,
		mask:   -1,
	}

	if v, ok := opts[KeyECC]; ok && v != nil {
		level, err := parseLevel(v)
		if err != nil {
			return p, err
		}
		p.level = level
	}

	if v, ok := opts[KeyVersion]; ok && v != nil {
		n, ok := toInt(v)
		if !ok || n < 1 || n > 40 {
			return p, fmt.Errorf("%w: version must be an integer in 1..40, got %v", ErrInvalidOption, v)
		}
		p.version = n
	}

	if v, ok := opts[KeyMask]; ok && v != nil {
		n, ok := toInt(v)
		if !ok || n < 0 || n > 7 {
			return p, fmt.Errorf("%w: mask must be an integer in 0..7, got %v", ErrInvalidOption, v)
		}
		p.mask = n
	}

	if v, ok := opts[KeyBorder]; ok && v != nil {
		n, ok := toInt(v)
		if !ok || n < 0 || n > maxBorder {
			return p, fmt.Errorf("%w: border must be an integer in 0..%d, got %v", ErrInvalidOption, maxBorder, v)
		}
		p.border = n
	}

	if v, ok := opts[KeyScale]; ok && v != nil {
		n, ok := toInt(v)
		if !ok || n < 1 || n > maxScale {
			return p, fmt.Errorf("%w: scale must be an integer in 1..%d, got %v", ErrInvalidOption, maxScale, v)
		}
		p.scale = n
	}

	if v, ok := opts[KeyOptimize]; ok && v != nil {
		b, ok := v.(bool)
		if !ok {
			return p, fmt.Errorf("%w: optimize must be a boolean, got %T", ErrInvalidOption, v)
		}
		p.optimize = b
	}

	if v, ok := opts[KeyEncoding]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return p, fmt.Errorf("%w: encoding must be a string, got %T", ErrInvalidOption, v)
		}
		p.mode = strings.ToLower(s)
	}

	return p, nil
}

// parseLevel accepts both the single-letter ECC names and their long forms.
// skip2 names its levels by recovery capacity, so Q maps to High and H to Highest.
func parseLevel(v any) (skipqrcode.RecoveryLevel, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("%w: ecc must be a string, got %T", ErrInvalidOption, v)
	}
	switch strings.ToLower(s) {
	case "l", "low":
		return skipqrcode.Low, nil
	case "m", "medium":
		return skipqrcode.Medium, nil
	case "q", "quartile":
		return skipqrcode.High, nil
	case "h", "high":
		return skipqrcode.Highest, nil
	}
	return 0, fmt.Errorf("%w: unknown ecc level %q", ErrInvalidOption, s)
}

// checkMode verifies that text can be written as a single segment of mode.
func checkMode(mode, text string) error {
	switch mode {
	case "", ModeByte:
		return nil
	case ModeNumeric:
		for _, r := range text {
			if r < '0' || r > '9' {
				return fmt.Errorf("%w: text is not numeric", ErrInvalidOption)
			}
		}
		return nil
	case ModeAlphanumeric:
		for _, r := range text {
			if !strings.ContainsRune(alphanumericCharset, r) {
				return fmt.Errorf("%w: text is not alphanumeric (character %q)", ErrInvalidOption, r)
			}
		}
		return nil
	case ModeKanji:
		if !isDoubleByteKanji(text) {
			return fmt.Errorf("%w: text is not double-byte Shift_JIS kanji", ErrInvalidOption)
		}
		return nil
	}
	return fmt.Errorf("%w: unsupported encoding %q", ErrInvalidOption, mode)
}

// isDoubleByteKanji reports whether every character of text encodes to a
// two-byte Shift_JIS sequence in the kanji lead-byte ranges.
func isDoubleByteKanji(text string) bool {
	b, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(text))
	if err != nil || len(b) == 0 || len(b)%2 != 0 {
		return false
	}
	for i := 0; i < len(b); i += 2 {
		lead := b[i]
		if (lead < 0x81 || lead > 0x9f) && (lead < 0xe0 || lead > 0xeb) {
			return false
		}
	}
	return true
}

const alphanumericCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

// toInt converts the numeric representations callers commonly produce
// (Go ints, JSON float64 and json.Number) into an int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
