package qrcodec

import (
	"encoding/json"
	"math"
	"testing"

	skipqrcode "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInt(t *testing.T) {
	t.Parallel()

	valid := map[string]struct {
		in   any
		want int
	}{
		"int":          {in: 7, want: 7},
		"int64":        {in: int64(-3), want: -3},
		"uint8":        {in: uint8(200), want: 200},
		"float64":      {in: 12.0, want: 12},
		"float32":      {in: float32(4), want: 4},
		"json number":  {in: json.Number("40"), want: 40},
		"negative flt": {in: -2.0, want: -2},
	}
	for name, tt := range valid {
		got, ok := toInt(tt.in)
		assert.True(t, ok, name)
		assert.Equal(t, tt.want, got, name)
	}

	invalid := map[string]any{
		"fraction":        1.25,
		"nan":             math.NaN(),
		"inf":             math.Inf(1),
		"string":          "8",
		"bool":            true,
		"nil":             nil,
		"json fraction":   json.Number("1.5"),
		"huge uint64":     uint64(math.MaxUint64),
		"out of int32 fl": 1e12,
	}
	for name, in := range invalid {
		_, ok := toInt(in)
		assert.False(t, ok, name)
	}
}

func TestParseParams(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		p, err := parseParams(nil)
		require.NoError(t, err)
		assert.Equal(t, params{level: skipqrcode.Medium, border: defaultBorder, scale: defaultScale, mask: -1}, p)
		assert.False(t, p.explicit())
	})

	t.Run("nil values keep defaults", func(t *testing.T) {
		t.Parallel()
		p, err := parseParams(map[string]any{KeyECC: nil, KeyScale: nil, KeyBorder: nil})
		require.NoError(t, err)
		assert.Equal(t, defaultScale, p.scale)
		assert.Equal(t, defaultBorder, p.border)
	})

	t.Run("ecc levels", func(t *testing.T) {
		t.Parallel()
		levels := map[string]skipqrcode.RecoveryLevel{
			"L": skipqrcode.Low, "low": skipqrcode.Low,
			"M": skipqrcode.Medium, "medium": skipqrcode.Medium,
			"Q": skipqrcode.High, "quartile": skipqrcode.High,
			"H": skipqrcode.Highest, "HIGH": skipqrcode.Highest,
		}
		for in, want := range levels {
			p, err := parseParams(map[string]any{KeyECC: in})
			require.NoError(t, err, in)
			assert.Equal(t, want, p.level, in)
		}
	})

	t.Run("all recognised keys", func(t *testing.T) {
		t.Parallel()
		p, err := parseParams(map[string]any{
			KeyECC:      "q",
			KeyEncoding: "BYTE",
			KeyVersion:  10,
			KeyMask:     2,
			KeyBorder:   0,
			KeyScale:    3,
			KeyOptimize: true,
		})
		require.NoError(t, err)
		assert.Equal(t, params{
			level:    skipqrcode.High,
			version:  10,
			border:   0,
			scale:    3,
			optimize: true,
			mode:     "byte",
			mask:     2,
		}, p)
		assert.True(t, p.explicit())
	})
}

func TestParams_Explicit(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		opts map[string]any
		want bool
	}{
		"defaults":     {opts: nil, want: false},
		"byte mode":    {opts: map[string]any{KeyEncoding: "byte"}, want: false},
		"mask zero":    {opts: map[string]any{KeyMask: 0}, want: true},
		"numeric mode": {opts: map[string]any{KeyEncoding: "numeric"}, want: true},
		"kanji mode":   {opts: map[string]any{KeyEncoding: "Kanji"}, want: true},
	}
	for name, tt := range tests {
		p, err := parseParams(tt.opts)
		require.NoError(t, err, name)
		assert.Equal(t, tt.want, p.explicit(), name)
	}
}

func TestCheckMode_Kanji(t *testing.T) {
	t.Parallel()

	assert.NoError(t, checkMode(ModeKanji, "漢字"))
	assert.NoError(t, checkMode(ModeKanji, "ひらがな"))
	assert.ErrorIs(t, checkMode(ModeKanji, "漢字a"), ErrInvalidOption)
	assert.ErrorIs(t, checkMode(ModeKanji, "😀"), ErrInvalidOption)
	assert.ErrorIs(t, checkMode(ModeKanji, ""), ErrInvalidOption)
}
