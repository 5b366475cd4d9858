package qrcode

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"reflect"

	"github.com/dmitrymomot/qrkit/pkg/raster"
)

// ImageData is a raw pixel buffer ready for decoding. Data holds row-major
// pixels with 4 (RGBA), 3 (RGB) or 1 (grey) bytes per pixel.
type ImageData struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Data   []byte `json:"data"`
}

// FileSource is a stored file that can be opened for reading.
// file.Object values from the file package satisfy it.
type FileSource interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

var errNonIntegral = errors.New("value is not an integer")

// ConvertFile decodes a compressed image read from r into RGBA pixels.
// Any failure is reported as a CONVERTING error.
func (s *Service) ConvertFile(ctx context.Context, r io.Reader) (*ImageData, error) {
	img, err := s.images.Decode(ctx, r)
	if err != nil {
		return nil, convertError(err)
	}
	return &ImageData{Width: img.Width, Height: img.Height, Data: img.Pix}, nil
}

func convertError(err error) *Error {
	return newError(KindConverting, fmt.Sprintf("%s: %s", msgConvertFailedPrefix, err.Error()), err)
}

// openFile returns a reader for file-like inputs. ok is false when input is
// not file-like and should be treated as image data.
func openFile(ctx context.Context, input any) (rc io.ReadCloser, ok bool, err error) {
	if isFalsy(input) {
		return nil, false, nil
	}
	switch v := input.(type) {
	case *multipart.FileHeader:
		f, err := v.Open()
		if err != nil {
			return nil, true, convertError(err)
		}
		return f, true, nil
	case FileSource:
		f, err := v.Open(ctx)
		if err != nil {
			return nil, true, convertError(err)
		}
		return f, true, nil
	case io.Reader:
		return io.NopCloser(v), true, nil
	}
	return nil, false, nil
}

// imageDataFrom normalizes an already validated input into ImageData.
func imageDataFrom(input any) (*ImageData, error) {
	switch v := input.(type) {
	case ImageData:
		return &v, nil
	case *ImageData:
		return v, nil
	case raster.Raster:
		return &ImageData{Width: v.Width, Height: v.Height, Data: v.Pix}, nil
	case *raster.Raster:
		return &ImageData{Width: v.Width, Height: v.Height, Data: v.Pix}, nil
	}

	fields, _ := mapFields(input)
	width, err := dimension(fields["width"])
	if err != nil {
		return nil, fmt.Errorf("invalid width: %w", err)
	}
	height, err := dimension(fields["height"])
	if err != nil {
		return nil, fmt.Errorf("invalid height: %w", err)
	}
	data, err := pixelBytes(fields["data"])
	if err != nil {
		return nil, err
	}
	return &ImageData{Width: width, Height: height, Data: data}, nil
}

func dimension(v any) (int, error) {
	f, ok := numberValue(v)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %v", errNonIntegral, v)
	}
	return int(f), nil
}

// pixelBytes accepts the buffer representations produced by Go callers and
// by JSON decoding: []byte, a base64 string, or a slice of numbers in 0..255.
func pixelBytes(v any) ([]byte, error) {
	switch d := v.(type) {
	case []byte:
		return d, nil
	case string:
		b, err := base64.StdEncoding.DecodeString(d)
		if err != nil {
			return nil, fmt.Errorf("pixel data string is not base64: %w", err)
		}
		return b, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("unsupported pixel data type %T", v)
	}
	out := make([]byte, rv.Len())
	for i := range out {
		f, ok := numberValue(rv.Index(i).Interface())
		if !ok || f < 0 || f > 255 || f != math.Trunc(f) {
			return nil, fmt.Errorf("pixel data value at index %d is not a byte: %v", i, rv.Index(i).Interface())
		}
		out[i] = byte(f)
	}
	return out, nil
}

func numberValue(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
