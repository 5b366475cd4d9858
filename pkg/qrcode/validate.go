package qrcode

import (
	"fmt"
	"math"
	"reflect"

	"github.com/dmitrymomot/qrkit/pkg/raster"
)

// ValidateText accepts only non-empty strings.
func ValidateText(input any) error {
	if s, ok := input.(string); ok && s != "" {
		return nil
	}
	return validationError(MsgInvalidText)
}

// ValidateImageData checks that input has the shape of image data: an
// ImageData value, a *raster.Raster, or a string-keyed map with numeric
// "width" and "height" and a non-empty "data" entry. Dimensions are not
// bounds-checked and pixel length is left to the codec.
func ValidateImageData(input any) error {
	if isFalsy(input) {
		return validationError(MsgNoImageData)
	}
	if !isObject(input) {
		return validationError(fmt.Sprintf(MsgInvalidImageType, input))
	}

	switch v := input.(type) {
	case ImageData:
		return checkImageData(&v)
	case *ImageData:
		return checkImageData(v)
	case raster.Raster:
		return checkRaster(&v)
	case *raster.Raster:
		return checkRaster(v)
	}

	fields, ok := mapFields(input)
	if !ok {
		return validationError(MsgInvalidImageShape)
	}
	if !isNumber(fields["width"]) || !isNumber(fields["height"]) || isFalsy(fields["data"]) {
		return validationError(MsgInvalidImageShape)
	}
	return nil
}

func checkImageData(d *ImageData) error {
	if d.Data == nil {
		return validationError(MsgInvalidImageShape)
	}
	return nil
}

func checkRaster(r *raster.Raster) error {
	if r.Pix == nil {
		return validationError(MsgInvalidImageShape)
	}
	return nil
}

// isFalsy reports whether v counts as "nothing": nil, a nil reference,
// false, a numeric zero or NaN, or the empty string.
func isFalsy(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	case reflect.String:
		return rv.Len() == 0
	}
	return false
}

// isObject reports whether v is a struct or a map, or a pointer to one.
func isObject(v any) bool {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct || t.Kind() == reflect.Map
}

// mapFields returns the entries of a string-keyed map (or pointer to one).
func mapFields(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func isNumber(v any) bool {
	_, ok := numberValue(v)
	return ok
}
