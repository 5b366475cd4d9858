package raster

import "errors"

var (
	ErrEmptyInput        = errors.New("empty image input")
	ErrReadInput         = errors.New("failed to read image input")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrDecodeImage       = errors.New("failed to decode image")
	ErrImageTooLarge     = errors.New("image exceeds maximum pixel count")
	ErrInvalidRaster     = errors.New("invalid raster dimensions")
)
