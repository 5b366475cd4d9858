package qrcodec

import "errors"

var (
	// ErrInvalidOption is returned when an option value is out of range or has the wrong type.
	ErrInvalidOption = errors.New("invalid option")
	// ErrUnsupportedFormat is returned for output formats the encoder cannot render.
	ErrUnsupportedFormat = errors.New("unsupported output format")
	// ErrEmptyContent is returned when there is nothing to encode.
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrEncode wraps failures of the underlying symbol encoder.
	ErrEncode = errors.New("failed to generate QR code")
	// ErrRender wraps failures while serialising a symbol.
	ErrRender = errors.New("failed to render QR code")

	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("invalid image dimensions")
	// ErrPixelDataLength is returned when the pixel buffer does not match width*height*channels.
	ErrPixelDataLength = errors.New("pixel data length does not match image dimensions")
	// ErrDecode wraps reader failures other than "no symbol found".
	ErrDecode = errors.New("failed to decode QR code")
)
