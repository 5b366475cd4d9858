package qrcode

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/qrkit/pkg/logger"
	"github.com/dmitrymomot/qrkit/pkg/qrcodec"
	"github.com/dmitrymomot/qrkit/pkg/raster"
)

// Encoder renders text in one of the codec formats.
type Encoder interface {
	Encode(text, format string, opts map[string]any) (any, error)
}

// Decoder reads a symbol from raw pixels. It returns an empty string with a
// nil error when the image holds no symbol.
type Decoder interface {
	Decode(width, height int, pixels []byte) (string, error)
}

// ImageDecoder turns compressed image bytes into an RGBA raster.
type ImageDecoder interface {
	Decode(ctx context.Context, r io.Reader) (*raster.Raster, error)
}

// DecodeResult holds the text read from a symbol.
type DecodeResult struct {
	Data string `json:"data"`
}

// Service runs the encode and decode pipelines over its collaborators.
// It holds no per-call state and is safe for concurrent use.
type Service struct {
	encoder Encoder
	decoder Decoder
	images  ImageDecoder
	logger  *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithEncoder replaces the symbol encoder.
func WithEncoder(e Encoder) ServiceOption {
	if e == nil {
		panic("WithEncoder: nil encoder")
	}
	return func(s *Service) { s.encoder = e }
}

// WithDecoder replaces the symbol decoder.
func WithDecoder(d Decoder) ServiceOption {
	if d == nil {
		panic("WithDecoder: nil decoder")
	}
	return func(s *Service) { s.decoder = d }
}

// WithImageDecoder replaces the compressed image decoder used for file inputs.
func WithImageDecoder(d ImageDecoder) ServiceOption {
	if d == nil {
		panic("WithImageDecoder: nil image decoder")
	}
	return func(s *Service) { s.images = d }
}

// WithLogger sets the logger failures are reported to at debug level.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService returns a Service backed by the qrcodec and raster packages
// unless other collaborators are supplied.
func NewService(opts ...ServiceOption) *Service {
	s := &Service{
		encoder: qrcodec.NewEncoder(),
		decoder: qrcodec.NewDecoder(),
		images:  raster.New(),
		logger:  newNoopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Encode renders text according to opts merged over DefaultOptions.
func (s *Service) Encode(text string, opts Options) (*EncodeResult, error) {
	return s.EncodeAny(text, opts)
}

// EncodeAny is Encode for callers holding an untyped value, such as a field
// of decoded JSON. Anything but a non-empty string fails validation.
func (s *Service) EncodeAny(text any, opts Options) (res *EncodeResult, err error) {
	defer func() {
		if err != nil {
			s.logFailure(context.Background(), "encode", err)
		}
	}()
	defer recoverPanic(&err, msgEncodeFailedPrefix)

	if err := ValidateText(text); err != nil {
		return nil, err
	}
	res, err = dispatch(s.encoder, text.(string), Combine(opts))
	if err != nil {
		return nil, translate(err, msgEncodeFailedPrefix)
	}
	return res, nil
}

// Decode reads a symbol from input. Input is either image data (ImageData,
// *raster.Raster or a map with width, height and data) or a file-like value
// (io.Reader, *multipart.FileHeader or FileSource) holding a compressed image.
func (s *Service) Decode(ctx context.Context, input any) (res *DecodeResult, err error) {
	defer func() {
		if err != nil {
			s.logFailure(ctx, "decode", err)
		}
	}()
	defer recoverPanic(&err, msgDecodeFailedPrefix)

	res, err = s.decode(ctx, input)
	if err != nil {
		return nil, translate(err, msgDecodeFailedPrefix)
	}
	return res, nil
}

func (s *Service) decode(ctx context.Context, input any) (*DecodeResult, error) {
	rc, isFile, err := openFile(ctx, input)
	if err != nil {
		return nil, err
	}
	if isFile {
		defer rc.Close()
		img, err := s.ConvertFile(ctx, rc)
		if err != nil {
			return nil, err
		}
		input = img
	}

	if err := ValidateImageData(input); err != nil {
		return nil, err
	}
	img, err := imageDataFrom(input)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := s.decoder.Decode(img.Width, img.Height, img.Data)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, newError(KindProcessing, MsgNoSymbolFound, nil)
	}
	return &DecodeResult{Data: text}, nil
}

func (s *Service) logFailure(ctx context.Context, op string, err error) {
	s.logger.DebugContext(ctx, "qr operation failed",
		logger.Operation(op),
		logger.ErrorKind(string(KindOf(err))),
		logger.Error(err),
	)
}

// recoverPanic turns a panic raised by a collaborator into a PROCESSING error.
func recoverPanic(err *error, prefix string) {
	if r := recover(); r != nil {
		*err = newError(KindProcessing, fmt.Sprintf("%s: %v", prefix, r), nil)
	}
}

var defaultService = NewService()

// Encode renders text with the default Service.
func Encode(text string, opts Options) (*EncodeResult, error) {
	return defaultService.Encode(text, opts)
}

// EncodeAny renders an untyped text value with the default Service.
func EncodeAny(text any, opts Options) (*EncodeResult, error) {
	return defaultService.EncodeAny(text, opts)
}

// Decode reads a symbol with the default Service.
func Decode(ctx context.Context, input any) (*DecodeResult, error) {
	return defaultService.Decode(ctx, input)
}

// ConvertFile decodes a compressed image with the default Service.
func ConvertFile(ctx context.Context, r io.Reader) (*ImageData, error) {
	return defaultService.ConvertFile(ctx, r)
}
