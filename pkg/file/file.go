package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
)

// Object is a stored image that can be opened on demand. It satisfies the
// file-like input accepted by qrcode.Decode.
type Object interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	// Name is the path or key the object was created from.
	Name() string
}

// Source reads stored images by path.
type Source interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Exists(ctx context.Context, path string) bool
	Object(path string) Object
}

type object struct {
	name string
	open func(ctx context.Context, path string) (io.ReadCloser, error)
}

func (o object) Open(ctx context.Context) (io.ReadCloser, error) { return o.open(ctx, o.name) }
func (o object) Name() string                                   { return o.name }

// ImageMIMETypes lists the content types the raster decoder understands.
var ImageMIMETypes = []string{
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/webp",
	"image/bmp",
	"image/tiff",
}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".webp": true, ".bmp": true, ".tif": true, ".tiff": true,
}

// IsImage reports whether an upload holds a decodable image. Content sniffing
// decides; the extension is only consulted when sniffing fails.
func IsImage(fh *multipart.FileHeader) bool {
	if fh == nil {
		return false
	}
	mimeType, err := GetMIMEType(fh)
	if err == nil && mimeType != "" {
		return slices.Contains(ImageMIMETypes, mimeType)
	}
	return imageExtensions[strings.ToLower(filepath.Ext(fh.Filename))]
}

// GetMIMEType sniffs the content type from the first 512 bytes of the upload.
func GetMIMEType(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNilFileHeader
	}

	f, err := fh.Open()
	if err != nil {
		return "", errors.Join(ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	return DetectMIMEType(f)
}

// DetectMIMEType sniffs the content type of r. At most 512 bytes are read.
func DetectMIMEType(r io.Reader) (string, error) {
	buf := make([]byte, 512)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", errors.Join(ErrFailedToReadFile, err)
	}
	return http.DetectContentType(buf[:n]), nil
}

// ValidateSize checks the declared upload size against maxBytes.
// Non-positive limits disable the check.
func ValidateSize(fh *multipart.FileHeader, maxBytes int64) error {
	if fh == nil {
		return ErrNilFileHeader
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return fmt.Errorf("file size %d bytes exceeds %d bytes limit: %w", fh.Size, maxBytes, ErrFileTooLarge)
	}
	return nil
}

// ValidateMIMEType checks the sniffed content type against allowedTypes.
// An empty list allows everything.
func ValidateMIMEType(fh *multipart.FileHeader, allowedTypes ...string) error {
	if fh == nil {
		return ErrNilFileHeader
	}
	if len(allowedTypes) == 0 {
		return nil
	}

	mimeType, err := GetMIMEType(fh)
	if err != nil {
		return err
	}
	if slices.Contains(allowedTypes, mimeType) {
		return nil
	}
	return fmt.Errorf("MIME type %s not in allowed types %v: %w", mimeType, allowedTypes, ErrMIMETypeNotAllowed)
}

// ValidateImageUpload applies the size limit and the image content type check
// used for decode uploads.
func ValidateImageUpload(fh *multipart.FileHeader, maxBytes int64) error {
	if err := ValidateSize(fh, maxBytes); err != nil {
		return err
	}
	return ValidateMIMEType(fh, ImageMIMETypes...)
}
