// Package raster turns compressed image bytes into a flat RGBA pixel buffer.
//
// It is the image-decoding collaborator of the qrcode package: callers hand it
// the full content of an image file and receive the decoded dimensions plus a
// row-major byte slice with four channels per pixel (R, G, B, A). An alpha
// channel is always present, even when the source format has none.
//
// # Supported formats
//
// GIF, PNG and JPEG come from the standard library. WebP, BMP and TIFF are
// registered through golang.org/x/image. The first frame is used for animated
// GIFs.
//
// # Usage
//
//	dec := raster.New(raster.WithMaxPixels(16 << 20))
//
//	img, err := dec.Decode(ctx, bytes.NewReader(content))
//	if err != nil {
//		// handle error
//	}
//	// img.Width, img.Height, img.Pix (len == Width*Height*4)
//
// # Error Handling
//
// Failures are reported through package-level sentinel errors that can be
// matched with errors.Is:
//
//   - ErrEmptyInput        – the reader yielded no bytes.
//   - ErrReadInput         – reading the input failed.
//   - ErrUnsupportedFormat – no registered decoder recognised the content.
//   - ErrDecodeImage       – the format was recognised but decoding failed.
//   - ErrImageTooLarge     – the image exceeds the configured pixel limit.
package raster
