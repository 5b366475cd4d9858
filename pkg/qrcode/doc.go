// Package qrcode is a validating façade over a QR symbol codec and an image
// decoder. It checks caller input, merges options with defaults, picks the
// output representation and reports every failure as a single typed error.
//
// The package does not build symbol matrices or decompress images itself.
// Symbol work is delegated to an Encoder and a Decoder (by default the
// qrcodec package), image decompression to an ImageDecoder (by default the
// raster package).
//
// # Architecture
//
// Encode runs a fixed pipeline: ValidateText, Combine, then a dispatch step
// that strips the "as" option, calls the encoder and tags the payload with an
// OutputType. The encoder branch and the type tag are resolved independently:
// any "as" other than gif, svg, ascii or raw encodes a gif, while the tag is
// looked up by the literal "as" value with a fallback to the gif entry. This
// is why "term" yields gif bytes tagged as TypeString.
//
// Decode accepts image data or a file-like value. File-like inputs
// (io.Reader, *multipart.FileHeader, FileSource) are first converted with
// ConvertFile. The image data is then validated, handed to the decoder, and an
// empty result is reported as "No QR code found in image".
//
// The package-level functions use a default Service. Create one with
// NewService or NewServiceFromConfig to swap collaborators or attach a logger.
//
// # Usage
//
//	import "github.com/dmitrymomot/qrkit/pkg/qrcode"
//
//	res, err := qrcode.Encode("https://example.com", qrcode.Options{"as": "svg"})
//	if err != nil {
//		// handle error
//	}
//	svg, _ := res.Text()
//
//	f, _ := os.Open("code.png")
//	defer f.Close()
//	out, err := qrcode.Decode(ctx, f)
//	if err != nil {
//		// handle error
//	}
//	fmt.Println(out.Data)
//
// # Options
//
// Options is a plain map. "as" selects the output (gif, svg, ascii, raw,
// term); every other key, known or not, is forwarded to the encoder. The
// defaults are {"as": "gif", "scale": 8}.
//
// # Error Handling
//
// Every failure is an *Error with one of three kinds:
//
//   - KindValidation – the input is missing or has the wrong shape.
//   - KindConverting – a file could not be read or decoded into pixels.
//   - KindProcessing – the codec failed or found no symbol.
//
// Match a kind with errors.Is(err, qrcode.ErrValidation) or read it with
// KindOf. Errors that already carry a kind are returned unchanged; the
// collaborator error behind a failure is available through errors.Unwrap.
package qrcode
