// Package file reads stored images for decoding and validates uploaded ones.
//
// Two backends implement Source: LocalStorage, confined to a base directory,
// and S3Storage, backed by aws-sdk-go-v2. Both hand out Object values whose
// Open(ctx) method matches the file-like input accepted by qrcode.Decode, so a
// stored image can be decoded without reading it up front:
//
//	store, err := file.NewLocalStorage("./testdata")
//	if err != nil {
//		return err
//	}
//	res, err := qrcode.Decode(ctx, store.Object("codes/welcome.png"))
//
// Uploads arriving as *multipart.FileHeader are checked with
// ValidateImageUpload, which applies a size limit and sniffs the content type
// against ImageMIMETypes.
//
// # Error Handling
//
// Failures wrap the sentinels in errors.go. S3 API errors are classified into
// the same set (ErrFileNotFound, ErrAccessDenied, ErrOperationTimeout, ...),
// so callers need no SDK types:
//
//	if errors.Is(err, file.ErrFileNotFound) {
//		// 404
//	}
package file
