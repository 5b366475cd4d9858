package qrhttp

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/qrkit/pkg/file"
	"github.com/dmitrymomot/qrkit/pkg/qrcode"
)

var (
	ErrMissingFile = errors.New("multipart form has no file field")
	ErrInvalidBody = errors.New("request body is not valid JSON")
	ErrNoSource    = errors.New("no stored image source configured")
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps a failure onto an HTTP status and the kind reported to the
// client.
func statusFor(err error) (int, string) {
	switch kind := qrcode.KindOf(err); kind {
	case qrcode.KindValidation:
		return http.StatusBadRequest, string(kind)
	case qrcode.KindConverting:
		return http.StatusUnprocessableEntity, string(kind)
	case qrcode.KindProcessing:
		if err.Error() == qrcode.MsgNoSymbolFound {
			return http.StatusUnprocessableEntity, string(kind)
		}
		return http.StatusInternalServerError, string(kind)
	}

	switch {
	case errors.Is(err, file.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "UPLOAD"
	case errors.Is(err, file.ErrMIMETypeNotAllowed):
		return http.StatusUnsupportedMediaType, "UPLOAD"
	case errors.Is(err, file.ErrFileNotFound), errors.Is(err, file.ErrInvalidPath):
		return http.StatusNotFound, "SOURCE"
	case errors.Is(err, ErrMissingFile), errors.Is(err, ErrInvalidBody), errors.Is(err, file.ErrNilFileHeader):
		return http.StatusBadRequest, "REQUEST"
	case errors.Is(err, ErrNoSource):
		return http.StatusNotFound, "SOURCE"
	}
	return http.StatusInternalServerError, "INTERNAL"
}
