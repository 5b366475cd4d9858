package qrhttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/qrkit/pkg/file"
	"github.com/dmitrymomot/qrkit/pkg/logger"
	"github.com/dmitrymomot/qrkit/pkg/qrcode"
)

// OutputTypeHeader reports the payload kind of an /encode response.
const OutputTypeHeader = "X-QR-Output-Type"

const (
	defaultMaxUpload = 10 << 20
	multipartMemory  = 8 << 20
	uploadField      = "file"
)

// Codec is the part of qrcode.Service the handlers use.
type Codec interface {
	EncodeAny(text any, opts qrcode.Options) (*qrcode.EncodeResult, error)
	Decode(ctx context.Context, input any) (*qrcode.DecodeResult, error)
}

// Handler serves the encode and decode endpoints.
type Handler struct {
	codec     Codec
	source    file.Source
	log       *slog.Logger
	maxUpload int64
}

// Option configures a Handler.
type Option func(*Handler)

// WithSource enables GET /decode/{path} for images held in src.
func WithSource(src file.Source) Option {
	return func(h *Handler) { h.source = src }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithMaxUploadSize limits request bodies and uploaded files, in bytes.
func WithMaxUploadSize(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxUpload = n
		}
	}
}

// NewHandler returns a Handler over codec.
func NewHandler(codec Codec, opts ...Option) *Handler {
	h := &Handler{
		codec:     codec,
		log:       slog.New(slog.DiscardHandler),
		maxUpload: defaultMaxUpload,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes mounts the endpoints on a new chi router:
//
//	GET  /health        liveness probe
//	POST /encode        {"text": ..., "options": {...}} -> rendered symbol
//	POST /decode        multipart "file" upload or JSON image data -> {"data": ...}
//	GET  /decode/{path} decode an image from the configured source
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)
	r.Post("/encode", h.encode)
	r.Post("/decode", h.decode)
	r.Get("/decode/*", h.decodeStored)
	return r
}

type encodeRequest struct {
	Text    any            `json:"text"`
	Options qrcode.Options `json:"options"`
}

type matrixResponse struct {
	Type qrcode.OutputType `json:"type"`
	Data [][]bool          `json:"data"`
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) encode(w http.ResponseWriter, r *http.Request) {
	var req encodeRequest
	if err := h.readJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.fail(w, r, err)
		return
	}

	res, err := h.codec.EncodeAny(req.Text, req.Options)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set(OutputTypeHeader, string(res.Type))
	switch data := res.Data.(type) {
	case []byte:
		w.Header().Set("Content-Type", http.DetectContentType(data))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	case string:
		ct := "text/plain; charset=utf-8"
		if strings.HasPrefix(data, "<svg") {
			ct = "image/svg+xml"
		}
		w.Header().Set("Content-Type", ct)
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, data)
	case [][]bool:
		writeJSON(w, http.StatusOK, matrixResponse{Type: res.Type, Data: data})
	default:
		h.fail(w, r, fmt.Errorf("unexpected encode payload %T", res.Data))
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) {
	var input any
	if isMultipart(r) {
		fh, err := h.uploadedFile(w, r)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		input = fh
	} else if err := h.readJSON(w, r, &input); err != nil && !errors.Is(err, io.EOF) {
		h.fail(w, r, err)
		return
	}

	res, err := h.codec.Decode(r.Context(), input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) decodeStored(w http.ResponseWriter, r *http.Request) {
	if h.source == nil {
		h.fail(w, r, ErrNoSource)
		return
	}

	path := chi.URLParam(r, "*")
	if !h.source.Exists(r.Context(), path) {
		h.fail(w, r, fmt.Errorf("%w: %s", file.ErrFileNotFound, path))
		return
	}

	res, err := h.codec.Decode(r.Context(), h.source.Object(path))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) uploadedFile(w http.ResponseWriter, r *http.Request) (*multipart.FileHeader, error) {
	// leave room for multipart framing around the file itself
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1<<20)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errors.Join(file.ErrFileTooLarge, err)
		}
		return nil, errors.Join(ErrInvalidBody, err)
	}

	files := r.MultipartForm.File[uploadField]
	if len(files) == 0 {
		return nil, ErrMissingFile
	}
	fh := files[0]
	if err := file.ValidateImageUpload(fh, h.maxUpload); err != nil {
		return nil, err
	}
	return fh, nil
}

// readJSON decodes the request body into v. Numbers stay json.Number so
// integer options and pixel values survive unchanged.
func (h *Handler) readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUpload))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return err
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errors.Join(file.ErrFileTooLarge, err)
		}
		return errors.Join(ErrInvalidBody, err)
	}
	return nil
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := statusFor(err)
	msg := err.Error()
	if kind == "INTERNAL" {
		msg = http.StatusText(status)
	}

	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.log.Log(r.Context(), level, "request failed",
		logger.ErrorKind(kind),
		logger.Error(err),
	)

	writeJSON(w, status, errorBody{Error: errorDetail{
		Kind:      kind,
		Message:   msg,
		RequestID: RequestID(r.Context()),
	}})
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.log.InfoContext(r.Context(), "request handled",
			logger.HTTPRequest(r.Method, r.URL.Path, ww.Status()),
			logger.Duration(time.Since(start)),
		)
	})
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
