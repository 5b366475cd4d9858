package qrhttp_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrkit/pkg/file"
	"github.com/dmitrymomot/qrkit/pkg/qrcode"
	"github.com/dmitrymomot/qrkit/pkg/qrhttp"
)

const sampleText = "Hello, World!"

type errorResponse struct {
	Error struct {
		Kind      string `json:"kind"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	} `json:"error"`
}

func newRouter(t *testing.T, opts ...qrhttp.Option) http.Handler {
	t.Helper()
	return qrhttp.NewHandler(qrcode.NewService(), opts...).Routes()
}

func gifBytes(t *testing.T, text string) []byte {
	t.Helper()
	res, err := qrcode.Encode(text, nil)
	require.NoError(t, err)
	data, ok := res.Bytes()
	require.True(t, ok)
	return data
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postFile(t *testing.T, h http.Handler, field, name string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/decode", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestEncodeEndpoint(t *testing.T) {
	t.Parallel()
	h := newRouter(t)

	t.Run("gif by default", func(t *testing.T) {
		t.Parallel()
		rec := postJSON(t, h, "/encode", `{"text":"Hello, World!"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/gif", rec.Header().Get("Content-Type"))
		assert.Equal(t, "byte-buffer", rec.Header().Get(qrhttp.OutputTypeHeader))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("GIF8")))
	})

	t.Run("svg", func(t *testing.T) {
		t.Parallel()
		rec := postJSON(t, h, "/encode", `{"text":"Hello","options":{"as":"svg","scale":2,"optimize":true}}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
		assert.Equal(t, "string", rec.Header().Get(qrhttp.OutputTypeHeader))
		assert.True(t, strings.HasPrefix(rec.Body.String(), "<svg"))
	})

	t.Run("ascii", func(t *testing.T) {
		t.Parallel()
		rec := postJSON(t, h, "/encode", `{"text":"Hello","options":{"as":"ascii"}}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	})

	t.Run("raw matrix as json", func(t *testing.T) {
		t.Parallel()
		rec := postJSON(t, h, "/encode", `{"text":"Hello","options":{"as":"raw","border":0}}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Type string   `json:"type"`
			Data [][]bool `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "boolean-matrix", resp.Type)
		assert.Len(t, resp.Data, 21)
	})

	t.Run("term reports string kind over gif bytes", func(t *testing.T) {
		t.Parallel()
		rec := postJSON(t, h, "/encode", `{"text":"Hello","options":{"as":"term"}}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/gif", rec.Header().Get("Content-Type"))
		assert.Equal(t, "string", rec.Header().Get(qrhttp.OutputTypeHeader))
	})

	invalid := map[string]string{
		"empty text":   `{"text":""}`,
		"numeric text": `{"text":42}`,
		"missing text": `{}`,
		"empty body":   ``,
	}
	for name, body := range invalid {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rec := postJSON(t, h, "/encode", body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, "VALIDATION", resp.Error.Kind)
			assert.Equal(t, qrcode.MsgInvalidText, resp.Error.Message)
			assert.NotEmpty(t, resp.Error.RequestID)
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		rec := postJSON(t, h, "/encode", `{"text":`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "REQUEST", decodeError(t, rec).Error.Kind)
	})

	t.Run("codec rejection is a server error", func(t *testing.T) {
		t.Parallel()
		rec := postJSON(t, h, "/encode", `{"text":"Hello","options":{"ecc":"Z"}}`)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		resp := decodeError(t, rec)
		assert.Equal(t, "PROCESSING", resp.Error.Kind)
		assert.True(t, strings.HasPrefix(resp.Error.Message, "Encode failed: "))
	})
}

func TestDecodeEndpoint(t *testing.T) {
	t.Parallel()
	h := newRouter(t)

	t.Run("multipart upload", func(t *testing.T) {
		t.Parallel()
		rec := postFile(t, h, "file", "code.gif", gifBytes(t, sampleText))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var res qrcode.DecodeResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, sampleText, res.Data)
	})

	t.Run("upload without file field", func(t *testing.T) {
		t.Parallel()
		rec := postFile(t, h, "image", "code.gif", gifBytes(t, sampleText))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-image upload", func(t *testing.T) {
		t.Parallel()
		rec := postFile(t, h, "file", "notes.txt", []byte("just some text"))
		require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("oversized upload", func(t *testing.T) {
		t.Parallel()
		small := newRouter(t, qrhttp.WithMaxUploadSize(64))
		rec := postFile(t, small, "file", "code.gif", gifBytes(t, sampleText))
		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("json image data", func(t *testing.T) {
		t.Parallel()
		img, err := qrcode.ConvertFile(t.Context(), bytes.NewReader(gifBytes(t, sampleText)))
		require.NoError(t, err)

		pixels := make([]int, len(img.Data))
		for i, b := range img.Data {
			pixels[i] = int(b)
		}
		body, err := json.Marshal(map[string]any{"width": img.Width, "height": img.Height, "data": pixels})
		require.NoError(t, err)

		rec := postJSON(t, h, "/decode", string(body))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.JSONEq(t, `{"data":"Hello, World!"}`, rec.Body.String())
	})

	t.Run("json image data with base64 pixels", func(t *testing.T) {
		t.Parallel()
		img, err := qrcode.ConvertFile(t.Context(), bytes.NewReader(gifBytes(t, sampleText)))
		require.NoError(t, err)

		// encoding/json writes []byte as base64
		body, err := json.Marshal(img)
		require.NoError(t, err)

		rec := postJSON(t, h, "/decode", string(body))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("null body", func(t *testing.T) {
		t.Parallel()
		rec := postJSON(t, h, "/decode", `null`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, qrcode.MsgNoImageData, decodeError(t, rec).Error.Message)
	})

	t.Run("missing data field", func(t *testing.T) {
		t.Parallel()
		rec := postJSON(t, h, "/decode", `{"width":10,"height":10}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec).Error.Message, "Invalid image data structure")
	})

	t.Run("blank image has no symbol", func(t *testing.T) {
		t.Parallel()
		body, err := json.Marshal(qrcode.ImageData{Width: 40, Height: 40, Data: bytes.Repeat([]byte{0xff}, 40*40*4)})
		require.NoError(t, err)

		rec := postJSON(t, h, "/decode", string(body))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		resp := decodeError(t, rec)
		assert.Equal(t, "PROCESSING", resp.Error.Kind)
		assert.Equal(t, qrcode.MsgNoSymbolFound, resp.Error.Message)
	})
}

func TestDecodeStoredEndpoint(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "codes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "codes", "hello.gif"), gifBytes(t, sampleText), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "codes", "broken.gif"), []byte("GIF89a-truncated"), 0o644))
	store, err := file.NewLocalStorage(dir)
	require.NoError(t, err)

	h := newRouter(t, qrhttp.WithSource(store))

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := get("/decode/codes/hello.gif")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"data":"Hello, World!"}`, rec.Body.String())

	rec = get("/decode/codes/missing.gif")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get("/decode/codes/broken.gif")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "CONVERTING", decodeError(t, rec).Error.Kind)

	t.Run("without source", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/decode/a.gif", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHealth(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, "OK", string(body))
}
