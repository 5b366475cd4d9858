package file_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func createFileHeader(filename string, content []byte) *multipart.FileHeader {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil
	}
	if _, err := part.Write(content); err != nil {
		return nil
	}
	if err := writer.Close(); err != nil {
		return nil
	}

	req := &http.Request{
		Method: http.MethodPost,
		Header: http.Header{"Content-Type": []string{writer.FormDataContentType()}},
		Body:   io.NopCloser(body),
	}
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		return nil
	}
	if files := req.MultipartForm.File["file"]; len(files) > 0 {
		return files[0]
	}
	return nil
}
