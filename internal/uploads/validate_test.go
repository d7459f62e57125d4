package uploads

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

func pngBytes(size int) []byte {
	b := make([]byte, size)
	copy(b, pngMagic)
	return b
}

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("images", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["images"][0]
}

func TestValidate_AcceptsPNG(t *testing.T) {
	rules := DefaultRules(5 << 20)
	fh := fileHeader(t, "photo.png", pngBytes(1024))
	assert.NoError(t, rules.Validate(fh))
}

func TestValidate_SixMegabytesAgainstFiveLimit(t *testing.T) {
	rules := DefaultRules(5 << 20)
	fh := fileHeader(t, "big.png", pngBytes(6<<20))
	assert.ErrorIs(t, rules.Validate(fh), ErrTooLarge)
}

func TestValidate_ExtensionNotAllowed(t *testing.T) {
	rules := DefaultRules(5 << 20)
	// real PNG content, wrong extension: still rejected
	fh := fileHeader(t, "photo.exe", pngBytes(1024))
	assert.ErrorIs(t, rules.Validate(fh), ErrBadExtension)
}

func TestValidate_ContentNotAllowed(t *testing.T) {
	rules := DefaultRules(5 << 20)
	// allowed extension, but the bytes are a script
	fh := fileHeader(t, "photo.png", []byte("#!/bin/sh\nrm -rf /\n"))
	assert.ErrorIs(t, rules.Validate(fh), ErrBadType)
}

func TestValidate_JPEG(t *testing.T) {
	rules := DefaultRules(5 << 20)
	jpeg := append([]byte{0xff, 0xd8, 0xff, 0xe0}, make([]byte, 512)...)
	fh := fileHeader(t, "photo.jpg", jpeg)
	assert.NoError(t, rules.Validate(fh))
}
