package api

import (
	"bytes"
	"encoding/json"
	"image"
	"image/jpeg"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ecofinds/ecofinds-api/internal/platform/filestore"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUploadRouter(t *testing.T) *chi.Mux {
	t.Helper()

	files, err := filestore.New(t.TempDir(), 800, 600, nil)
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	handler := NewUploadHandler(files, 16<<20, log)

	r := chi.NewRouter()
	r.Post("/api/upload", handler.UploadFiles)
	r.Get("/uploads/{filename}", handler.ServeFile)
	return r
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 20, 20)), nil))
	return buf.Bytes()
}

func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestUploadFilterByExtension(t *testing.T) {
	t.Parallel()
	router := newUploadRouter(t)

	// An .exe among .jpg files is silently skipped.
	body, contentType := multipartBody(t, map[string][]byte{
		"photo.jpg": jpegBytes(t),
		"virus.exe": []byte("MZ"),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Files, 1)
	assert.True(t, strings.HasSuffix(resp.Files[0], "_photo.jpg"))
	assert.Equal(t, "1 files uploaded successfully", resp.Message)
}

func TestUploadNoFiles(t *testing.T) {
	t.Parallel()
	router := newUploadRouter(t)

	body, contentType := multipartBody(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadThenServeRoundTrip(t *testing.T) {
	t.Parallel()
	router := newUploadRouter(t)

	content := jpegBytes(t)
	body, contentType := multipartBody(t, map[string][]byte{"photo.jpg": content})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Files, 1)

	get := httptest.NewRequest(http.MethodGet, "/uploads/"+resp.Files[0], nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, get)

	require.Equal(t, http.StatusOK, getRec.Code)
	assert.Equal(t, content, getRec.Body.Bytes())
}

func TestServeUnknownFile(t *testing.T) {
	t.Parallel()
	router := newUploadRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/uploads/unknown.jpg", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
