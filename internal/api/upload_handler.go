package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ecofinds/ecofinds-api/internal/api/shared"
	"github.com/ecofinds/ecofinds-api/internal/platform/filestore"
	"github.com/ecofinds/ecofinds-api/internal/platform/logger"
	"github.com/ecofinds/ecofinds-api/internal/store"
	"github.com/go-chi/chi/v5"
)

// UploadResponse lists the stored names of accepted files. Files with
// a disallowed extension are skipped silently, so the list can be
// shorter than the uploaded batch.
type UploadResponse struct {
	Message string   `json:"message"`
	Files   []string `json:"files"`
}

// UploadHandler handles image upload and download requests.
type UploadHandler struct {
	files       *filestore.FileStore
	maxFileSize int64
	logger      *slog.Logger
}

// NewUploadHandler creates a new UploadHandler. maxFileSize bounds the
// whole multipart request body in bytes.
func NewUploadHandler(files *filestore.FileStore, maxFileSize int64, logger *slog.Logger) *UploadHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UploadHandler")
	}

	return &UploadHandler{
		files:       files,
		maxFileSize: maxFileSize,
		logger:      logger.With(slog.String("component", "upload_handler")),
	}
}

// UploadFiles handles POST /api/upload requests with a multipart file
// list under the field "files".
func (h *UploadHandler) UploadFiles(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		log.Warn("failed to parse multipart form", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart request")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No files provided")
		return
	}

	stored := make([]string, 0, len(headers))
	for _, header := range headers {
		if header.Filename == "" || !filestore.Allowed(header.Filename) {
			log.Debug("skipping disallowed file", slog.String("filename", header.Filename))
			continue
		}

		f, err := header.Open()
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to read uploaded file", err)
			return
		}

		storedName, err := h.files.Store(header.Filename, f)
		_ = f.Close()
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to store uploaded file", err)
			return
		}

		stored = append(stored, storedName)
	}

	log.Info("files uploaded", slog.Int("accepted", len(stored)), slog.Int("received", len(headers)))
	shared.RespondWithJSON(w, r, http.StatusOK, UploadResponse{
		Message: fmt.Sprintf("%d files uploaded successfully", len(stored)),
		Files:   stored,
	})
}

// ServeFile handles GET /uploads/{filename} requests, returning the
// raw stored bytes.
func (h *UploadHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	path, err := h.files.Path(filename)
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "File not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to read file", err)
		return
	}

	http.ServeFile(w, r, path)
}
