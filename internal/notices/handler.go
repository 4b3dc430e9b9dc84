package notices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/resmedx/noticeboard/internal/blob"
	"github.com/resmedx/noticeboard/internal/models"
	"github.com/resmedx/noticeboard/internal/store"
)

// multipart field carrying the uploaded PDF.
const fileField = "pdf"

const maxUploadMemory = 32 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// NoticeStore defines the interface for notice metadata persistence.
type NoticeStore interface {
	Insert(ctx context.Context, n *models.Notice) (string, error)
	List(ctx context.Context) ([]models.Notice, error)
	GetByID(ctx context.Context, id string) (*models.Notice, error)
	GetByFileName(ctx context.Context, fileName string) (*models.Notice, error)
	UpdateOriginalName(ctx context.Context, id, originalName string) error
	Delete(ctx context.Context, id string) error
}

// Handler holds notice HTTP handlers.
type Handler struct {
	notices NoticeStore
	blobs   blob.Store

	// strictDelete makes a failed blob removal abort the delete
	// instead of being logged and tolerated.
	strictDelete bool
}

func NewHandler(notices NoticeStore, blobs blob.Store, strictDelete bool) *Handler {
	return &Handler{notices: notices, blobs: blobs, strictDelete: strictDelete}
}

// isPDF applies the upload allow-list: the extension and the declared
// content type must both look like PDF.
func isPDF(originalName, contentType string) bool {
	if strings.ToLower(filepath.Ext(originalName)) != ".pdf" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.Contains(mt, "pdf")
}

// Upload stores the PDF blob and its metadata record. The blob is only
// written once title, presence and type checks have all passed; if the
// metadata insert then fails, the blob is removed again.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No file uploaded"})
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Title is required"})
		return
	}

	file, header, err := r.FormFile(fileField)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !isPDF(header.Filename, contentType) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Only PDFs are allowed"})
		return
	}

	fileName := uuid.New().String() + strings.ToLower(filepath.Ext(header.Filename))
	filePath, err := h.blobs.Save(r.Context(), fileName, file, header.Size, contentType)
	if err != nil {
		log.Printf("save blob: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to store file"})
		return
	}

	notice := &models.Notice{
		Title:        title,
		OriginalName: header.Filename,
		FileName:     fileName,
		FilePath:     filePath,
	}
	if _, err := h.notices.Insert(r.Context(), notice); err != nil {
		// Compensate so the blob does not leak.
		if rmErr := h.blobs.Remove(r.Context(), fileName); rmErr != nil {
			log.Printf("remove orphaned blob %s: %v", fileName, rmErr)
		}
		log.Printf("insert notice: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to save file data in database"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "File uploaded successfully",
		"data":    notice,
	})
}

// List returns every notice.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	notices, err := h.notices.List(r.Context())
	if err != nil {
		log.Printf("list notices: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch notices"})
		return
	}
	if notices == nil {
		notices = []models.Notice{}
	}
	writeJSON(w, http.StatusOK, notices)
}

// Download streams a blob by its generated filename.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	fileName := chi.URLParam(r, "filename")

	rc, contentType, err := h.blobs.Open(r.Context(), fileName)
	if err != nil {
		if !errors.Is(err, blob.ErrNotFound) && !errors.Is(err, blob.ErrInvalidName) {
			log.Printf("open blob %s: %v", fileName, err)
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "File not found"})
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	// Offer the uploader's filename when the metadata record is known.
	if n, err := h.notices.GetByFileName(r.Context(), fileName); err == nil && n.OriginalName != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", n.OriginalName))
	}
	if _, err := io.Copy(w, rc); err != nil {
		log.Printf("stream blob %s: %v", fileName, err)
	}
}

// Update changes a notice's display filename.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.OriginalName) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Original name is required"})
		return
	}

	if err := h.notices.UpdateOriginalName(r.Context(), id, req.OriginalName); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "File not found"})
			return
		}
		log.Printf("update notice %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update file metadata"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "File metadata updated successfully"})
}

// Delete removes a notice's blob and metadata record. By default a
// failed blob removal is logged and the metadata is deleted anyway.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	notice, err := h.notices.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "File not found"})
			return
		}
		log.Printf("find notice %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete file"})
		return
	}

	if err := h.blobs.Remove(r.Context(), notice.FileName); err != nil {
		log.Printf("remove blob %s: %v", notice.FileName, err)
		if h.strictDelete {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete file"})
			return
		}
	}

	if err := h.notices.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "File not found"})
			return
		}
		log.Printf("delete notice %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete file"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "File deleted successfully"})
}
