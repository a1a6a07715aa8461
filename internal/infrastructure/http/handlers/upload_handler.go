package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/chima-angwe/location-stamper-backend/internal/application/ports"
)

// UploadHandler relays photo bytes to the media store. The service never
// keeps file contents; it hands back the store's URL and public ID for the
// client to attach to a stamp.
type UploadHandler struct {
	media        ports.MediaStore
	maxFileBytes int64
	maxFiles     int
	log          zerolog.Logger
}

func NewUploadHandler(media ports.MediaStore, maxFileBytes int64, maxFiles int, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		media:        media,
		maxFileBytes: maxFileBytes,
		maxFiles:     maxFiles,
		log:          log,
	}
}

type uploadedPhoto struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// checkFile enforces the per-file constraints shared by both routes.
func (h *UploadHandler) checkFile(header *multipart.FileHeader) (contentType string, errMsg string) {
	if header.Size > h.maxFileBytes {
		return "", fmt.Sprintf("File too large. Maximum size is %dMB", h.maxFileBytes/(1024*1024))
	}
	contentType = header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", "Only image files are allowed"
	}
	return contentType, ""
}

func (h *UploadHandler) storeOne(r *http.Request, header *multipart.FileHeader) (*uploadedPhoto, int, string) {
	contentType, errMsg := h.checkFile(header)
	if errMsg != "" {
		return nil, http.StatusBadRequest, errMsg
	}
	file, err := header.Open()
	if err != nil {
		h.log.Error().Err(err).Msg("open uploaded file failed")
		return nil, http.StatusInternalServerError, "internal error"
	}
	defer file.Close()

	stored, err := h.media.Store(r.Context(), file, header.Size, contentType)
	if err != nil {
		h.log.Error().Err(err).Msg("store photo failed")
		return nil, http.StatusInternalServerError, "failed to upload photo"
	}
	return &uploadedPhoto{URL: stored.URL, PublicID: stored.PublicID}, 0, ""
}

// UploadPhoto handles POST /api/upload/photo with a single multipart field
// named "photo".
func (h *UploadHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileBytes+1<<20)
	if err := r.ParseMultipartForm(h.maxFileBytes); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Sprintf("File too large. Maximum size is %dMB", h.maxFileBytes/(1024*1024)))
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "No photo file provided")
		return
	}
	file.Close()

	photo, status, errMsg := h.storeOne(r, header)
	if errMsg != "" {
		writeErr(w, status, errMsg)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    photo,
	})
}

// UploadPhotos handles POST /api/upload/photos with up to maxFiles files in
// the repeated "photos" field. The batch is all-or-nothing on validation:
// one oversized or non-image file fails the whole request before anything is
// relayed.
func (h *UploadHandler) UploadPhotos(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(h.maxFiles)*h.maxFileBytes+1<<20)
	if err := r.ParseMultipartForm(h.maxFileBytes); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Sprintf("File too large. Maximum size is %dMB", h.maxFileBytes/(1024*1024)))
		return
	}
	if r.MultipartForm == nil {
		writeErr(w, http.StatusBadRequest, "No photo files provided")
		return
	}
	headers := r.MultipartForm.File["photos"]
	if len(headers) == 0 {
		writeErr(w, http.StatusBadRequest, "No photo files provided")
		return
	}
	if len(headers) > h.maxFiles {
		writeErr(w, http.StatusBadRequest, fmt.Sprintf("Too many files. Maximum is %d", h.maxFiles))
		return
	}
	for _, header := range headers {
		if _, errMsg := h.checkFile(header); errMsg != "" {
			writeErr(w, http.StatusBadRequest, errMsg)
			return
		}
	}

	photos := make([]uploadedPhoto, 0, len(headers))
	for _, header := range headers {
		photo, status, errMsg := h.storeOne(r, header)
		if errMsg != "" {
			writeErr(w, status, errMsg)
			return
		}
		photos = append(photos, *photo)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(photos),
		"data":    photos,
	})
}

// DeletePhoto handles DELETE /api/upload/photo/*. Public IDs are
// date-partitioned object keys and contain slashes, so the route is a chi
// wildcard rather than a named parameter. The media store's delete is
// idempotent, so a repeat delete still reports success.
func (h *UploadHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "*")
	if publicID == "" {
		writeErr(w, http.StatusBadRequest, "No public ID provided")
		return
	}
	if err := h.media.Delete(r.Context(), publicID); err != nil {
		h.log.Error().Err(err).Str("public_id", publicID).Msg("delete photo failed")
		writeErr(w, http.StatusInternalServerError, "failed to delete photo")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Photo deleted successfully",
	})
}
