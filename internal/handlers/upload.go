package handlers

import (
	"net/http"

	"github.com/brgykonek/brgykonek-backend/internal/services"
)

// UploadHandler serves generic file uploads to Cloudinary.
type UploadHandler struct {
	uploads *services.CloudinaryService
}

func NewUploadHandler(uploads *services.CloudinaryService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}

// UploadFile handles file uploads to Cloudinary.
func (h *UploadHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if h.uploads == nil {
		http.Error(w, "File upload service not available", http.StatusInternalServerError)
		return
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "No file provided: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	folder := r.URL.Query().Get("folder")
	if folder == "" {
		folder = "brgykonek"
	}

	url, err := h.uploads.UploadFileFromHeader(r.Context(), fileHeader, folder)
	if err != nil {
		http.Error(w, "Failed to upload file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		Success: true,
		Message: "File uploaded successfully",
		URL:     url,
	})
}
