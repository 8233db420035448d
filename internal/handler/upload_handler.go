package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
)

// formFile parses the multipart body and opens the "file" part. It writes the
// error response itself and reports false on failure. The part may be at most
// MaxUploadSize bytes.
func (h *Handlers) formFile(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, bool) {
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, "File exceeds maximum allowed size", http.StatusRequestEntityTooLarge)
		} else {
			writeError(w, "Invalid multipart form", http.StatusBadRequest)
		}
		return nil, nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, "No file uploaded or invalid type", http.StatusBadRequest)
		return nil, nil, false
	}
	if header.Size > h.Cfg.MaxUploadSize {
		file.Close()
		r.MultipartForm.RemoveAll()
		writeError(w, "File exceeds maximum allowed size", http.StatusRequestEntityTooLarge)
		return nil, nil, false
	}

	return file, header, true
}

func (h *Handlers) UploadFile(w http.ResponseWriter, r *http.Request) {
	file, header, ok := h.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()
	defer r.MultipartForm.RemoveAll()

	path, err := h.UploadService.SaveFile(r.Context(),
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
		header.Size,
	)
	if err != nil {
		mapServiceError(w, r, err)
		return
	}

	writeSuccess(w, "File uploaded successfully", map[string]string{"path": path}, http.StatusOK)
}

func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	file, header, ok := h.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()
	defer r.MultipartForm.RemoveAll()

	result, err := h.UploadService.SaveImage(r.Context(), header.Filename, file)
	if err != nil {
		mapServiceError(w, r, err)
		return
	}

	writeSuccess(w, "File uploaded successfully!", result, http.StatusOK)
}

func (h *Handlers) ListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.UploadService.ListFiles(r.Context())
	if err != nil {
		mapServiceError(w, r, err)
		return
	}

	writeSuccess(w, "Files retrieved successfully", files, http.StatusOK)
}
