package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

// sizeHeader names both the header and the query parameter carrying the
// requested representation size.
const sizeHeader = "Size"

type createImageRequest struct {
	Image string `json:"image"`
}

type createImageResponse struct {
	ID string `json:"id"`
}

func (s *Server) handleCreateImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	var req createImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	id, err := s.service.CreateImage(r.Context(), req.Image)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, createImageResponse{ID: id})
}

func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	img, err := s.service.GetImage(r.Context(), r.PathValue("imageId"), sizeHint(r))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, img)
}

// handleGetImageJPEG serves the decoded image bytes. The response is always
// labelled image/jpeg whatever subtype the stored data-URI declares.
func (s *Server) handleGetImageJPEG(w http.ResponseWriter, r *http.Request) {
	data, err := s.service.GetImageBinary(r.Context(), r.PathValue("imageId"), sizeHint(r))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		s.logger.Error("write image failed", "image_id", r.PathValue("imageId"), "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sizeHint reads the Size header, falling back to the Size query parameter.
func sizeHint(r *http.Request) string {
	if v := r.Header.Get(sizeHeader); v != "" {
		return v
	}
	return r.URL.Query().Get(sizeHeader)
}
