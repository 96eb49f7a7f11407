package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"prema-telhados/go_backend/internal/domain/quote"
	"prema-telhados/go_backend/internal/obs"
)

const (
	maxPhotoBytes  = 10 << 20
	maxUploadBytes = 50 << 20
)

var photoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

type photoResult struct {
	Filename string       `json:"filename"`
	Photo    *quote.Photo `json:"photo,omitempty"`
	Reason   string       `json:"reason,omitempty"`
}

type photoUploadResponse struct {
	Uploaded []photoResult `json:"uploaded"`
	Skipped  []photoResult `json:"skipped"`
}

type uploadedFile struct {
	filename string
	data     []byte
}

// UploadPhotos accepts one or more multipart files, appended in the order
// they were sent. Every file gets the caption form value; files that are not
// JPEG, PNG or GIF are skipped.
func (h *Handlers) UploadPhotos(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	mr, err := r.MultipartReader()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", err)
		return
	}

	var (
		files   []uploadedFile
		caption string
	)
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form", err)
			return
		}
		if part.FileName() == "" {
			if part.FormName() == "caption" {
				b, _ := io.ReadAll(io.LimitReader(part, 4096))
				caption = strings.TrimSpace(string(b))
			}
			part.Close()
			continue
		}
		data, err := io.ReadAll(io.LimitReader(part, maxPhotoBytes+1))
		part.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form", err)
			return
		}
		files = append(files, uploadedFile{filename: part.FileName(), data: data})
	}
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no files", nil)
		return
	}

	_, d := h.draft(r)
	resp := photoUploadResponse{Uploaded: []photoResult{}, Skipped: []photoResult{}}
	for _, f := range files {
		switch {
		case len(f.data) > maxPhotoBytes:
			resp.Skipped = append(resp.Skipped, photoResult{Filename: f.filename, Reason: "file too large"})
			continue
		case len(f.data) == 0:
			resp.Skipped = append(resp.Skipped, photoResult{Filename: f.filename, Reason: "empty file"})
			continue
		}

		// sniffed; the declared Content-Type is ignored
		contentType := http.DetectContentType(f.data)
		if !photoTypes[contentType] {
			resp.Skipped = append(resp.Skipped, photoResult{Filename: f.filename, Reason: "unsupported image type"})
			continue
		}

		p := d.AddPhoto(contentType, f.data, caption)
		resp.Uploaded = append(resp.Uploaded, photoResult{Filename: f.filename, Photo: &p})
	}

	obs.Logger.Info("photos_uploaded", "uploaded", len(resp.Uploaded), "skipped", len(resp.Skipped))
	status := http.StatusCreated
	if len(resp.Uploaded) == 0 {
		status = http.StatusUnsupportedMediaType
	}
	writeJSON(w, status, resp)
}

func (h *Handlers) GetPhoto(w http.ResponseWriter, r *http.Request) {
	_, d := h.draft(r)
	id := chi.URLParam(r, "id")
	for _, p := range d.Snapshot().Photos {
		if p.ID == id {
			w.Header().Set("Content-Type", p.ContentType)
			w.Header().Set("Cache-Control", "private, max-age=300")
			w.Write(p.Data)
			return
		}
	}
	writeError(w, http.StatusNotFound, "photo not found", nil)
}

type captionRequest struct {
	Caption string `json:"caption"`
}

func (h *Handlers) CaptionPhoto(w http.ResponseWriter, r *http.Request) {
	var req captionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request", err)
		return
	}
	_, d := h.draft(r)
	if err := d.CaptionPhoto(chi.URLParam(r, "id"), req.Caption); err != nil {
		writePhotoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) RemovePhoto(w http.ResponseWriter, r *http.Request) {
	_, d := h.draft(r)
	if err := d.RemovePhoto(chi.URLParam(r, "id")); err != nil {
		writePhotoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writePhotoError(w http.ResponseWriter, err error) {
	if errors.Is(err, quote.ErrPhotoNotFound) {
		writeError(w, http.StatusNotFound, "photo not found", nil)
		return
	}
	writeError(w, http.StatusInternalServerError, "photo update failed", err)
}
