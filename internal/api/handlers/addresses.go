package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"pictoroute/internal/api/dto"
	"pictoroute/internal/platform/obs"
	"pictoroute/internal/ports"
	"pictoroute/internal/services"
)

const defaultMaxUploadBytes = 32 << 20

type AddressHandler struct {
	Extractor   ports.AddressExtractor
	Geocoder    ports.Geocoder
	Concurrency int

	// MaxUploadBytes bounds the multipart body of ProcessImages.
	MaxUploadBytes int64
}

// ProcessImages reads the uploaded table photos from the "images" form field,
// extracts the addresses on them and geocodes each one.
func (h *AddressHandler) ProcessImages(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	limit := h.MaxUploadBytes
	if limit <= 0 {
		limit = defaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		writeError(w, r, http.StatusBadRequest, "at least one file in field \"images\" is required")
		return
	}

	images := make([]ports.Image, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "unreadable upload")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "unreadable upload")
			return
		}
		images = append(images, ports.Image{Filename: fh.Filename, Data: data})
	}

	addresses, err := services.ProcessImages(r.Context(), images, h.Extractor, h.Geocoder, h.Concurrency)
	if err != nil {
		log.Printf("req_id=%s process images failed: %v", obs.RequestID(r.Context()), err)
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AddressesFromDomain(addresses))
}

// RefetchCoordinates geocodes the addresses that have no coordinates or were
// marked to_update, and returns the full list.
func (h *AddressHandler) RefetchCoordinates(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req []dto.AddressDTO
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	addresses, err := services.RefetchCoordinates(r.Context(), dto.AddressesToDomain(req), h.Geocoder, h.Concurrency)
	if err != nil {
		log.Printf("req_id=%s refetch coordinates failed: %v", obs.RequestID(r.Context()), err)
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AddressesFromDomain(addresses))
}
