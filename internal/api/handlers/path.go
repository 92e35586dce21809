package handlers

import (
	"log"
	"net/http"
	"pictoroute/internal/api/dto"
	"pictoroute/internal/platform/obs"
	"pictoroute/internal/services"
)

type PathHandler struct {
	Options services.PlanOptions
}

// ShortestPath orders the posted addresses into a round trip from the home
// base and returns its length, navigation links and visiting order.
func (h *PathHandler) ShortestPath(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req []dto.AddressDTO
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	path, err := services.PlanShortestPath(r.Context(), dto.AddressesToDomain(req), h.Options)
	if err != nil {
		log.Printf("req_id=%s plan shortest path failed: %v", obs.RequestID(r.Context()), err)
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ShortestPathFromDomain(path))
}
