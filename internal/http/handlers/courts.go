package handlers

import (
	"net/http"

	"github.com/preston-bernstein/bookplay-admin/internal/domain"
)

// ListCourts returns the active business's courts.
func (h *Handler) ListCourts(w http.ResponseWriter, r *http.Request) {
	business, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	list, err := h.courts.Courts(r.Context(), business.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list, h.logger)
}

func (h *Handler) CourtByID(w http.ResponseWriter, r *http.Request) {
	business, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	court, err := h.courts.CourtByID(r.Context(), business.ID, r.PathValue("courtID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, court, h.logger)
}

func (h *Handler) CreateCourt(w http.ResponseWriter, r *http.Request) {
	business, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	var in domain.CreateCourtInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.badRequest(w, r, err.Error())
		return
	}
	court, err := h.courts.Create(r.Context(), business.ID, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, court, h.logger)
}

func (h *Handler) UpdateCourt(w http.ResponseWriter, r *http.Request) {
	business, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	var in domain.UpdateCourtInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.badRequest(w, r, err.Error())
		return
	}
	court, err := h.courts.Update(r.Context(), business.ID, r.PathValue("courtID"), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, court, h.logger)
}

func (h *Handler) DeleteCourt(w http.ResponseWriter, r *http.Request) {
	business, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	if err := h.courts.Delete(r.Context(), business.ID, r.PathValue("courtID")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
