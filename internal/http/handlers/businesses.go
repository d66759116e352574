package handlers

import (
	"net/http"

	"github.com/preston-bernstein/bookplay-admin/internal/domain"
)

// ListBusinesses returns the businesses visible to the session.
func (h *Handler) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	if _, err := h.session.RequireAuthenticated(); err != nil {
		h.fail(w, r, err)
		return
	}
	list, err := h.businesses.Businesses(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list, h.logger)
}

// CreateBusiness onboards the account's first business and makes it active.
func (h *Handler) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	if err := h.session.RequireNoBusiness(); err != nil {
		h.fail(w, r, err)
		return
	}
	var in domain.CreateBusinessInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.badRequest(w, r, err.Error())
		return
	}
	business, err := h.businesses.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.session.SetBusiness(business)
	writeJSON(w, http.StatusCreated, business, h.logger)
}

// CurrentBusiness returns the active business.
func (h *Handler) CurrentBusiness(w http.ResponseWriter, r *http.Request) {
	active, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	business, err := h.businesses.BusinessByID(r.Context(), active.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, business, h.logger)
}

// UpdateBusiness edits the active business.
func (h *Handler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	active, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	var in domain.UpdateBusinessInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.badRequest(w, r, err.Error())
		return
	}
	business, err := h.businesses.Update(r.Context(), active.ID, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.session.SetBusiness(business)
	writeJSON(w, http.StatusOK, business, h.logger)
}

// ListMembers returns the staff of the active business.
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	active, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	members, err := h.businesses.Members(r.Context(), active.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, members, h.logger)
}

func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	active, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	var in domain.CreateBusinessUserInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.badRequest(w, r, err.Error())
		return
	}
	member, err := h.businesses.AddMember(r.Context(), active.ID, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, member, h.logger)
}

func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	active, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	var in domain.UpdateBusinessUserInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.badRequest(w, r, err.Error())
		return
	}
	member, err := h.businesses.UpdateMember(r.Context(), active.ID, r.PathValue("userID"), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, member, h.logger)
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	active, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	if err := h.businesses.RemoveMember(r.Context(), active.ID, r.PathValue("userID")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
