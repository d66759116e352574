package handlers

import (
	"net/http"

	"github.com/preston-bernstein/bookplay-admin/internal/domain"
)

// CourtSchedule returns the court's weekly rules and exceptions with their
// assignment state.
func (h *Handler) CourtSchedule(w http.ResponseWriter, r *http.Request) {
	business, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	schedule, err := h.assignment.Schedule(r.Context(), business.ID, r.PathValue("courtID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule, h.logger)
}

// ToggleAvailability attaches or detaches a weekly rule.
func (h *Handler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.activeBusiness(w, r); !ok {
		return
	}
	result, err := h.assignment.ToggleWeekly(r.Context(), r.PathValue("courtID"), r.PathValue("ruleID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result, h.logger)
}

// ToggleException adds or removes the court from an exception rule.
func (h *Handler) ToggleException(w http.ResponseWriter, r *http.Request) {
	business, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	result, err := h.assignment.ToggleException(r.Context(), business.ID, r.PathValue("courtID"), r.PathValue("ruleID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result, h.logger)
}

// CreateCourtAvailability creates a weekly rule and attaches it to the court.
func (h *Handler) CreateCourtAvailability(w http.ResponseWriter, r *http.Request) {
	business, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	var in domain.CreateAvailabilityRuleInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.badRequest(w, r, err.Error())
		return
	}
	rule, err := h.assignment.CreateRuleAndAssign(r.Context(), business.ID, r.PathValue("courtID"), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rule, h.logger)
}

// CreateCourtException creates an exception rule covering only this court.
func (h *Handler) CreateCourtException(w http.ResponseWriter, r *http.Request) {
	business, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	var in domain.CreateExceptionRuleInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.badRequest(w, r, err.Error())
		return
	}
	rule, err := h.assignment.CreateExceptionForCourt(r.Context(), business.ID, r.PathValue("courtID"), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rule, h.logger)
}

func (h *Handler) ListAvailabilityRules(w http.ResponseWriter, r *http.Request) {
	business, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	rules, err := h.assignment.AvailabilityRules(r.Context(), business.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rules, h.logger)
}

func (h *Handler) ListExceptionRules(w http.ResponseWriter, r *http.Request) {
	business, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	rules, err := h.assignment.ExceptionRules(r.Context(), business.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rules, h.logger)
}

func (h *Handler) DeleteAvailabilityRule(w http.ResponseWriter, r *http.Request) {
	business, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	if err := h.assignment.DeleteAvailabilityRule(r.Context(), business.ID, r.PathValue("ruleID")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteExceptionRule(w http.ResponseWriter, r *http.Request) {
	business, ok := h.activeBusiness(w, r)
	if !ok {
		return
	}
	if err := h.assignment.DeleteExceptionRule(r.Context(), business.ID, r.PathValue("ruleID")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
