package habit

import (
	"net/http"

	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	"github.com/saulo-duarte/chronos-planner/internal/config"
	"github.com/saulo-duarte/chronos-planner/internal/recurrence"
	util "github.com/saulo-duarte/chronos-planner/internal/utils"
	"github.com/saulo-duarte/chronos-planner/internal/validation"
)

type Handler struct {
	service HabitService
}

func NewHandler(service HabitService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	var dto recurrence.CreateItemDTO
	if err := validation.DecodeJSON(r, recurrence.CreateItemSchema, &dto); err != nil {
		apperror.Write(w, r, err)
		return
	}

	hb, err := h.service.CreateHabit(r.Context(), dto)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, hb)
}

func (h *Handler) ListHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := h.service.ListHabits(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, habits)
}

func (h *Handler) ListDueHabits(w http.ResponseWriter, r *http.Request) {
	on, err := util.DateQuery(r, "date")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	habits, err := h.service.ListDueHabits(r.Context(), on)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, habits)
}

func (h *Handler) GetHabit(w http.ResponseWriter, r *http.Request) {
	id, err := util.UUIDParam(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	hb, err := h.service.GetHabit(r.Context(), id)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, hb)
}

func (h *Handler) UpdateHabit(w http.ResponseWriter, r *http.Request) {
	id, err := util.UUIDParam(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var dto recurrence.UpdateItemDTO
	if err := validation.DecodeJSON(r, recurrence.UpdateItemSchema, &dto); err != nil {
		apperror.Write(w, r, err)
		return
	}

	hb, err := h.service.UpdateHabit(r.Context(), id, dto)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, hb)
}

func (h *Handler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	id, err := util.UUIDParam(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	if err := h.service.DeleteHabit(r.Context(), id); err != nil {
		apperror.Write(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CompleteHabit(w http.ResponseWriter, r *http.Request) {
	id, err := util.UUIDParam(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	dto, err := recurrence.DecodeComplete(r)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	hb, err := h.service.CompleteHabit(r.Context(), id, dto.Date())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, hb)
}
