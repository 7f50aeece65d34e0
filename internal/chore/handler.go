package chore

import (
	"net/http"

	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	"github.com/saulo-duarte/chronos-planner/internal/config"
	"github.com/saulo-duarte/chronos-planner/internal/recurrence"
	util "github.com/saulo-duarte/chronos-planner/internal/utils"
	"github.com/saulo-duarte/chronos-planner/internal/validation"
)

type Handler struct {
	service ChoreService
}

func NewHandler(service ChoreService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateChore(w http.ResponseWriter, r *http.Request) {
	var dto recurrence.CreateItemDTO
	if err := validation.DecodeJSON(r, recurrence.CreateItemSchema, &dto); err != nil {
		apperror.Write(w, r, err)
		return
	}

	c, err := h.service.CreateChore(r.Context(), dto)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, c)
}

func (h *Handler) ListChores(w http.ResponseWriter, r *http.Request) {
	chores, err := h.service.ListChores(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, chores)
}

func (h *Handler) ListDueChores(w http.ResponseWriter, r *http.Request) {
	on, err := util.DateQuery(r, "date")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	chores, err := h.service.ListDueChores(r.Context(), on)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, chores)
}

func (h *Handler) GetChore(w http.ResponseWriter, r *http.Request) {
	id, err := util.UUIDParam(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	c, err := h.service.GetChore(r.Context(), id)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, c)
}

func (h *Handler) UpdateChore(w http.ResponseWriter, r *http.Request) {
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

	c, err := h.service.UpdateChore(r.Context(), id, dto)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteChore(w http.ResponseWriter, r *http.Request) {
	id, err := util.UUIDParam(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	if err := h.service.DeleteChore(r.Context(), id); err != nil {
		apperror.Write(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CompleteChore(w http.ResponseWriter, r *http.Request) {
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

	c, err := h.service.CompleteChore(r.Context(), id, dto.Date())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, c)
}
