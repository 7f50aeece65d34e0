package goal

import (
	"net/http"

	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	"github.com/saulo-duarte/chronos-planner/internal/config"
	util "github.com/saulo-duarte/chronos-planner/internal/utils"
	"github.com/saulo-duarte/chronos-planner/internal/validation"
)

type Handler struct {
	service GoalService
}

func NewHandler(service GoalService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	projectID, err := util.UUIDParam(r, "projectId")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var dto CreateGoalDTO
	if err := validation.DecodeJSON(r, createGoalSchema, &dto); err != nil {
		apperror.Write(w, r, err)
		return
	}

	g, err := h.service.CreateGoal(r.Context(), projectID, dto)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, g)
}

func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.service.ListGoals(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, goals)
}

func (h *Handler) ListGoalsByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := util.UUIDParam(r, "projectId")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	goals, err := h.service.ListGoalsByProject(r.Context(), projectID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, goals)
}

func (h *Handler) GetGoal(w http.ResponseWriter, r *http.Request) {
	id, err := util.UUIDParam(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	g, err := h.service.GetGoal(r.Context(), id)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, g)
}

func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, err := util.UUIDParam(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var dto UpdateGoalDTO
	if err := validation.DecodeJSON(r, updateGoalSchema, &dto); err != nil {
		apperror.Write(w, r, err)
		return
	}

	g, err := h.service.UpdateGoal(r.Context(), id, dto)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, g)
}

func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := util.UUIDParam(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	if err := h.service.DeleteGoal(r.Context(), id); err != nil {
		apperror.Write(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetAllocation(w http.ResponseWriter, r *http.Request) {
	id, err := util.UUIDParam(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	summary, err := h.service.GetAllocation(r.Context(), id)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, summary)
}
