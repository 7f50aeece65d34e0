package task

import (
	"net/http"

	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	"github.com/saulo-duarte/chronos-planner/internal/config"
	util "github.com/saulo-duarte/chronos-planner/internal/utils"
	"github.com/saulo-duarte/chronos-planner/internal/validation"
)

type Handler struct {
	service TaskService
}

func NewHandler(service TaskService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	goalID, err := util.UUIDParam(r, "goalId")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var dto CreateTaskDTO
	if err := validation.DecodeJSON(r, createTaskSchema, &dto); err != nil {
		apperror.Write(w, r, err)
		return
	}

	t, err := h.service.CreateTask(r.Context(), goalID, dto)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, t)
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.FindAllByUser(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, tasks)
}

func (h *Handler) ListTasksByGoal(w http.ResponseWriter, r *http.Request) {
	goalID, err := util.UUIDParam(r, "goalId")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	tasks, err := h.service.FindAllByGoalID(r.Context(), goalID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, tasks)
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := util.UUIDParam(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	t, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, t)
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := util.UUIDParam(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var dto UpdateTaskDTO
	if err := validation.DecodeJSON(r, updateTaskSchema, &dto); err != nil {
		apperror.Write(w, r, err)
		return
	}

	t, err := h.service.UpdateTask(r.Context(), id, dto)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, t)
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := util.UUIDParam(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		apperror.Write(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
