package project

import (
	"net/http"

	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	"github.com/saulo-duarte/chronos-planner/internal/config"
	util "github.com/saulo-duarte/chronos-planner/internal/utils"
	"github.com/saulo-duarte/chronos-planner/internal/validation"
)

type Handler struct {
	service ProjectService
}

func NewHandler(service ProjectService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var dto CreateProjectDTO
	if err := validation.DecodeJSON(r, createProjectSchema, &dto); err != nil {
		apperror.Write(w, r, err)
		return
	}

	p, err := h.service.CreateProject(r.Context(), dto)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, p)
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.ListProjects(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, projects)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := util.UUIDParam(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	p, err := h.service.GetProject(r.Context(), id)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, p)
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := util.UUIDParam(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var dto UpdateProjectDTO
	if err := validation.DecodeJSON(r, updateProjectSchema, &dto); err != nil {
		apperror.Write(w, r, err)
		return
	}

	p, err := h.service.UpdateProject(r.Context(), id, dto)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, p)
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := util.UUIDParam(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	if err := h.service.DeleteProject(r.Context(), id); err != nil {
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
