package project

import (
	util "github.com/saulo-duarte/chronos-planner/internal/utils"
	"github.com/saulo-duarte/chronos-planner/internal/validation"
)

type CreateProjectDTO struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	WeeklyHours float64         `json:"weekly_hours"`
	StartDate   util.LocalDate  `json:"start_date"`
	EndDate     *util.LocalDate `json:"end_date"`
	Status      *Status         `json:"status"`
	Color       string          `json:"color"`
}

// UpdateProjectDTO carries only the fields present in the request.
type UpdateProjectDTO struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	WeeklyHours *float64        `json:"weekly_hours"`
	StartDate   *util.LocalDate `json:"start_date"`
	EndDate     *util.LocalDate `json:"end_date"`
	Status      *Status         `json:"status"`
	Color       *string         `json:"color"`
}

func (dto CreateProjectDTO) toEntity() *Project {
	p := &Project{
		Name:        dto.Name,
		Description: dto.Description,
		WeeklyHours: dto.WeeklyHours,
		StartDate:   dto.StartDate,
		EndDate:     dto.EndDate,
		Status:      NOT_STARTED,
		Color:       dto.Color,
	}
	if dto.Status != nil {
		p.Status = *dto.Status
	}
	return p
}

func (dto UpdateProjectDTO) apply(p *Project) {
	if dto.Name != nil {
		p.Name = *dto.Name
	}
	if dto.Description != nil {
		p.Description = dto.Description
	}
	if dto.WeeklyHours != nil {
		p.WeeklyHours = *dto.WeeklyHours
	}
	if dto.StartDate != nil {
		p.StartDate = *dto.StartDate
	}
	if dto.EndDate != nil {
		p.EndDate = dto.EndDate
	}
	if dto.Status != nil {
		p.Status = *dto.Status
	}
	if dto.Color != nil {
		p.Color = *dto.Color
	}
}

var createProjectSchema = validation.MustCompile("project_create", `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["name", "weekly_hours", "start_date", "color"],
	"properties": {
		"name": {"type": "string", "minLength": 1, "maxLength": 255},
		"description": {"type": ["string", "null"], "maxLength": 1000},
		"weekly_hours": {"type": "number", "exclusiveMinimum": 0, "maximum": 168},
		"start_date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
		"end_date": {"type": ["string", "null"], "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
		"status": {"enum": ["Not Started", "In Progress", "Completed"]},
		"color": {"type": "string", "pattern": "^#[0-9A-Fa-f]{6}$"}
	}
}`)

var updateProjectSchema = validation.MustCompile("project_update", `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"name": {"type": "string", "minLength": 1, "maxLength": 255},
		"description": {"type": ["string", "null"], "maxLength": 1000},
		"weekly_hours": {"type": "number", "exclusiveMinimum": 0, "maximum": 168},
		"start_date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
		"end_date": {"type": ["string", "null"], "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
		"status": {"enum": ["Not Started", "In Progress", "Completed"]},
		"color": {"type": "string", "pattern": "^#[0-9A-Fa-f]{6}$"}
	}
}`)
