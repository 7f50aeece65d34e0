package goal

import (
	"github.com/saulo-duarte/chronos-planner/internal/project"
	util "github.com/saulo-duarte/chronos-planner/internal/utils"
	"github.com/saulo-duarte/chronos-planner/internal/validation"
)

type CreateGoalDTO struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	WeeklyHours float64         `json:"weekly_hours"`
	StartDate   util.LocalDate  `json:"start_date"`
	EndDate     *util.LocalDate `json:"end_date"`
	Status      *project.Status `json:"status"`
}

type UpdateGoalDTO struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	WeeklyHours *float64        `json:"weekly_hours"`
	StartDate   *util.LocalDate `json:"start_date"`
	EndDate     *util.LocalDate `json:"end_date"`
	Status      *project.Status `json:"status"`
}

func (dto CreateGoalDTO) toEntity() *Goal {
	g := &Goal{
		Name:        dto.Name,
		Description: dto.Description,
		WeeklyHours: dto.WeeklyHours,
		StartDate:   dto.StartDate,
		EndDate:     dto.EndDate,
		Status:      project.NOT_STARTED,
	}
	if dto.Status != nil {
		g.Status = *dto.Status
	}
	return g
}

func (dto UpdateGoalDTO) apply(g *Goal) {
	if dto.Name != nil {
		g.Name = *dto.Name
	}
	if dto.Description != nil {
		g.Description = dto.Description
	}
	if dto.WeeklyHours != nil {
		g.WeeklyHours = *dto.WeeklyHours
	}
	if dto.StartDate != nil {
		g.StartDate = *dto.StartDate
	}
	if dto.EndDate != nil {
		g.EndDate = dto.EndDate
	}
	if dto.Status != nil {
		g.Status = *dto.Status
	}
}

var createGoalSchema = validation.MustCompile("goal_create", `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["name", "weekly_hours", "start_date"],
	"properties": {
		"name": {"type": "string", "minLength": 1, "maxLength": 255},
		"description": {"type": ["string", "null"], "maxLength": 1000},
		"weekly_hours": {"type": "number", "exclusiveMinimum": 0, "maximum": 168},
		"start_date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
		"end_date": {"type": ["string", "null"], "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
		"status": {"enum": ["Not Started", "In Progress", "Completed"]}
	}
}`)

var updateGoalSchema = validation.MustCompile("goal_update", `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"name": {"type": "string", "minLength": 1, "maxLength": 255},
		"description": {"type": ["string", "null"], "maxLength": 1000},
		"weekly_hours": {"type": "number", "exclusiveMinimum": 0, "maximum": 168},
		"start_date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
		"end_date": {"type": ["string", "null"], "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
		"status": {"enum": ["Not Started", "In Progress", "Completed"]}
	}
}`)
