package task

import (
	"github.com/saulo-duarte/chronos-planner/internal/project"
	util "github.com/saulo-duarte/chronos-planner/internal/utils"
	"github.com/saulo-duarte/chronos-planner/internal/validation"
)

type CreateTaskDTO struct {
	Name        string              `json:"name"`
	Description *string             `json:"description"`
	WeeklyHours float64             `json:"weekly_hours"`
	StartTime   *util.LocalDateTime `json:"start_time"`
	EndTime     *util.LocalDateTime `json:"end_time"`
	EtaHours    *float64            `json:"eta_hours"`
	Status      *project.Status     `json:"status"`
}

type UpdateTaskDTO struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	WeeklyHours *float64            `json:"weekly_hours"`
	StartTime   *util.LocalDateTime `json:"start_time"`
	EndTime     *util.LocalDateTime `json:"end_time"`
	EtaHours    *float64            `json:"eta_hours"`
	Status      *project.Status     `json:"status"`
}

func (dto CreateTaskDTO) toEntity() *Task {
	t := &Task{
		Name:        dto.Name,
		Description: dto.Description,
		WeeklyHours: dto.WeeklyHours,
		StartTime:   dto.StartTime,
		EndTime:     dto.EndTime,
		EtaHours:    dto.EtaHours,
		Status:      project.NOT_STARTED,
	}
	if dto.Status != nil {
		t.Status = *dto.Status
	}
	return t
}

// apply copies the present fields onto t and reports whether anything the
// calendar event shows has changed.
func (dto UpdateTaskDTO) apply(t *Task) (calendarChanged bool) {
	if dto.Name != nil && *dto.Name != t.Name {
		t.Name = *dto.Name
		calendarChanged = true
	}
	if dto.Description != nil {
		t.Description = dto.Description
		calendarChanged = true
	}
	if dto.WeeklyHours != nil {
		t.WeeklyHours = *dto.WeeklyHours
	}
	if dto.StartTime != nil && (t.StartTime == nil || !dto.StartTime.Equal(*t.StartTime)) {
		t.StartTime = dto.StartTime
		calendarChanged = true
	}
	if dto.EndTime != nil && (t.EndTime == nil || !dto.EndTime.Equal(*t.EndTime)) {
		t.EndTime = dto.EndTime
		calendarChanged = true
	}
	if dto.EtaHours != nil {
		t.EtaHours = dto.EtaHours
	}
	if dto.Status != nil {
		t.Status = *dto.Status
	}
	return calendarChanged
}

var createTaskSchema = validation.MustCompile("task_create", `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["name", "weekly_hours"],
	"properties": {
		"name": {"type": "string", "minLength": 1, "maxLength": 255},
		"description": {"type": ["string", "null"], "maxLength": 1000},
		"weekly_hours": {"type": "number", "exclusiveMinimum": 0, "maximum": 168},
		"start_time": {"type": ["string", "null"]},
		"end_time": {"type": ["string", "null"]},
		"eta_hours": {"type": ["number", "null"], "exclusiveMinimum": 0},
		"status": {"enum": ["Not Started", "In Progress", "Completed"]}
	}
}`)

var updateTaskSchema = validation.MustCompile("task_update", `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"name": {"type": "string", "minLength": 1, "maxLength": 255},
		"description": {"type": ["string", "null"], "maxLength": 1000},
		"weekly_hours": {"type": "number", "exclusiveMinimum": 0, "maximum": 168},
		"start_time": {"type": ["string", "null"]},
		"end_time": {"type": ["string", "null"]},
		"eta_hours": {"type": ["number", "null"], "exclusiveMinimum": 0},
		"status": {"enum": ["Not Started", "In Progress", "Completed"]}
	}
}`)
