package recurrence

import (
	"bytes"
	"io"
	"net/http"

	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	util "github.com/saulo-duarte/chronos-planner/internal/utils"
	"github.com/saulo-duarte/chronos-planner/internal/validation"
)

type CreateItemDTO struct {
	Name           string              `json:"name"`
	Description    *string             `json:"description"`
	StartTime      *util.LocalDateTime `json:"start_time"`
	EndTime        *util.LocalDateTime `json:"end_time"`
	EtaHours       *float64            `json:"eta_hours"`
	Status         *Status             `json:"status"`
	FrequencyType  FrequencyType       `json:"frequency_type"`
	FrequencyValue *int                `json:"frequency_value"`
	NextDueDate    util.LocalDate      `json:"next_due_date"`
}

type UpdateItemDTO struct {
	Name           *string             `json:"name"`
	Description    *string             `json:"description"`
	StartTime      *util.LocalDateTime `json:"start_time"`
	EndTime        *util.LocalDateTime `json:"end_time"`
	EtaHours       *float64            `json:"eta_hours"`
	Status         *Status             `json:"status"`
	FrequencyType  *FrequencyType      `json:"frequency_type"`
	FrequencyValue *int                `json:"frequency_value"`
	NextDueDate    *util.LocalDate     `json:"next_due_date"`
}

type CompleteDTO struct {
	CompletionDate *util.LocalDate `json:"completion_date"`
}

func (dto CreateItemDTO) ToItem() Item {
	it := Item{
		Name:           dto.Name,
		Description:    dto.Description,
		StartTime:      dto.StartTime,
		EndTime:        dto.EndTime,
		EtaHours:       dto.EtaHours,
		Status:         StatusNotStarted,
		FrequencyType:  dto.FrequencyType,
		FrequencyValue: 1,
		NextDueDate:    dto.NextDueDate,
	}
	if dto.Status != nil {
		it.Status = *dto.Status
	}
	if dto.FrequencyValue != nil {
		it.FrequencyValue = *dto.FrequencyValue
	}
	return it
}

func (dto UpdateItemDTO) Apply(it *Item) {
	if dto.Name != nil {
		it.Name = *dto.Name
	}
	if dto.Description != nil {
		it.Description = dto.Description
	}
	if dto.StartTime != nil {
		it.StartTime = dto.StartTime
	}
	if dto.EndTime != nil {
		it.EndTime = dto.EndTime
	}
	if dto.EtaHours != nil {
		it.EtaHours = dto.EtaHours
	}
	if dto.Status != nil {
		it.Status = *dto.Status
	}
	if dto.FrequencyType != nil {
		it.FrequencyType = *dto.FrequencyType
	}
	if dto.FrequencyValue != nil {
		it.FrequencyValue = *dto.FrequencyValue
	}
	if dto.NextDueDate != nil {
		it.NextDueDate = *dto.NextDueDate
	}
}

// Date returns the requested completion day, or today.
func (dto CompleteDTO) Date() util.LocalDate {
	if dto.CompletionDate == nil || dto.CompletionDate.IsZero() {
		return util.Today()
	}
	return *dto.CompletionDate
}

const itemProperties = `
		"name": {"type": "string", "minLength": 1, "maxLength": 255},
		"description": {"type": ["string", "null"], "maxLength": 1000},
		"start_time": {"type": ["string", "null"]},
		"end_time": {"type": ["string", "null"]},
		"eta_hours": {"type": ["number", "null"], "exclusiveMinimum": 0},
		"status": {"enum": ["Not Started", "In Progress", "Completed"]},
		"frequency_type": {"enum": ["daily", "weekly", "biweekly", "monthly", "custom"]},
		"frequency_value": {"type": "integer", "minimum": 1},
		"next_due_date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"}`

var CreateItemSchema = validation.MustCompile("recurring_create", `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["name", "frequency_type", "next_due_date"],
	"properties": {`+itemProperties+`
	}
}`)

var UpdateItemSchema = validation.MustCompile("recurring_update", `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {`+itemProperties+`
	}
}`)

var CompleteSchema = validation.MustCompile("recurring_complete", `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"completion_date": {"type": ["string", "null"], "pattern": "^\\d{4}-\\d{2}-\\d{2}$"}
	}
}`)

// DecodeComplete reads the optional completion body. An empty body means
// "completed today".
func DecodeComplete(r *http.Request) (CompleteDTO, error) {
	var dto CompleteDTO
	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		return dto, apperror.Invalid("body", nil, "could not be read")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return dto, nil
	}
	err = validation.Decode(raw, CompleteSchema, &dto)
	return dto, err
}
