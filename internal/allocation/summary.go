package allocation

import (
	"context"

	"github.com/google/uuid"
)

type ProjectSummary struct {
	ProjectID             uuid.UUID `json:"project_id"`
	ProjectName           string    `json:"project_name"`
	TotalHours            float64   `json:"total_hours"`
	AllocatedHours        float64   `json:"allocated_hours"`
	AvailableHours        float64   `json:"available_hours"`
	GoalCount             int64     `json:"goal_count"`
	UtilizationPercentage float64   `json:"utilization_percentage"`
}

type GoalSummary struct {
	GoalID                uuid.UUID `json:"goal_id"`
	GoalName              string    `json:"goal_name"`
	ProjectID             uuid.UUID `json:"project_id"`
	TotalHours            float64   `json:"total_hours"`
	AllocatedHours        float64   `json:"allocated_hours"`
	AvailableHours        float64   `json:"available_hours"`
	TaskCount             int64     `json:"task_count"`
	UtilizationPercentage float64   `json:"utilization_percentage"`
}

// Utilization is allocated as a percentage of total, or 0 for a zero total.
func Utilization(allocated, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return allocated / total * 100
}

func (v *Validator) ProjectSummary(ctx context.Context, projectID uuid.UUID) (*ProjectSummary, error) {
	parent, err := v.loadParent(ctx, projectGoals, projectID)
	if err != nil {
		return nil, err
	}
	agg, err := v.sumChildren(ctx, projectGoals, projectID, uuid.Nil)
	if err != nil {
		return nil, err
	}

	return &ProjectSummary{
		ProjectID:             parent.ID,
		ProjectName:           parent.Name,
		TotalHours:            parent.WeeklyHours,
		AllocatedHours:        agg.Allocated,
		AvailableHours:        parent.WeeklyHours - agg.Allocated,
		GoalCount:             agg.Children,
		UtilizationPercentage: Utilization(agg.Allocated, parent.WeeklyHours),
	}, nil
}

func (v *Validator) GoalSummary(ctx context.Context, goalID uuid.UUID) (*GoalSummary, error) {
	parent, err := v.loadParent(ctx, goalTasks, goalID)
	if err != nil {
		return nil, err
	}
	agg, err := v.sumChildren(ctx, goalTasks, goalID, uuid.Nil)
	if err != nil {
		return nil, err
	}

	summary := &GoalSummary{
		GoalID:                parent.ID,
		GoalName:              parent.Name,
		TotalHours:            parent.WeeklyHours,
		AllocatedHours:        agg.Allocated,
		AvailableHours:        parent.WeeklyHours - agg.Allocated,
		TaskCount:             agg.Children,
		UtilizationPercentage: Utilization(agg.Allocated, parent.WeeklyHours),
	}
	if parent.ProjectID != nil {
		summary.ProjectID = *parent.ProjectID
	}
	return summary, nil
}
