package allocation_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/allocation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtilization(t *testing.T) {
	assert.Equal(t, 0.0, allocation.Utilization(0, 0))
	assert.Equal(t, 0.0, allocation.Utilization(5, 0))
	assert.Equal(t, 50.0, allocation.Utilization(5, 10))
	assert.Equal(t, 100.0, allocation.Utilization(10, 10))
}

func TestProjectSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := allocation.NewValidator(f.db)
	p := f.project(t, 20)
	f.goal(t, p.ID, 4)
	f.goal(t, p.ID, 6)

	summary, err := v.ProjectSummary(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, summary.ProjectID)
	assert.Equal(t, "Project", summary.ProjectName)
	assert.Equal(t, 20.0, summary.TotalHours)
	assert.Equal(t, 10.0, summary.AllocatedHours)
	assert.Equal(t, 10.0, summary.AvailableHours)
	assert.Equal(t, int64(2), summary.GoalCount)
	assert.Equal(t, 50.0, summary.UtilizationPercentage)
}

func TestGoalSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := allocation.NewValidator(f.db)
	p := f.project(t, 20)
	g := f.goal(t, p.ID, 8)

	t.Run("Empty", func(t *testing.T) {
		summary, err := v.GoalSummary(ctx, g.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), summary.TaskCount)
		assert.Equal(t, 0.0, summary.AllocatedHours)
		assert.Equal(t, 0.0, summary.UtilizationPercentage)
		assert.Equal(t, p.ID, summary.ProjectID)
	})

	t.Run("WithTasks", func(t *testing.T) {
		f.task(t, g.ID, 2)
		summary, err := v.GoalSummary(ctx, g.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), summary.TaskCount)
		assert.Equal(t, 6.0, summary.AvailableHours)
		assert.Equal(t, 25.0, summary.UtilizationPercentage)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := v.GoalSummary(ctx, uuid.New())
		assert.Error(t, err)
	})
}
