package allocation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/saulo-duarte/chronos-planner/internal/allocation"
	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	"github.com/saulo-duarte/chronos-planner/internal/goal"
	"github.com/saulo-duarte/chronos-planner/internal/metrics"
	"github.com/saulo-duarte/chronos-planner/internal/project"
	"github.com/saulo-duarte/chronos-planner/internal/task"
	"github.com/saulo-duarte/chronos-planner/internal/testutil"
	util "github.com/saulo-duarte/chronos-planner/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	userID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "alloc")
	return &fixture{db: db, userID: u.ID}
}

func (f *fixture) project(t *testing.T, hours float64) *project.Project {
	t.Helper()
	p := &project.Project{
		UserID:      f.userID,
		Name:        "Project",
		WeeklyHours: hours,
		StartDate:   util.NewLocalDate(2025, time.January, 1),
		Status:      project.NOT_STARTED,
		Color:       "#336699",
	}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func (f *fixture) goal(t *testing.T, projectID uuid.UUID, hours float64) *goal.Goal {
	t.Helper()
	g := &goal.Goal{
		UserID:      f.userID,
		ProjectID:   projectID,
		Name:        "Goal",
		WeeklyHours: hours,
		StartDate:   util.NewLocalDate(2025, time.January, 1),
		Status:      project.NOT_STARTED,
	}
	require.NoError(t, f.db.Create(g).Error)
	return g
}

func (f *fixture) task(t *testing.T, goalID uuid.UUID, hours float64) *task.Task {
	t.Helper()
	tk := &task.Task{
		UserID:      f.userID,
		GoalID:      goalID,
		Name:        "Task",
		WeeklyHours: hours,
		Status:      project.NOT_STARTED,
	}
	require.NoError(t, f.db.Create(tk).Error)
	return tk
}

func requireAllocationError(t *testing.T, err error) *apperror.AllocationError {
	t.Helper()
	var allocErr *apperror.AllocationError
	require.True(t, errors.As(err, &allocErr), "expected AllocationError, got %v", err)
	return allocErr
}

func TestGoalsPackProjectToCapacity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := allocation.NewValidator(f.db)
	p := f.project(t, 10)

	for _, hours := range []float64{4, 3, 3} {
		require.NoError(t, v.ValidateGoalHoursForProject(ctx, p.ID, hours, uuid.Nil))
		f.goal(t, p.ID, hours)
	}

	err := v.ValidateGoalHoursForProject(ctx, p.ID, 0.1, uuid.Nil)
	allocErr := requireAllocationError(t, err)
	assert.Equal(t, apperror.ReasonExceedsParent, allocErr.Reason)
	assert.Equal(t, "project", allocErr.ParentKind)
	assert.Equal(t, p.ID.String(), allocErr.ParentID)
	assert.Equal(t, 10.0, allocErr.Capacity)
	assert.Equal(t, 10.0, allocErr.CurrentAllocation)
	assert.Equal(t, 0.1, allocErr.RequestedHours)
	assert.Equal(t, 0.0, allocErr.AvailableHours)
}

func TestGoalUpdateExcludesItself(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := allocation.NewValidator(f.db)
	p := f.project(t, 10)
	own := f.goal(t, p.ID, 4)
	f.goal(t, p.ID, 3)

	t.Run("Grow", func(t *testing.T) {
		assert.NoError(t, v.ValidateGoalHoursForProject(ctx, p.ID, 5, own.ID))
	})
	t.Run("Boundary", func(t *testing.T) {
		assert.NoError(t, v.ValidateGoalHoursForProject(ctx, p.ID, 7, own.ID))
	})
	t.Run("Over", func(t *testing.T) {
		allocErr := requireAllocationError(t, v.ValidateGoalHoursForProject(ctx, p.ID, 8, own.ID))
		assert.Equal(t, 3.0, allocErr.CurrentAllocation)
		assert.Equal(t, 7.0, allocErr.AvailableHours)
	})
	t.Run("WithoutExclusionDoubleCounts", func(t *testing.T) {
		requireAllocationError(t, v.ValidateGoalHoursForProject(ctx, p.ID, 5, uuid.Nil))
	})
}

func TestShrinkingAtCapacityGoalFits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := allocation.NewValidator(f.db)
	p := f.project(t, 10)
	full := f.goal(t, p.ID, 7)
	f.goal(t, p.ID, 3)

	for _, hours := range []float64{7, 6.5, 1, 0.25} {
		assert.NoError(t, v.ValidateGoalHoursForProject(ctx, p.ID, hours, full.ID), "hours=%v", hours)
	}
}

func TestProjectCannotShrinkBelowGoals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := allocation.NewValidator(f.db)
	p := f.project(t, 10)
	f.goal(t, p.ID, 4)
	f.goal(t, p.ID, 3)

	allocErr := requireAllocationError(t, v.ValidateProjectHoursUpdate(ctx, p.ID, 6))
	assert.Equal(t, apperror.ReasonBelowChildren, allocErr.Reason)
	assert.Equal(t, 7.0, allocErr.CurrentAllocation)
	assert.Equal(t, 6.0, allocErr.RequestedHours)

	assert.NoError(t, v.ValidateProjectHoursUpdate(ctx, p.ID, 7))
	assert.NoError(t, v.ValidateProjectHoursUpdate(ctx, p.ID, 40))
}

func TestTaskLevel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := allocation.NewValidator(f.db)
	p := f.project(t, 20)
	g := f.goal(t, p.ID, 5)
	first := f.task(t, g.ID, 2)
	f.task(t, g.ID, 3)

	allocErr := requireAllocationError(t, v.ValidateTaskHoursForGoal(ctx, g.ID, 0.5, uuid.Nil))
	assert.Equal(t, "goal", allocErr.ParentKind)
	assert.Equal(t, 5.0, allocErr.CurrentAllocation)

	assert.NoError(t, v.ValidateTaskHoursForGoal(ctx, g.ID, 2, first.ID))
	requireAllocationError(t, v.ValidateTaskHoursForGoal(ctx, g.ID, 2.5, first.ID))

	allocErr = requireAllocationError(t, v.ValidateGoalHoursUpdate(ctx, g.ID, 4))
	assert.Equal(t, apperror.ReasonBelowChildren, allocErr.Reason)
	assert.NoError(t, v.ValidateGoalHoursUpdate(ctx, g.ID, 5))
}

func TestFloatRoundingDoesNotTripBoundary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := allocation.NewValidator(f.db)
	p := f.project(t, 0.3)
	f.goal(t, p.ID, 0.1)

	assert.NoError(t, v.ValidateGoalHoursForProject(ctx, p.ID, 0.2, uuid.Nil))
	requireAllocationError(t, v.ValidateGoalHoursForProject(ctx, p.ID, 0.2001, uuid.Nil))
}

func TestMissingParent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := allocation.NewValidator(f.db)

	var notFound *apperror.NotFoundError

	err := v.ValidateGoalHoursForProject(ctx, uuid.New(), 1, uuid.Nil)
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Project", notFound.Resource)

	err = v.ValidateTaskHoursForGoal(ctx, uuid.New(), 1, uuid.Nil)
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Goal", notFound.Resource)
}

func TestValidatorSeesItsOwnTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, 10)

	err := f.db.Transaction(func(tx *gorm.DB) error {
		v := allocation.NewValidator(tx)
		g := &goal.Goal{
			UserID:      f.userID,
			ProjectID:   p.ID,
			Name:        "In flight",
			WeeklyHours: 8,
			StartDate:   util.NewLocalDate(2025, time.January, 1),
			Status:      project.NOT_STARTED,
		}
		require.NoError(t, tx.Create(g).Error)
		return v.ValidateGoalHoursForProject(ctx, p.ID, 3, uuid.Nil)
	})
	requireAllocationError(t, err)

	var count int64
	require.NoError(t, f.db.Model(&goal.Goal{}).Where("project_id = ?", p.ID).Count(&count).Error)
	assert.Zero(t, count, "rolled back transaction must not leave goals behind")
}

func TestChecksAreCounted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := allocation.NewValidator(f.db)
	p := f.project(t, 1)

	exceeded := metrics.AllocationChecks.WithLabelValues("project_goals", "exceeded")
	ok := metrics.AllocationChecks.WithLabelValues("project_goals", "ok")
	beforeExceeded, beforeOK := promtest.ToFloat64(exceeded), promtest.ToFloat64(ok)

	require.NoError(t, v.ValidateGoalHoursForProject(ctx, p.ID, 1, uuid.Nil))
	requireAllocationError(t, v.ValidateGoalHoursForProject(ctx, p.ID, 2, uuid.Nil))

	assert.Equal(t, beforeOK+1, promtest.ToFloat64(ok))
	assert.Equal(t, beforeExceeded+1, promtest.ToFloat64(exceeded))
}
