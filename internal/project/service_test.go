package project_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	"github.com/saulo-duarte/chronos-planner/internal/goal"
	"github.com/saulo-duarte/chronos-planner/internal/project"
	"github.com/saulo-duarte/chronos-planner/internal/task"
	"github.com/saulo-duarte/chronos-planner/internal/testutil"
	util "github.com/saulo-duarte/chronos-planner/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingRemover struct {
	removed []string
}

func (r *recordingRemover) RemoveTask(_ context.Context, _ uuid.UUID, eventID string) error {
	r.removed = append(r.removed, eventID)
	return nil
}

func setup(t *testing.T) (*gorm.DB, project.ProjectService, *recordingRemover, context.Context) {
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "owner")
	events := &recordingRemover{}
	return db, project.NewProjectService(db, events), events, testutil.AuthContext(u.ID)
}

func newProject(hours float64) project.CreateProjectDTO {
	return project.CreateProjectDTO{
		Name:        "Learn Go",
		WeeklyHours: hours,
		StartDate:   util.NewLocalDate(2025, time.January, 6),
		Color:       "#00ADD8",
	}
}

func TestCreateProject(t *testing.T) {
	_, svc, _, ctx := setup(t)

	t.Run("Defaults", func(t *testing.T) {
		p, err := svc.CreateProject(ctx, newProject(10))
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.Equal(t, project.NOT_STARTED, p.Status)
		assert.Equal(t, 10.0, p.WeeklyHours)
	})

	t.Run("Invalid", func(t *testing.T) {
		dto := newProject(0)
		dto.Color = "blue"
		end := util.NewLocalDate(2025, time.January, 1)
		dto.EndDate = &end

		_, err := svc.CreateProject(ctx, dto)
		var verr *apperror.ValidationError
		require.True(t, errors.As(err, &verr))

		fields := make([]string, 0, len(verr.Violations))
		for _, v := range verr.Violations {
			fields = append(fields, v.Field)
		}
		assert.ElementsMatch(t, []string{"weekly_hours", "color", "end_date"}, fields)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		_, err := svc.CreateProject(context.Background(), newProject(10))
		assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	})
}

func TestProjectsAreIsolatedPerUser(t *testing.T) {
	db, svc, _, ctx := setup(t)
	other := testutil.CreateUser(t, db, "intruder")
	otherCtx := testutil.AuthContext(other.ID)

	p, err := svc.CreateProject(ctx, newProject(10))
	require.NoError(t, err)

	var notFound *apperror.NotFoundError

	_, err = svc.GetProject(otherCtx, p.ID)
	assert.True(t, errors.As(err, &notFound))

	hours := 1.0
	_, err = svc.UpdateProject(otherCtx, p.ID, project.UpdateProjectDTO{WeeklyHours: &hours})
	assert.True(t, errors.As(err, &notFound))

	assert.True(t, errors.As(svc.DeleteProject(otherCtx, p.ID), &notFound))

	list, err := svc.ListProjects(otherCtx)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = svc.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUpdateProjectHours(t *testing.T) {
	db, svc, _, ctx := setup(t)
	p, err := svc.CreateProject(ctx, newProject(10))
	require.NoError(t, err)

	goals := goal.NewGoalService(db, nil)
	for _, hours := range []float64{4, 3} {
		_, err := goals.CreateGoal(ctx, p.ID, goal.CreateGoalDTO{
			Name:        "Goal",
			WeeklyHours: hours,
			StartDate:   util.NewLocalDate(2025, time.January, 6),
		})
		require.NoError(t, err)
	}

	t.Run("BelowGoals", func(t *testing.T) {
		hours := 6.0
		_, err := svc.UpdateProject(ctx, p.ID, project.UpdateProjectDTO{WeeklyHours: &hours})
		var allocErr *apperror.AllocationError
		require.True(t, errors.As(err, &allocErr))
		assert.Equal(t, apperror.ReasonBelowChildren, allocErr.Reason)

		stored, err := svc.GetProject(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 10.0, stored.WeeklyHours)
	})

	t.Run("DownToGoals", func(t *testing.T) {
		hours := 7.0
		updated, err := svc.UpdateProject(ctx, p.ID, project.UpdateProjectDTO{WeeklyHours: &hours})
		require.NoError(t, err)
		assert.Equal(t, 7.0, updated.WeeklyHours)
	})

	t.Run("OtherFieldsOnly", func(t *testing.T) {
		name := "Master Go"
		status := project.IN_PROGRESS
		updated, err := svc.UpdateProject(ctx, p.ID, project.UpdateProjectDTO{Name: &name, Status: &status})
		require.NoError(t, err)
		assert.Equal(t, "Master Go", updated.Name)
		assert.Equal(t, project.IN_PROGRESS, updated.Status)
		assert.Equal(t, 7.0, updated.WeeklyHours)
	})

	t.Run("Allocation", func(t *testing.T) {
		summary, err := svc.GetAllocation(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 7.0, summary.AllocatedHours)
		assert.Equal(t, int64(2), summary.GoalCount)
		assert.Equal(t, 100.0, summary.UtilizationPercentage)
	})
}

func TestDeleteProjectCascades(t *testing.T) {
	db, svc, events, ctx := setup(t)
	p, err := svc.CreateProject(ctx, newProject(10))
	require.NoError(t, err)

	g, err := goal.NewGoalService(db, nil).CreateGoal(ctx, p.ID, goal.CreateGoalDTO{
		Name:        "Goal",
		WeeklyHours: 5,
		StartDate:   util.NewLocalDate(2025, time.January, 6),
	})
	require.NoError(t, err)

	tasks := task.NewService(db, nil)
	first, err := tasks.CreateTask(ctx, g.ID, task.CreateTaskDTO{Name: "Read the tour", WeeklyHours: 2})
	require.NoError(t, err)
	_, err = tasks.CreateTask(ctx, g.ID, task.CreateTaskDTO{Name: "Write code", WeeklyHours: 3})
	require.NoError(t, err)
	require.NoError(t, db.Model(&task.Task{}).Where("id = ?", first.ID).
		Update("google_calendar_event_id", "evt-1").Error)

	require.NoError(t, svc.DeleteProject(ctx, p.ID))

	var goalCount, taskCount int64
	require.NoError(t, db.Model(&goal.Goal{}).Count(&goalCount).Error)
	require.NoError(t, db.Model(&task.Task{}).Count(&taskCount).Error)
	assert.Zero(t, goalCount)
	assert.Zero(t, taskCount)
	assert.Equal(t, []string{"evt-1"}, events.removed)

	_, err = svc.GetProject(ctx, p.ID)
	var notFound *apperror.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}
