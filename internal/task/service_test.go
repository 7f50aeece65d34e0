package task_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	"github.com/saulo-duarte/chronos-planner/internal/goal"
	googlecalendar "github.com/saulo-duarte/chronos-planner/internal/google_calendar"
	"github.com/saulo-duarte/chronos-planner/internal/project"
	"github.com/saulo-duarte/chronos-planner/internal/task"
	"github.com/saulo-duarte/chronos-planner/internal/testutil"
	util "github.com/saulo-duarte/chronos-planner/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCalendar struct {
	synced  []*googlecalendar.CalendarTask
	removed []string
	err     error
}

func (f *fakeCalendar) SyncTask(_ context.Context, _ uuid.UUID, ct *googlecalendar.CalendarTask) (string, error) {
	f.synced = append(f.synced, ct)
	if f.err != nil {
		return "", f.err
	}
	if ct.GoogleCalendarEventID != nil {
		return *ct.GoogleCalendarEventID, nil
	}
	if !ct.HasTimes() {
		return "", nil
	}
	return "evt-" + ct.ID.String(), nil
}

func (f *fakeCalendar) RemoveTask(_ context.Context, _ uuid.UUID, eventID string) error {
	f.removed = append(f.removed, eventID)
	return nil
}

type env struct {
	db    *gorm.DB
	ctx   context.Context
	goal  *goal.Goal
	tasks task.TaskService
	cal   *fakeCalendar
}

func setup(t *testing.T, goalHours float64) *env {
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "owner")
	ctx := testutil.AuthContext(u.ID)
	start := util.NewLocalDate(2025, time.January, 6)

	p, err := project.NewProjectService(db, nil).CreateProject(ctx, project.CreateProjectDTO{
		Name:        "Writing",
		WeeklyHours: 20,
		StartDate:   start,
		Color:       "#AA2222",
	})
	require.NoError(t, err)

	g, err := goal.NewGoalService(db, nil).CreateGoal(ctx, p.ID, goal.CreateGoalDTO{
		Name:        "Draft a novel",
		WeeklyHours: goalHours,
		StartDate:   start,
	})
	require.NoError(t, err)

	cal := &fakeCalendar{}
	return &env{db: db, ctx: ctx, goal: g, tasks: task.NewService(db, cal), cal: cal}
}

func at(hour int) *util.LocalDateTime {
	return &util.LocalDateTime{Time: time.Date(2025, time.January, 7, hour, 0, 0, 0, time.UTC)}
}

func TestCreateTask(t *testing.T) {
	e := setup(t, 5)

	t.Run("WithoutTimes", func(t *testing.T) {
		tk, err := e.tasks.CreateTask(e.ctx, e.goal.ID, task.CreateTaskDTO{Name: "Outline", WeeklyHours: 2})
		require.NoError(t, err)
		assert.Equal(t, e.goal.ID, tk.GoalID)
		assert.Equal(t, project.NOT_STARTED, tk.Status)
		assert.Empty(t, tk.GoogleCalendarEventID)
		assert.Empty(t, e.cal.synced, "tasks without a time block are not mirrored")
	})

	t.Run("WithTimesIsMirrored", func(t *testing.T) {
		tk, err := e.tasks.CreateTask(e.ctx, e.goal.ID, task.CreateTaskDTO{
			Name:        "Chapter one",
			WeeklyHours: 2,
			StartTime:   at(9),
			EndTime:     at(11),
		})
		require.NoError(t, err)
		assert.Equal(t, "evt-"+tk.ID.String(), tk.GoogleCalendarEventID)

		stored, err := e.tasks.FindByID(e.ctx, tk.ID)
		require.NoError(t, err)
		assert.Equal(t, tk.GoogleCalendarEventID, stored.GoogleCalendarEventID)
		require.NotNil(t, stored.StartTime)
		assert.True(t, stored.StartTime.Equal(*at(9)))
	})

	t.Run("ExceedsGoal", func(t *testing.T) {
		_, err := e.tasks.CreateTask(e.ctx, e.goal.ID, task.CreateTaskDTO{Name: "Editing", WeeklyHours: 1.5})
		var allocErr *apperror.AllocationError
		require.True(t, errors.As(err, &allocErr))
		assert.Equal(t, "goal", allocErr.ParentKind)
		assert.Equal(t, 4.0, allocErr.CurrentAllocation)
		assert.Equal(t, 1.0, allocErr.AvailableHours)

		tasks, err := e.tasks.FindAllByGoalID(e.ctx, e.goal.ID)
		require.NoError(t, err)
		assert.Len(t, tasks, 2)
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		_, err := e.tasks.CreateTask(e.ctx, e.goal.ID, task.CreateTaskDTO{
			Name:        "Backwards",
			WeeklyHours: 0.5,
			StartTime:   at(11),
			EndTime:     at(9),
		})
		var verr *apperror.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "end_time", verr.Violations[0].Field)
	})

	t.Run("UnknownGoal", func(t *testing.T) {
		_, err := e.tasks.CreateTask(e.ctx, uuid.New(), task.CreateTaskDTO{Name: "Lost", WeeklyHours: 1})
		var notFound *apperror.NotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, "Goal", notFound.Resource)
	})
}

func TestCalendarFailureDoesNotFailTask(t *testing.T) {
	e := setup(t, 5)
	e.cal.err = errors.New("calendar unavailable")

	tk, err := e.tasks.CreateTask(e.ctx, e.goal.ID, task.CreateTaskDTO{
		Name:        "Morning pages",
		WeeklyHours: 1,
		StartTime:   at(7),
		EndTime:     at(8),
	})
	require.NoError(t, err)
	assert.Empty(t, tk.GoogleCalendarEventID)
	assert.Len(t, e.cal.synced, 1)
}

func TestWithoutCalendar(t *testing.T) {
	e := setup(t, 5)
	tasks := task.NewService(e.db, nil)

	tk, err := tasks.CreateTask(e.ctx, e.goal.ID, task.CreateTaskDTO{
		Name:        "Offline",
		WeeklyHours: 1,
		StartTime:   at(7),
		EndTime:     at(8),
	})
	require.NoError(t, err)
	assert.Empty(t, tk.GoogleCalendarEventID)
	require.NoError(t, tasks.DeleteByID(e.ctx, tk.ID))
}

func TestUpdateTask(t *testing.T) {
	e := setup(t, 5)
	own, err := e.tasks.CreateTask(e.ctx, e.goal.ID, task.CreateTaskDTO{Name: "Research", WeeklyHours: 2})
	require.NoError(t, err)
	_, err = e.tasks.CreateTask(e.ctx, e.goal.ID, task.CreateTaskDTO{Name: "Plot", WeeklyHours: 2})
	require.NoError(t, err)

	hours := func(h float64) task.UpdateTaskDTO { return task.UpdateTaskDTO{WeeklyHours: &h} }

	updated, err := e.tasks.UpdateTask(e.ctx, own.ID, hours(3))
	require.NoError(t, err)
	assert.Equal(t, 3.0, updated.WeeklyHours)
	assert.Empty(t, e.cal.synced, "hours alone do not touch the calendar")

	_, err = e.tasks.UpdateTask(e.ctx, own.ID, hours(3.5))
	var allocErr *apperror.AllocationError
	require.True(t, errors.As(err, &allocErr))

	t.Run("FieldRulesBeforeAllocation", func(t *testing.T) {
		_, err := e.tasks.UpdateTask(e.ctx, own.ID, hours(200))
		var verr *apperror.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "weekly_hours", verr.Violations[0].Field)

		stored, err := e.tasks.FindByID(e.ctx, own.ID)
		require.NoError(t, err)
		assert.Equal(t, 3.0, stored.WeeklyHours)
	})

	t.Run("SchedulingMirrors", func(t *testing.T) {
		status := project.IN_PROGRESS
		updated, err := e.tasks.UpdateTask(e.ctx, own.ID, task.UpdateTaskDTO{
			StartTime: at(14),
			EndTime:   at(15),
			Status:    &status,
		})
		require.NoError(t, err)
		assert.Equal(t, project.IN_PROGRESS, updated.Status)
		assert.Equal(t, "evt-"+own.ID.String(), updated.GoogleCalendarEventID)
		assert.Len(t, e.cal.synced, 1)
	})

	t.Run("DeleteRemovesEvent", func(t *testing.T) {
		require.NoError(t, e.tasks.DeleteByID(e.ctx, own.ID))
		assert.Equal(t, []string{"evt-" + own.ID.String()}, e.cal.removed)

		_, err := e.tasks.FindByID(e.ctx, own.ID)
		var notFound *apperror.NotFoundError
		assert.True(t, errors.As(err, &notFound))
	})
}

func TestTasksAreIsolatedPerUser(t *testing.T) {
	e := setup(t, 5)
	tk, err := e.tasks.CreateTask(e.ctx, e.goal.ID, task.CreateTaskDTO{Name: "Mine", WeeklyHours: 1})
	require.NoError(t, err)

	other := testutil.CreateUser(t, e.db, "stranger")
	otherCtx := testutil.AuthContext(other.ID)

	var notFound *apperror.NotFoundError
	_, err = e.tasks.FindByID(otherCtx, tk.ID)
	assert.True(t, errors.As(err, &notFound))
	assert.True(t, errors.As(e.tasks.DeleteByID(otherCtx, tk.ID), &notFound))
	_, err = e.tasks.FindAllByGoalID(otherCtx, e.goal.ID)
	assert.True(t, errors.As(err, &notFound))

	list, err := e.tasks.FindAllByUser(otherCtx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
