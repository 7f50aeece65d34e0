package habit_test

import (
	"errors"
	"testing"
	"time"

	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	"github.com/saulo-duarte/chronos-planner/internal/habit"
	"github.com/saulo-duarte/chronos-planner/internal/recurrence"
	"github.com/saulo-duarte/chronos-planner/internal/testutil"
	util "github.com/saulo-duarte/chronos-planner/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHabitStreak(t *testing.T) {
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "owner")
	ctx := testutil.AuthContext(u.ID)
	svc := habit.NewHabitService(db)

	day0 := util.NewLocalDate(2025, time.February, 1)
	h, err := svc.CreateHabit(ctx, recurrence.CreateItemDTO{
		Name:          "Meditate",
		FrequencyType: recurrence.Daily,
		NextDueDate:   day0,
	})
	require.NoError(t, err)
	assert.Zero(t, h.StreakCount)

	steps := []struct {
		name   string
		on     util.LocalDate
		streak int
	}{
		{"First", day0, 1},
		{"NextDay", day0.AddDays(1), 2},
		{"AfterGap", day0.AddDays(5), 1},
		{"Resume", day0.AddDays(6), 2},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			done, err := svc.CompleteHabit(ctx, h.ID, step.on)
			require.NoError(t, err)
			assert.Equal(t, step.streak, done.StreakCount)
			assert.Equal(t, step.on.AddDays(1), done.NextDueDate)
			assert.Equal(t, recurrence.StatusNotStarted, done.Status)
		})
	}

	stored, err := svc.GetHabit(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.StreakCount)
	require.NotNil(t, stored.LastCompletedDate)
	assert.Equal(t, day0.AddDays(6), *stored.LastCompletedDate)
}

func TestWeeklyHabitStreak(t *testing.T) {
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "owner")
	ctx := testutil.AuthContext(u.ID)
	svc := habit.NewHabitService(db)

	start := util.NewLocalDate(2025, time.March, 3)
	h, err := svc.CreateHabit(ctx, recurrence.CreateItemDTO{
		Name:          "Long run",
		FrequencyType: recurrence.Weekly,
		NextDueDate:   start,
	})
	require.NoError(t, err)

	_, err = svc.CompleteHabit(ctx, h.ID, start)
	require.NoError(t, err)

	done, err := svc.CompleteHabit(ctx, h.ID, start.AddDays(7))
	require.NoError(t, err)
	assert.Equal(t, 2, done.StreakCount)

	done, err = svc.CompleteHabit(ctx, h.ID, start.AddDays(15))
	require.NoError(t, err)
	assert.Equal(t, 1, done.StreakCount)
}

func TestHabitsAreIsolatedPerUser(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "owner")
	other := testutil.CreateUser(t, db, "stranger")
	svc := habit.NewHabitService(db)

	h, err := svc.CreateHabit(testutil.AuthContext(owner.ID), recurrence.CreateItemDTO{
		Name:          "Journal",
		FrequencyType: recurrence.Daily,
		NextDueDate:   util.NewLocalDate(2025, time.January, 1),
	})
	require.NoError(t, err)

	otherCtx := testutil.AuthContext(other.ID)
	var notFound *apperror.NotFoundError

	_, err = svc.CompleteHabit(otherCtx, h.ID, util.NewLocalDate(2025, time.January, 1))
	assert.True(t, errors.As(err, &notFound))
	assert.True(t, errors.As(svc.DeleteHabit(otherCtx, h.ID), &notFound))

	habits, err := svc.ListHabits(otherCtx)
	require.NoError(t, err)
	assert.Empty(t, habits)
}
