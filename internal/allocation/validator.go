// Package allocation enforces the weekly-hours budget of the project
// hierarchy: the hours of a parent's children never add up to more than the
// parent's own weekly hours.
//
// A Validator wraps the gorm handle of the current request transaction. It
// is created per unit of work and never shared between requests.
package allocation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	"github.com/saulo-duarte/chronos-planner/internal/metrics"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Epsilon absorbs float rounding so 0.1+0.2 still fits a 0.3 budget. The
// comparison stays strict: exactly-at-capacity is allowed.
const Epsilon = 1e-9

type level struct {
	name          string
	parentKind    string
	parentLabel   string
	parentTable   string
	parentColumns string
	childTable    string
	foreignKey    string
}

var (
	projectGoals = level{
		name:          "project_goals",
		parentKind:    "project",
		parentLabel:   "Project",
		parentTable:   "projects",
		parentColumns: "id, name, weekly_hours",
		childTable:    "goals",
		foreignKey:    "project_id",
	}
	goalTasks = level{
		name:          "goal_tasks",
		parentKind:    "goal",
		parentLabel:   "Goal",
		parentTable:   "goals",
		parentColumns: "id, name, weekly_hours, project_id",
		childTable:    "tasks",
		foreignKey:    "goal_id",
	}
)

type parentRow struct {
	ID          uuid.UUID
	Name        string
	WeeklyHours float64
	ProjectID   *uuid.UUID
}

type childAggregate struct {
	Allocated float64
	Children  int64
}

type Validator struct {
	tx         *gorm.DB
	lockParent bool
}

type Option func(*Validator)

// WithParentLock loads the parent row with SELECT ... FOR UPDATE so two
// concurrent requests against the same parent serialize on it.
func WithParentLock() Option {
	return func(v *Validator) {
		v.lockParent = true
	}
}

func NewValidator(tx *gorm.DB, opts ...Option) *Validator {
	v := &Validator{tx: tx}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Validator) db(ctx context.Context) *gorm.DB {
	return v.tx.WithContext(ctx)
}

func (v *Validator) loadParent(ctx context.Context, l level, id uuid.UUID) (*parentRow, error) {
	q := v.db(ctx).Table(l.parentTable).Select(l.parentColumns).Where("id = ?", id)
	if v.lockParent {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var row parentRow
	if err := q.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(l.parentLabel, id)
		}
		return nil, err
	}
	return &row, nil
}

// sumChildren runs a single aggregate over the children of parentID,
// leaving out exclude when it is not uuid.Nil.
func (v *Validator) sumChildren(ctx context.Context, l level, parentID, exclude uuid.UUID) (childAggregate, error) {
	q := v.db(ctx).
		Table(l.childTable).
		Select("COALESCE(SUM(weekly_hours), 0) AS allocated, COUNT(*) AS children").
		Where(l.foreignKey+" = ?", parentID)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}

	var agg childAggregate
	if err := q.Scan(&agg).Error; err != nil {
		return childAggregate{}, err
	}
	return agg, nil
}

func (v *Validator) checkFits(ctx context.Context, l level, parentID uuid.UUID, hours float64, exclude uuid.UUID) (err error) {
	defer func() { record(l, err) }()

	parent, err := v.loadParent(ctx, l, parentID)
	if err != nil {
		return err
	}

	agg, err := v.sumChildren(ctx, l, parentID, exclude)
	if err != nil {
		return err
	}

	if agg.Allocated+hours > parent.WeeklyHours+Epsilon {
		return &apperror.AllocationError{
			Reason:            apperror.ReasonExceedsParent,
			ParentKind:        l.parentKind,
			ParentID:          parentID.String(),
			Capacity:          parent.WeeklyHours,
			CurrentAllocation: agg.Allocated,
			RequestedHours:    hours,
			AvailableHours:    parent.WeeklyHours - agg.Allocated,
		}
	}
	return nil
}

func (v *Validator) checkCoversChildren(ctx context.Context, l level, parentID uuid.UUID, newHours float64) (err error) {
	defer func() { record(l, err) }()

	agg, err := v.sumChildren(ctx, l, parentID, uuid.Nil)
	if err != nil {
		return err
	}

	if newHours < agg.Allocated-Epsilon {
		return &apperror.AllocationError{
			Reason:            apperror.ReasonBelowChildren,
			ParentKind:        l.parentKind,
			ParentID:          parentID.String(),
			Capacity:          newHours,
			CurrentAllocation: agg.Allocated,
			RequestedHours:    newHours,
			AvailableHours:    newHours - agg.Allocated,
		}
	}
	return nil
}

// ValidateGoalHoursForProject fails when the project's goals, without
// excludeGoalID and with hours added, would need more than the project has.
// Pass uuid.Nil as excludeGoalID when creating.
func (v *Validator) ValidateGoalHoursForProject(ctx context.Context, projectID uuid.UUID, hours float64, excludeGoalID uuid.UUID) error {
	return v.checkFits(ctx, projectGoals, projectID, hours, excludeGoalID)
}

func (v *Validator) ValidateTaskHoursForGoal(ctx context.Context, goalID uuid.UUID, hours float64, excludeTaskID uuid.UUID) error {
	return v.checkFits(ctx, goalTasks, goalID, hours, excludeTaskID)
}

// ValidateProjectHoursUpdate fails when newHours would drop below the hours
// already held by the project's goals.
func (v *Validator) ValidateProjectHoursUpdate(ctx context.Context, projectID uuid.UUID, newHours float64) error {
	return v.checkCoversChildren(ctx, projectGoals, projectID, newHours)
}

func (v *Validator) ValidateGoalHoursUpdate(ctx context.Context, goalID uuid.UUID, newHours float64) error {
	return v.checkCoversChildren(ctx, goalTasks, goalID, newHours)
}

func record(l level, err error) {
	var (
		allocErr *apperror.AllocationError
		notFound *apperror.NotFoundError
	)
	result := "ok"
	switch {
	case err == nil:
	case errors.As(err, &allocErr):
		result = "exceeded"
	case errors.As(err, &notFound):
		result = "not_found"
	default:
		result = "error"
	}
	metrics.IncrementAllocationCheck(l.name, result)
}
