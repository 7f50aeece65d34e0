// Package apperror holds the error taxonomy shared by services and handlers.
// Every type here renders to the same JSON body:
//
//	{"error": {"code": "...", "message": "...", "details": {...}}}
package apperror

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeAllocationExceeded Code = "TIME_ALLOCATION_EXCEEDED"
	CodeResourceNotFound   Code = "RESOURCE_NOT_FOUND"
	CodeUnauthorizedAccess Code = "UNAUTHORIZED_ACCESS"
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeIntegrity          Code = "INTEGRITY_ERROR"
	CodeInternal           Code = "INTERNAL_SERVER_ERROR"
)

var ErrUnauthenticated = errors.New("could not validate credentials")

type AllocationReason string

const (
	// ReasonExceedsParent: the children would need more hours than the parent has.
	ReasonExceedsParent AllocationReason = "exceeds_parent"
	// ReasonBelowChildren: the parent would shrink under what its children hold.
	ReasonBelowChildren AllocationReason = "below_children"
)

// AllocationError reports a violated weekly-hours capacity.
type AllocationError struct {
	Reason            AllocationReason
	ParentKind        string
	ParentID          string
	Capacity          float64
	CurrentAllocation float64
	RequestedHours    float64
	AvailableHours    float64
}

func (e *AllocationError) Error() string {
	if e.Reason == ReasonBelowChildren {
		return fmt.Sprintf(
			"cannot reduce %s hours to %g: children already allocate %g hours, reduce their allocations first",
			e.ParentKind, e.RequestedHours, e.CurrentAllocation,
		)
	}
	return fmt.Sprintf(
		"requested %g hours would exceed %s allocation: %g total, %g already allocated, only %g available",
		e.RequestedHours, e.ParentKind, e.Capacity, e.CurrentAllocation, e.AvailableHours,
	)
}

func (e *AllocationError) Details() map[string]interface{} {
	d := map[string]interface{}{
		"reason":             e.Reason,
		e.ParentKind + "_id": e.ParentID,
		"current_allocation": e.CurrentAllocation,
		"requested_hours":    e.RequestedHours,
	}
	if e.Reason == ReasonExceedsParent {
		d["total_hours"] = e.Capacity
		d["available_hours"] = e.AvailableHours
	}
	return d
}

type NotFoundError struct {
	Resource string
	ID       string
}

func NotFound(resource string, id interface{}) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: fmt.Sprint(id)}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Details() map[string]interface{} {
	return map[string]interface{}{
		"resource_type": e.Resource,
		"resource_id":   e.ID,
	}
}

type UnauthorizedError struct {
	UserID   string
	Resource string
	ID       string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("user %s is not authorized to access %s %s", e.UserID, e.Resource, e.ID)
}

func (e *UnauthorizedError) Details() map[string]interface{} {
	return map[string]interface{}{
		"user_id":       e.UserID,
		"resource_type": e.Resource,
		"resource_id":   e.ID,
	}
}

// ConflictError reports a request that collides with existing data, such as
// an already registered username.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) Details() map[string]interface{} {
	return map[string]interface{}{"field": e.Field}
}

type FieldViolation struct {
	Field      string      `json:"field"`
	Value      interface{} `json:"value,omitempty"`
	Constraint string      `json:"constraint"`
}

type ValidationError struct {
	Violations []FieldViolation
}

func Invalid(field string, value interface{}, constraint string) *ValidationError {
	return &ValidationError{Violations: []FieldViolation{{Field: field, Value: value, Constraint: constraint}}}
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		v := e.Violations[0]
		return fmt.Sprintf("validation failed for field '%s': %s", v.Field, v.Constraint)
	}
	return fmt.Sprintf("%d field(s) failed validation", len(e.Violations))
}

func (e *ValidationError) Details() map[string]interface{} {
	return map[string]interface{}{"errors": e.Violations}
}

// Add appends a violation, allocating the error on first use.
func (e *ValidationError) Add(field string, value interface{}, constraint string) *ValidationError {
	if e == nil {
		return Invalid(field, value, constraint)
	}
	e.Violations = append(e.Violations, FieldViolation{Field: field, Value: value, Constraint: constraint})
	return e
}

// OrNil returns a nil error interface when no violation was recorded.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Violations) == 0 {
		return nil
	}
	return e
}
