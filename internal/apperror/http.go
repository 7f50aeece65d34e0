package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/saulo-duarte/chronos-planner/internal/config"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Body struct {
	Error Payload `json:"error"`
}

type Payload struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Classify maps err onto an HTTP status and the public error payload.
func Classify(err error) (int, Payload) {
	var (
		allocErr     *AllocationError
		notFound     *NotFoundError
		unauthorized *UnauthorizedError
		invalid      *ValidationError
		conflict     *ConflictError
	)

	switch {
	case errors.As(err, &allocErr):
		return http.StatusUnprocessableEntity, Payload{CodeAllocationExceeded, allocErr.Error(), allocErr.Details()}
	case errors.As(err, &invalid):
		return http.StatusUnprocessableEntity, Payload{CodeValidation, invalid.Error(), invalid.Details()}
	case errors.As(err, &notFound):
		return http.StatusNotFound, Payload{CodeResourceNotFound, notFound.Error(), notFound.Details()}
	case errors.As(err, &unauthorized):
		return http.StatusForbidden, Payload{CodeUnauthorizedAccess, unauthorized.Error(), unauthorized.Details()}
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, Payload{Code: CodeUnauthenticated, Message: err.Error()}
	case errors.As(err, &conflict):
		return http.StatusBadRequest, Payload{CodeIntegrity, conflict.Error(), conflict.Details()}
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, Payload{Code: CodeResourceNotFound, Message: "resource not found"}
	case IsIntegrityViolation(err):
		return http.StatusBadRequest, Payload{
			Code:    CodeIntegrity,
			Message: "the request conflicts with existing data or references a missing record",
		}
	}

	return http.StatusInternalServerError, Payload{Code: CodeInternal, Message: "internal server error"}
}

// IsIntegrityViolation reports unique, foreign-key, not-null and check
// constraint failures from either gorm's translated errors or raw postgres.
func IsIntegrityViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// class 23: integrity constraint violation
		return strings.HasPrefix(pgErr.Code, "23")
	}
	return false
}

// Write renders err as the standard JSON error body.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	status, payload := Classify(err)

	log := config.WithContext(r.Context()).WithFields(logrus.Fields{
		"code":   payload.Code,
		"status": status,
		"path":   r.URL.Path,
	})
	switch {
	case status >= http.StatusInternalServerError:
		log.WithError(err).Error("Unhandled error")
	case status == http.StatusNotFound:
		log.Info(payload.Message)
	default:
		log.Warn(payload.Message)
	}

	config.JSON(w, status, Body{Error: payload})
}
