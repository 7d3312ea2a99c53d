package task

import (
	"github.com/goliatone/go-errors"
)

var (
	// ErrTaskNotFound is returned for unknown or soft deleted tasks
	ErrTaskNotFound = errors.New("task not found", errors.CategoryNotFound).
		WithCode(errors.CodeNotFound).
		WithTextCode("TASK_NOT_FOUND")

	// ErrInvalidTaskID is returned when the path id is not an integer
	ErrInvalidTaskID = errors.New("invalid task id", errors.CategoryBadInput).
		WithCode(errors.CodeBadRequest).
		WithTextCode("INVALID_TASK_ID")
)

func notFound(id int64) *errors.Error {
	return ErrTaskNotFound.Clone().WithMetadata(map[string]any{"id": id})
}

func internal(err error, msg string) *errors.Error {
	return errors.Wrap(err, errors.CategoryInternal, msg).WithCode(errors.CodeInternal)
}

func badPayload(err error, msg string) *errors.Error {
	return errors.Wrap(err, errors.CategoryBadInput, msg).WithCode(errors.CodeBadRequest)
}
