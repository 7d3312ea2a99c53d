package task

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-errors"
	"github.com/oapi-codegen/nullable"
)

// CreateRequest payload. Fields other than these start out null.
type CreateRequest struct {
	Title       string  `json:"title"`
	Priority    *string `json:"priority"`
	Description *string `json:"description"`
}

// Validate will run validation rules
func (r CreateRequest) Validate() error {
	return validate(validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
	), "invalid task payload")
}

// ToTask builds a new record from the payload
func (r CreateRequest) ToTask() *Task {
	return &Task{
		Title:       r.Title,
		Priority:    r.Priority,
		Description: r.Description,
	}
}

// ReplaceRequest is the full replacement document used by atomic updates.
// An omitted optional field and an explicit null both clear the column.
type ReplaceRequest struct {
	Title       string     `json:"title"`
	Priority    *string    `json:"priority"`
	Description *string    `json:"description"`
	CompletedAt *time.Time `json:"completed_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
	UserID      *int64     `json:"user_id"`
	IsDefault   *bool      `json:"is_default"`
}

// Validate will run validation rules
func (r ReplaceRequest) Validate() error {
	return validate(validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
	), "invalid task replacement")
}

// ToTask builds the replacement record for id
func (r ReplaceRequest) ToTask(id int64) *Task {
	return &Task{
		ID:          id,
		Title:       r.Title,
		Priority:    r.Priority,
		Description: r.Description,
		CompletedAt: r.CompletedAt,
		DeletedAt:   r.DeletedAt,
		UserID:      r.UserID,
		IsDefault:   r.IsDefault,
	}
}

// Patch is a sparse update document. Each field is tri-state: a key left
// out of the payload is unspecified and keeps the stored value, an explicit
// null clears it and a value sets it.
type Patch struct {
	Title       nullable.Nullable[string]    `json:"title,omitempty"`
	Priority    nullable.Nullable[string]    `json:"priority,omitempty"`
	Description nullable.Nullable[string]    `json:"description,omitempty"`
	CompletedAt nullable.Nullable[time.Time] `json:"completed_at,omitempty"`
	DeletedAt   nullable.Nullable[time.Time] `json:"deleted_at,omitempty"`
	UserID      nullable.Nullable[int64]     `json:"user_id,omitempty"`
	IsDefault   nullable.Nullable[bool]      `json:"is_default,omitempty"`
}

// Validate rejects patches that would break the not null title column
func (p Patch) Validate() error {
	if !p.Title.IsSpecified() {
		return nil
	}

	if p.Title.IsNull() {
		return errors.NewValidation("invalid task patch", errors.FieldError{
			Field:   "title",
			Message: "cannot be null",
		}).WithCode(errors.CodeBadRequest)
	}

	if p.Title.MustGet() == "" {
		return errors.NewValidation("invalid task patch", errors.FieldError{
			Field:   "title",
			Message: "cannot be blank",
		}).WithCode(errors.CodeBadRequest)
	}

	return nil
}

// IsEmpty reports whether no field was specified
func (p Patch) IsEmpty() bool {
	return len(p.Columns()) == 0
}

// Columns lists the columns the patch touches
func (p Patch) Columns() []string {
	cols := make([]string, 0, 7)
	for _, f := range []struct {
		column    string
		specified bool
	}{
		{"title", p.Title.IsSpecified()},
		{"priority", p.Priority.IsSpecified()},
		{"description", p.Description.IsSpecified()},
		{"completed_at", p.CompletedAt.IsSpecified()},
		{"deleted_at", p.DeletedAt.IsSpecified()},
		{"user_id", p.UserID.IsSpecified()},
		{"is_default", p.IsDefault.IsSpecified()},
	} {
		if f.specified {
			cols = append(cols, f.column)
		}
	}
	return cols
}

// ApplyTo merges the specified fields into t and returns the touched columns.
// Unspecified fields are left as loaded.
func (p Patch) ApplyTo(t *Task) []string {
	if p.Title.IsSpecified() && !p.Title.IsNull() {
		t.Title = p.Title.MustGet()
	}

	merge(p.Priority, &t.Priority)
	merge(p.Description, &t.Description)
	merge(p.CompletedAt, &t.CompletedAt)
	merge(p.DeletedAt, &t.DeletedAt)
	merge(p.UserID, &t.UserID)
	merge(p.IsDefault, &t.IsDefault)

	return p.Columns()
}

func merge[T any](field nullable.Nullable[T], dst **T) {
	if !field.IsSpecified() {
		return
	}

	if field.IsNull() {
		*dst = nil
		return
	}

	v := field.MustGet()
	*dst = &v
}

func validate(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.FromOzzoValidation(err, msg).WithCode(errors.CodeBadRequest)
}
