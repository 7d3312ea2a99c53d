package demo

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-errors"
)

// UserRequest is the payload checked by /validate_data
type UserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r UserRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required,
			is.EmailFormat.Error("must be a valid email"),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.RuneLength(8, 0).Error("must have at least 8 characters"),
		),
	)
	if err == nil {
		return nil
	}
	return errors.FromOzzoValidation(err, "invalid user data").
		WithCode(errors.CodeBadRequest)
}
