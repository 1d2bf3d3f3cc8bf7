package helper

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate runs the struct tags of the shared validator instance.
func Validate(s interface{}) error {
	return validate.Struct(s)
}
