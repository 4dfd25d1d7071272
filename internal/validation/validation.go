// Package validation holds the declarative form schemas for signup and
// the student profile plus the machinery that turns validator errors
// into field-scoped violations. Validation is synchronous and never
// panics on an expected failure.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report violations under the json field name, not the Go one
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// SignupRequest mirrors the signup form.
type SignupRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	FullName        string `json:"full_name" validate:"required,min=2"`
	RollNo          string `json:"roll_no" validate:"required"`
	Role            string `json:"role" validate:"required,oneof=student faculty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// StudentProfileForm is the editable representation of a student row:
// tag sets flattened to comma-delimited text, the education blob to
// its line-oriented text form.
type StudentProfileForm struct {
	FullName         string `json:"full_name" validate:"required,min=2"`
	AboutYourself    string `json:"about_yourself"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone"`
	CollegeRollNo    string `json:"college_roll_no" validate:"required"`
	Stream           string `json:"stream" validate:"required"`
	Year             int    `json:"year" validate:"required,min=1,max=4"`
	Skills           string `json:"skills"`
	Expertise        string `json:"expertise"`
	PastExperience   string `json:"past_experience"`
	PreferredJobRole string `json:"preferred_job_role"`
	PastEducation    string `json:"past_education"`
	Courses          string `json:"courses"`
}

// FieldViolation is one field-scoped rule failure.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Check validates a form payload and returns its violations, empty on
// success. Unexpected (non-validation) errors come back as a single
// violation on the empty field rather than a panic.
func Check(payload any) []FieldViolation {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldViolation{{Message: err.Error()}}
	}

	out := make([]FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldViolation{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "eqfield":
		return "passwords don't match"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
