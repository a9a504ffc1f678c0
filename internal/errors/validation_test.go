package errors

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrors_Error(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "validation failed", errs.Error())

	errs = append(errs, ValidationError{Field: "user_id", Message: "is required"})
	assert.Equal(t, "validation failed: user_id is required", errs.Error())

	errs = append(errs, ValidationError{Field: "questions", Message: "must not contain duplicates"})
	assert.Equal(t, "validation failed: 2 field errors", errs.Error())
}

type selection struct {
	QuestionID uint   `json:"question_id" validate:"required,gt=0"`
	Selected   []bool `json:"selected" validate:"required"`
}

type submitRequest struct {
	UserID    uint        `json:"user_id" validate:"required"`
	Questions []selection `json:"questions" validate:"required,min=2,dive"`
}

func jsonValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

func TestToValidationErrors(t *testing.T) {
	v := jsonValidator()

	errs := ToValidationErrors(v.Struct(submitRequest{}))
	require.Len(t, errs, 2)
	assert.Equal(t, ValidationError{Field: "user_id", Message: "is required", Value: uint(0), Rule: "required"}, errs[0])
	assert.Equal(t, "questions", errs[1].Field)
	assert.Equal(t, "is required", errs[1].Message)

	errs = ToValidationErrors(v.Struct(submitRequest{UserID: 1, Questions: []selection{{QuestionID: 3, Selected: []bool{true}}}}))
	require.Len(t, errs, 1)
	assert.Equal(t, "must have at least 2 entries", errs[0].Message)
}

func TestToValidationErrors_DiveKeepsIndex(t *testing.T) {
	errs := ToValidationErrors(jsonValidator().Struct(submitRequest{
		UserID:    1,
		Questions: []selection{{QuestionID: 3, Selected: []bool{false}}, {Selected: []bool{true}}},
	}))

	require.Len(t, errs, 1)
	assert.Equal(t, "questions[1].question_id", errs[0].Field)
	assert.Equal(t, "required", errs[0].Rule)
}

func TestToValidationErrors_OtherErrors(t *testing.T) {
	assert.Nil(t, ToValidationErrors(fmt.Errorf("plain error")))
	assert.Nil(t, ToValidationErrors(nil))
}
