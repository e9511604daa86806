// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"folio/internal/content"
	"folio/internal/models"
)

// Validation limits for request fields.
const (
	maxURLLen         = 2048
	maxTitleLen       = 300
	maxDescriptionLen = 5000
	maxCategoryLen    = 200
	maxKeyLen         = 100
	maxUsernameLen    = 100
	maxPasswordLen    = 72 // bcrypt ignores anything longer
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names instead of Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the struct's validate tags and converts the first
// failure into a ValidationError with a readable message.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return nil // not a struct; nothing to check
	}

	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		return &content.ValidationError{Msg: fieldMessage(fields[0].Field(), fields[0].Tag(), fields[0].Param())}
	}
	return &content.ValidationError{Msg: "Invalid request"}
}

func fieldMessage(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s is too long (max %s characters)", field, param)
	case "len":
		return fmt.Sprintf("%s must be %s characters", field, param)
	case "numeric":
		return fmt.Sprintf("%s must be numeric", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// checkPatchLen applies a max length to a patch field that carries a value.
func checkPatchLen(f models.Field[string], field string, max int) error {
	if !f.Set || f.Value == nil {
		return nil
	}
	if err := validate.Var(*f.Value, fmt.Sprintf("max=%d", max)); err != nil {
		return &content.ValidationError{Msg: fieldMessage(field, "max", fmt.Sprint(max))}
	}
	return nil
}
