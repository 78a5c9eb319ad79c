// Package validate runs struct-tag validation and renders failures as
// field-level issues.
//
// Rules are go-playground/validator tags. Pointer fields are optional when
// tagged omitempty and are validated only when present:
//
//	type ProductUpdate struct {
//	    Name  *string `json:"name"  validate:"omitempty,min=1,max=100"`
//	    Stock *int    `json:"stock" validate:"omitempty,gt=0,lte=1000"`
//	}
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Issue is one failed rule. Loc is the path to the offending value, e.g.
// ["body", "stock"].
type Issue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// Issues is the list returned by Struct. Empty means valid.
type Issues []Issue

func (is Issues) Error() string {
	msgs := make([]string, len(is))
	for i, issue := range is {
		msgs[i] = issue.Msg
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

var (
	once sync.Once
	v    *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
	})
	return v
}

// Struct validates s and returns one Issue per failing field.
func Struct(s interface{}) Issues {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Issues{{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}}
	}

	issues := make(Issues, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{
			Loc:  []string{"body", fe.Field()},
			Msg:  message(fe),
			Type: issueType(fe),
		})
	}
	return issues
}

// HasErrors reports whether is contains any issue.
func HasErrors(is Issues) bool { return len(is) > 0 }

func message(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "min":
		if isString {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}
		return fmt.Sprintf("The %s must be at least %s.", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
		}
		return fmt.Sprintf("The %s must not be greater than %s.", field, param)
	case "gt":
		return fmt.Sprintf("The %s must be greater than %s.", field, param)
	case "gte":
		return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
	case "lt":
		return fmt.Sprintf("The %s must be less than %s.", field, param)
	case "lte":
		return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
	}
	return fmt.Sprintf("The %s is invalid.", field)
}

func issueType(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "missing"
	case "min":
		if fe.Kind() == reflect.String {
			return "string_too_short"
		}
		return "greater_than_equal"
	case "max":
		if fe.Kind() == reflect.String {
			return "string_too_long"
		}
		return "less_than_equal"
	case "gt":
		return "greater_than"
	case "gte":
		return "greater_than_equal"
	case "lt":
		return "less_than"
	case "lte":
		return "less_than_equal"
	}
	return "value_error"
}

func jsonFieldName(f reflect.StructField) string {
	name := f.Tag.Get("json")
	if idx := strings.Index(name, ","); idx != -1 {
		name = name[:idx]
	}
	switch name {
	case "-":
		return ""
	case "":
		return strings.ToLower(f.Name)
	}
	return name
}
