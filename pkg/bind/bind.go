// Package bind decodes request bodies into structs and validates them.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/shashiranjanraj/stockroom/pkg/validate"
)

// ErrTooLarge is returned when the body exceeds the configured limit.
var ErrTooLarge = errors.New("bind: request body too large")

// JSON decodes r.Body into dest and validates it. Decode failures are
// reported as issues, like rule failures, so callers answer both with 422.
// The only error returned is ErrTooLarge.
func JSON(w http.ResponseWriter, r *http.Request, dest interface{}, maxBytes int64) (validate.Issues, error) {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w (max %d bytes)", ErrTooLarge, maxErr.Limit)
		}
		return decodeIssues(err), nil
	}

	return validate.Struct(dest), nil
}

// Form fills the string fields of dest from form values named by their
// `form` tag, then validates dest.
func Form(r *http.Request, dest interface{}) validate.Issues {
	if err := r.ParseForm(); err != nil {
		return validate.Issues{{Loc: []string{"body"}, Msg: "Invalid form body.", Type: "value_error"}}
	}

	rv := reflect.ValueOf(dest).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		name := rt.Field(i).Tag.Get("form")
		if name == "" || rv.Field(i).Kind() != reflect.String {
			continue
		}
		rv.Field(i).SetString(r.PostForm.Get(name))
	}

	return validate.Struct(dest)
}

func decodeIssues(err error) validate.Issues {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if idx := strings.LastIndex(field, "."); idx != -1 {
			field = field[idx+1:]
		}
		return validate.Issues{{
			Loc:  []string{"body", field},
			Msg:  fmt.Sprintf("The %s must be of type %s.", field, typeErr.Type.String()),
			Type: "type_error",
		}}
	}

	msg := "Invalid JSON body."
	if errors.Is(err, io.EOF) {
		msg = "Request body is required."
	}
	return validate.Issues{{Loc: []string{"body"}, Msg: msg, Type: "json_invalid"}}
}
