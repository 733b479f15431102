package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/task-manager-api/internal/domain"
)

// BodyField is the field name reported when the body as a whole is unusable.
const BodyField = "body"

// Global validator instance for reuse. Field names in errors follow the JSON
// tags so they match what the client sent.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	return v
}

// jsonFieldName is the key encoding/json uses for f, or "" when f is skipped.
func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// DecodeJSON decodes a single JSON object from the request body into v.
// Decode failures come back as *domain.ValidationError naming every field
// with the wrong JSON type, or "body" when the payload is missing or malformed.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return domain.NewValidationError(BodyField, "request body is required", nil)
	}

	var raw json.RawMessage
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&raw); err != nil {
		return decodeError(err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return domain.NewValidationError(BodyField, "must contain a single JSON object", nil)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			if verr := fieldTypeErrors(raw, v); verr != nil {
				return verr
			}
		}
		return decodeError(err)
	}

	return nil
}

// fieldTypeErrors checks each field of the struct behind v against the value
// sent for it and reports every mismatch, in field declaration order. It
// returns nil when raw is not an object or no field mismatches.
func fieldTypeErrors(raw json.RawMessage, v interface{}) *domain.ValidationError {
	var values map[string]json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}

	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	var verr *domain.ValidationError
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := jsonFieldName(f)
		if !f.IsExported() || name == "" {
			continue
		}
		value, ok := lookupKey(values, name)
		if !ok {
			continue
		}

		var typeErr *json.UnmarshalTypeError
		if err := json.Unmarshal(value, reflect.New(f.Type).Interface()); !errors.As(err, &typeErr) {
			continue
		}

		msg := "must be " + describeKind(f.Type)
		if verr == nil {
			verr = domain.NewValidationError(name, msg, nil)
		} else {
			verr.Add(name, msg)
		}
	}
	return verr
}

// lookupKey finds name in values the way encoding/json matches object keys:
// exact match first, then case-insensitive.
func lookupKey(values map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if value, ok := values[name]; ok {
		return value, true
	}
	for key, value := range values {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return nil, false
}

func decodeError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.Is(err, io.EOF):
		return domain.NewValidationError(BodyField, "request body is required", err)
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return domain.NewValidationError(BodyField, "must be a JSON object", err)
		}
		return domain.NewValidationError(typeErr.Field, "must be "+describeKind(typeErr.Type), err)
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return domain.NewValidationError(BodyField, "malformed JSON", err)
	default:
		return domain.NewValidationError(BodyField, "could not be read", err)
	}
}

func describeKind(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	default:
		return "a valid " + t.Kind().String()
	}
}

// ValidateRequest validates the given struct using the validator package.
// Constraint failures are returned as a *domain.ValidationError with one
// entry per failing field.
func ValidateRequest(v interface{}) error {
	if custom, ok := v.(interface{ Validate() error }); ok {
		return custom.Validate()
	}

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domain.NewValidationError(BodyField, "is invalid", err)
	}

	verr := domain.NewValidationError(fieldErrs[0].Field(), validationMessage(fieldErrs[0]), nil)
	for _, fe := range fieldErrs[1:] {
		verr.Add(fe.Field(), validationMessage(fe))
	}
	return verr
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			if fe.Param() == "1" {
				return "cannot be empty"
			}
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}
