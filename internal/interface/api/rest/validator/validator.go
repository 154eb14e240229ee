package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"person-manager-api/internal/domain/person"
	"person-manager-api/internal/domain/role"
)

const (
	msgRequired = "This field is required."
	msgBlank    = "This field may not be blank."
	msgInteger  = "A valid integer is required."
)

var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

// Errors maps a field name to its messages, the shape clients get back for
// a 400.
type Errors map[string][]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e[f], " "))
	}
	return strings.Join(parts, "; ")
}

func (e Errors) Add(field, msg string) { e[field] = append(e[field], msg) }

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	// A pointer to "" counts as a value for omitempty, so the tags below
	// accept the empty string themselves; it clears the stored value.
	_ = v.RegisterValidation("optional_email", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		return s == "" || v.Var(s, "email") == nil
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if strings.TrimSpace(s) == "" {
			return true
		}
		_, err := person.NormalizePhoneNumber(s)
		return err == nil
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := person.ParseBirthDate(s)
		return err == nil
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return role.Name(fl.Field().String()).IsValid()
	})

	return v
}

// Struct validates a request DTO and reports failures as Errors.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	errs := Errors{}
	for _, fe := range ve {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "notblank":
		return msgBlank
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "email", "optional_email":
		return "Enter a valid email address."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	case "phone":
		return "Enter a valid phone number."
	case "date":
		return "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	case "role":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(indirect(fe.Value())))
	}
	return fmt.Sprintf("Invalid value (%s).", fe.Tag())
}

func indirect(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		return rv.Elem().Interface()
	}
	return v
}

// BindError turns a JSON decoding failure into a client facing error.
func BindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return Errors{typeErr.Field: {typeMessage(typeErr.Type)}}
	}
	return Errors{"detail": {"JSON parse error - " + err.Error()}}
}

func typeMessage(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "Invalid value."
	}
	switch t.Kind() {
	case reflect.Bool:
		return "Must be a valid boolean."
	case reflect.String:
		return "Not a valid string."
	case reflect.Int, reflect.Int64, reflect.Uint64:
		return msgInteger
	}
	return "Invalid value."
}

// ParseID parses a positive numeric path id that fits a BIGINT column.
func ParseID(s string) (uint64, bool) {
	if strings.HasPrefix(s, "+") {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint64(id), true
}

// ParseAge reads the optional age query parameter; an empty value means no
// age constraint.
func ParseAge(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil, Errors{"age": {msgInteger}}
	}
	return &age, nil
}
