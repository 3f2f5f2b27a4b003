// Package inputval validates user-submitted form input.
//
// Handlers validate request structs with Validate, which reads `validate`
// and `label` struct tags and produces user-facing messages. Standalone
// predicates (IsValidEmail, IsValidRole, ...) back the tag rules and are
// usable directly.
package inputval

import (
	"fmt"
	"net/mail"
	"reflect"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the wire format for dates in form input (HTML date inputs).
const DateLayout = "2006-01-02"

// allowedRoles is the closed set of CampusHub account roles.
var allowedRoles = []string{"manager", "teacher", "student"}

// IsValidEmail reports whether s is a plain RFC 5322 address without a
// display name. Single-label domains are accepted for dev environments.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	p, err := mail.ParseAddress(s)
	return err == nil && p.Name == "" && p.Address == s
}

// IsValidRole reports whether s names a CampusHub role. Case-insensitive,
// surrounding whitespace ignored.
func IsValidRole(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, r := range allowedRoles {
		if s == r {
			return true
		}
	}
	return false
}

// AllowedRolesList returns the canonical role names in display order.
func AllowedRolesList() []string {
	return append([]string(nil), allowedRoles...)
}

// IsValidObjectID reports whether s is a 24-character hex MongoDB ObjectID.
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	return err == nil
}

// IsValidDate reports whether s parses as a YYYY-MM-DD date.
func IsValidDate(s string) bool {
	_, err := time.Parse(DateLayout, strings.TrimSpace(s))
	return err == nil
}

// ParseDate parses a YYYY-MM-DD form value. An empty value is not an
// error; it returns the zero time with ok=true so optional date fields
// stay optional.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseProgress parses a completion percentage and checks the 0-100 range.
func ParseProgress(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("progress must be a whole number")
	}
	if n < 0 || n > 100 {
		return 0, fmt.Errorf("progress must be between 0 and 100")
	}
	return n, nil
}

// FieldError is one validation failure with a user-facing message.
type FieldError struct {
	Field   string
	Message string
}

// Result collects the failures from one Validate call.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first error message, or "" if none.
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every error message with "; ".
func (r *Result) All() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the string fields of a struct against its `validate`
// tags. Supported rules:
//
//	required   non-blank after trimming
//	max=N      at most N characters
//	email      IsValidEmail
//	role       IsValidRole
//	objectid   IsValidObjectID
//	date       IsValidDate (blank passes; combine with required)
//
// The `label` tag supplies the field name used in messages, falling back
// to the Go field name. Rules other than required are skipped on blank
// values so optional fields validate only when present.
func Validate(input any) *Result {
	res := &Result{}

	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return res
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || field.Type.Kind() != reflect.String {
			continue
		}
		label := field.Tag.Get("label")
		if label == "" {
			label = field.Name
		}
		value := v.Field(i).String()
		trimmed := strings.TrimSpace(value)

		for _, rule := range strings.Split(tag, ",") {
			rule = strings.TrimSpace(rule)
			switch {
			case rule == "required":
				if trimmed == "" {
					res.add(field.Name, label+" is required.")
				}
			case strings.HasPrefix(rule, "max="):
				n, err := strconv.Atoi(strings.TrimPrefix(rule, "max="))
				if err == nil && len(trimmed) > n {
					res.add(field.Name, fmt.Sprintf("%s must be at most %d characters.", label, n))
				}
			case rule == "email":
				if trimmed != "" && !IsValidEmail(trimmed) {
					res.add(field.Name, "A valid email address is required.")
				}
			case rule == "role":
				if trimmed != "" && !IsValidRole(trimmed) {
					res.add(field.Name, label+" must be one of: "+strings.Join(allowedRoles, ", ")+".")
				}
			case rule == "objectid":
				if trimmed != "" && !IsValidObjectID(trimmed) {
					res.add(field.Name, label+" is not a valid identifier.")
				}
			case rule == "date":
				if trimmed != "" && !IsValidDate(trimmed) {
					res.add(field.Name, label+" must be a date in YYYY-MM-DD form.")
				}
			}
		}
	}
	return res
}

func (r *Result) add(field, msg string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: msg})
}
