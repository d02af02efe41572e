// Package validation checks request fields against rules declared as data.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// emailPattern is stricter than the RFC syntax accepted by validator: it
// requires a dotted domain with a 2-6 letter top-level label.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)

// FieldViolation describes one failed rule.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations is the list of failed rules for a request. A non-empty
// Violations is an error.
type Violations []FieldViolation

func (v Violations) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fv := range v {
		msgs = append(msgs, fv.Field+": "+fv.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Err returns nil when there are no violations.
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Rule describes the constraints on a single string field.
//
// Required fails when the field is absent or blank. NotBlank only fails
// when the field is present and blank. Min and Max bound the length in
// runes; zero disables the bound. Length and OneOf are checked through
// validator tags.
type Rule struct {
	Field    string
	Required bool
	NotBlank bool
	Min      int
	Max      int
	Pattern  *regexp.Regexp
	Email    bool
	OneOf    []string

	RequiredMessage string
	LengthMessage   string
	PatternMessage  string
	EmailMessage    string
	OneOfMessage    string
}

// Check applies rule to value. A nil value means the field was absent.
func Check(value *string, rule Rule) Violations {
	var out Violations
	fail := func(msg string) {
		out = append(out, FieldViolation{Field: rule.Field, Message: msg})
	}

	if value == nil {
		if rule.Required {
			fail(rule.requiredMessage())
		}
		return out
	}

	v := *value
	if strings.TrimSpace(v) == "" && (rule.Required || rule.NotBlank) {
		fail(rule.requiredMessage())
		return out
	}

	if tag := rule.lengthTag(); tag != "" && validate.Var(v, tag) != nil {
		fail(rule.lengthMessage())
	}
	if rule.Pattern != nil && !rule.Pattern.MatchString(v) {
		fail(pick(rule.PatternMessage, fmt.Sprintf("%s has an invalid format", rule.Field)))
	}
	if rule.Email && !IsEmail(v) {
		fail(pick(rule.EmailMessage, "Please provide a valid email address"))
	}
	if len(rule.OneOf) > 0 && validate.Var(v, "oneof="+strings.Join(rule.OneOf, " ")) != nil {
		fail(pick(rule.OneOfMessage, fmt.Sprintf("%s must be one of %s", rule.Field, strings.Join(rule.OneOf, ", "))))
	}

	return out
}

// Validate applies every rule to the value registered under its field name.
// Fields missing from values are treated as absent.
func Validate(rules []Rule, values map[string]*string) Violations {
	var out Violations
	for _, rule := range rules {
		out = append(out, Check(values[rule.Field], rule)...)
	}
	return out
}

// CheckID validates a reference to another row. Zero is never a valid id.
func CheckID(field string, id *uint64, required bool, message string) Violations {
	if id == nil {
		if required {
			return Violations{{Field: field, Message: message}}
		}
		return nil
	}
	if *id == 0 {
		return Violations{{Field: field, Message: fmt.Sprintf("%s must be a positive number", field)}}
	}
	return nil
}

// IsEmail reports whether s passes both the RFC check and the stricter
// address pattern.
func IsEmail(s string) bool {
	return validate.Var(s, "required,email") == nil && emailPattern.MatchString(s)
}

func (r Rule) requiredMessage() string {
	return pick(r.RequiredMessage, fmt.Sprintf("%s is required", r.Field))
}

func (r Rule) lengthMessage() string {
	if r.LengthMessage != "" {
		return r.LengthMessage
	}
	switch {
	case r.Min > 0 && r.Max > 0:
		return fmt.Sprintf("%s must be between %d and %d characters", r.Field, r.Min, r.Max)
	case r.Max > 0:
		return fmt.Sprintf("%s must be at most %d characters", r.Field, r.Max)
	default:
		return fmt.Sprintf("%s must be at least %d characters", r.Field, r.Min)
	}
}

// lengthTag renders Min and Max as validator tags, which count runes for
// strings.
func (r Rule) lengthTag() string {
	var tags []string
	if r.Min > 0 {
		tags = append(tags, "min="+strconv.Itoa(r.Min))
	}
	if r.Max > 0 {
		tags = append(tags, "max="+strconv.Itoa(r.Max))
	}
	return strings.Join(tags, ",")
}

func pick(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
