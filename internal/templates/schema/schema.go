package schema

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rafsal3/VideoGen-v1/internal/templates/domain"
)

// Parameter types understood by the validator. These mirror the shapes the
// seeded catalog declares.
const (
	TypeString = "string"
	TypeNumber = "number"
	TypeURL    = "url"
	TypeColor  = "color"
	TypeEnum   = "enum"
	TypeDate   = "date"
)

// FieldError describes a single parameter that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates all parameter failures for one request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid parameters: " + strings.Join(msgs, "; ")
}

// Validate checks values against spec and returns the validated parameter
// set with defaults applied for omitted optional fields. Unknown keys are
// rejected. On failure it returns a *ValidationError listing every bad field.
func Validate(spec map[string]domain.ParamSpec, values map[string]interface{}) (map[string]interface{}, error) {
	var fieldErrs []FieldError

	out := make(map[string]interface{}, len(spec))

	// Deterministic error ordering keeps responses stable for clients.
	names := make([]string, 0, len(spec))
	for name := range spec {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ps := spec[name]
		value, present := values[name]

		if !present {
			if ps.Default != nil {
				out[name] = ps.Default
				continue
			}
			if ps.Required {
				fieldErrs = append(fieldErrs, FieldError{Field: name, Message: "required parameter is missing"})
			}
			continue
		}

		if err := checkValue(ps, value); err != "" {
			fieldErrs = append(fieldErrs, FieldError{Field: name, Message: err})
			continue
		}
		out[name] = value
	}

	unknown := make([]string, 0)
	for name := range values {
		if _, ok := spec[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fieldErrs = append(fieldErrs, FieldError{Field: name, Message: "parameter is not declared by the template"})
	}

	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}
	return out, nil
}

func checkValue(ps domain.ParamSpec, value interface{}) string {
	switch ps.Type {
	case TypeString:
		s, ok := value.(string)
		if !ok {
			return "must be a string"
		}
		if ps.MaxLength > 0 && len(s) > ps.MaxLength {
			return fmt.Sprintf("must be at most %d characters", ps.MaxLength)
		}

	case TypeNumber:
		n, ok := asNumber(value)
		if !ok {
			return "must be a number"
		}
		if ps.Min != nil && n < *ps.Min {
			return fmt.Sprintf("must be at least %v", *ps.Min)
		}
		if ps.Max != nil && n > *ps.Max {
			return fmt.Sprintf("must be at most %v", *ps.Max)
		}

	case TypeURL:
		s, ok := value.(string)
		if !ok {
			return "must be a URL string"
		}
		u, err := url.Parse(s)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "must be an absolute http(s) URL"
		}

	case TypeColor:
		s, ok := value.(string)
		if !ok || !isHexColor(s) {
			return "must be a hex color like #RRGGBB"
		}

	case TypeEnum:
		s, ok := value.(string)
		if !ok {
			return "must be a string"
		}
		for _, opt := range ps.Options {
			if s == opt {
				return ""
			}
		}
		return fmt.Sprintf("must be one of: %s", strings.Join(ps.Options, ", "))

	case TypeDate:
		s, ok := value.(string)
		if !ok {
			return "must be a date string"
		}
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return "must be a date in YYYY-MM-DD format"
		}

	default:
		// Unknown declared type: accept anything rather than reject a
		// template the catalog already shipped.
	}
	return ""
}

func asNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
