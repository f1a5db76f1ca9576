// Package schema validates mutation payloads against declarative shape
// definitions before anything touches the store. Each payload kind has one
// Schema; one generic evaluator walks its field rules and aggregates every
// violation into a single typed failure.
package schema

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
)

// Kind is the expected type of a field's raw form value.
type Kind int

const (
	String Kind = iota
	Number
	Int
)

// Field is one declarative rule set for a named payload field.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	NoMarkup bool     // reject values that change under HTML stripping
	Min      *float64 // inclusive
	Max      *float64 // inclusive
	Decimals int      // for Number: round to this many decimal places (0 = leave as-is)
}

// Schema is a named payload shape.
type Schema struct {
	Name   string
	Fields []Field
}

// FieldError is one violated rule with its user-facing reason.
type FieldError struct {
	Field   string
	Message string
}

// Violation aggregates every field failure of one payload into a single typed
// error carrying a 400-class status.
type Violation struct {
	Status int
	Fields []FieldError
}

// Error joins all field messages with commas, matching the one-flash-per-request
// failure policy.
func (v *Violation) Error() string {
	msgs := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, ",")
}

var stripMarkup = bluemonday.StrictPolicy()

// markupSafe reports whether stripping all markup leaves the value unchanged.
// The sanitizer entity-escapes its output, so the comparison unescapes first;
// plain "&" or "<" in prose survives while any tag does not.
func markupSafe(value string) bool {
	return html.UnescapeString(stripMarkup.Sanitize(value)) == value
}

// Validate evaluates the schema over raw form values. On success it returns the
// sanitized typed values keyed by field name (string, float64 or int). On any
// failure it returns a single Violation listing every violated field.
func (s Schema) Validate(values map[string]string) (map[string]interface{}, *Violation) {
	out := make(map[string]interface{}, len(s.Fields))
	var fieldErrs []FieldError

	fail := func(name, format string, args ...interface{}) {
		fieldErrs = append(fieldErrs, FieldError{
			Field:   name,
			Message: fmt.Sprintf("%q ", name) + fmt.Sprintf(format, args...),
		})
	}

	for _, f := range s.Fields {
		raw, present := values[f.Name]
		raw = strings.TrimSpace(raw)
		if !present || raw == "" {
			if f.Required {
				fail(f.Name, "is not allowed to be empty")
			}
			continue
		}

		switch f.Kind {
		case String:
			if f.NoMarkup && !markupSafe(raw) {
				fail(f.Name, "must not include HTML!")
				continue
			}
			out[f.Name] = raw

		case Number:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				fail(f.Name, "must be a number")
				continue
			}
			if f.Decimals > 0 {
				shift := math.Pow10(f.Decimals)
				n = math.Round(n*shift) / shift
			}
			if !inRange(n, f, fail) {
				continue
			}
			out[f.Name] = n

		case Int:
			n, err := strconv.Atoi(raw)
			if err != nil {
				fail(f.Name, "must be an integer")
				continue
			}
			if !inRange(float64(n), f, fail) {
				continue
			}
			out[f.Name] = n
		}
	}

	if len(fieldErrs) > 0 {
		return nil, &Violation{Status: fiber.StatusBadRequest, Fields: fieldErrs}
	}
	return out, nil
}

func inRange(n float64, f Field, fail func(string, string, ...interface{})) bool {
	if f.Min != nil && n < *f.Min {
		fail(f.Name, "must be greater than or equal to %v", *f.Min)
		return false
	}
	if f.Max != nil && n > *f.Max {
		fail(f.Name, "must be less than or equal to %v", *f.Max)
		return false
	}
	return true
}
