package metadata

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Failure reasons reported by the built-in rules.
const (
	ReasonRequired      = "required"
	ReasonEmpty         = "empty"
	ReasonInvalidType   = "invalid type"
	ReasonInvalidValue  = "invalid value"
	ReasonInvalidFormat = "invalid format"
	ReasonOutOfRange    = "out of range"
	ReasonInvalidURL    = "invalid URL"
	ReasonMustMatch     = "must match"
)

// Status is the result category of a single rule check.
type Status int

const (
	// StatusSuccess lets the chain continue with the next rule.
	StatusSuccess Status = iota
	// StatusEarlySuccess stops the chain without recording a failure.
	StatusEarlySuccess
	// StatusFailure stops the chain and records Reason for the field.
	StatusFailure
)

// Outcome is what a Rule returns for one field.
type Outcome struct {
	Status  Status
	Reason  string
	Message string
}

// Pass is the outcome of a successful check.
func Pass() Outcome { return Outcome{Status: StatusSuccess} }

// Stop ends the chain successfully.
func Stop() Outcome { return Outcome{Status: StatusEarlySuccess} }

// Fail reports a failure with a reason category and an optional message.
func Fail(reason, message string) Outcome {
	return Outcome{Status: StatusFailure, Reason: reason, Message: message}
}

// Failed returns true if the outcome is a failure.
func (o Outcome) Failed() bool { return o.Status == StatusFailure }

// Rule checks one field of a document.
// Implementations must be pure: the same input always yields the same outcome.
type Rule interface {
	Check(f Field, doc Document) Outcome
}

// RuleFunc adapts a plain function to the Rule interface.
type RuleFunc func(f Field, doc Document) Outcome

// Check implements Rule.
func (fn RuleFunc) Check(f Field, doc Document) Outcome { return fn(f, doc) }

// Kind is the runtime type class checked by IsType.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindBool:
		return "boolean"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// kindOf reports whether v belongs to k. Booleans are never integers.
func kindOf(v any, k Kind) bool {
	switch k {
	case KindString:
		_, ok := v.(string)
		return ok
	case KindInt:
		_, ok := asInt(v)
		return ok
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindObject:
		switch v.(type) {
		case map[string]any, Document:
			return true
		}
	}
	return false
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Required fails if the field is absent from the document.
func Required() Rule { return requiredRule{} }

type requiredRule struct{}

func (requiredRule) Check(f Field, _ Document) Outcome {
	if !f.Present {
		return Fail(ReasonRequired, "required")
	}
	return Pass()
}

// Nonempty fails if the value is an empty string or null.
func Nonempty() Rule {
	return RuleFunc(func(f Field, _ Document) Outcome {
		if f.Value == nil {
			return Fail(ReasonEmpty, "must not be empty")
		}
		if s, ok := f.Value.(string); ok && s == "" {
			return Fail(ReasonEmpty, "must not be empty")
		}
		return Pass()
	})
}

// IsType fails if the value's runtime type is not k.
func IsType(k Kind) Rule {
	return RuleFunc(func(f Field, _ Document) Outcome {
		if !kindOf(f.Value, k) {
			return Fail(ReasonInvalidType, "must be of type "+k.String())
		}
		return Pass()
	})
}

// IsIn fails if the value is not one of values.
// Integers compare by numeric value regardless of their Go type.
func IsIn(values ...any) Rule {
	allowed := make([]any, len(values))
	copy(allowed, values)
	return RuleFunc(func(f Field, _ Document) Outcome {
		for _, a := range allowed {
			if sameValue(a, f.Value) {
				return Pass()
			}
		}
		return Fail(ReasonInvalidValue, "must be one of "+describeSet(allowed))
	})
}

func sameValue(a, b any) bool {
	if ai, ok := asInt(a); ok {
		if _, isBool := b.(bool); isBool {
			return false
		}
		bi, ok := asInt(b)
		return ok && ai == bi
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	return false
}

func describeSet(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

// Match fails if the string value does not fully match expr.
// The expression is anchored at both ends; it panics if expr does not compile,
// so rule tables fail at init.
func Match(expr string) Rule {
	re := regexp.MustCompile(`^(?:` + expr + `)$`)
	return RuleFunc(func(f Field, _ Document) Outcome {
		s, ok := f.Value.(string)
		if !ok || !re.MatchString(s) {
			return Fail(ReasonInvalidFormat, "invalid format")
		}
		return Pass()
	})
}

// Gte fails if the numeric value is lower than n.
func Gte(n float64) Rule {
	return RuleFunc(func(f Field, _ Document) Outcome {
		if _, isBool := f.Value.(bool); isBool {
			return Fail(ReasonInvalidType, "must be a number")
		}
		v, ok := asFloat(f.Value)
		if !ok {
			return Fail(ReasonInvalidType, "must be a number")
		}
		if v < n {
			return Fail(ReasonOutOfRange, fmt.Sprintf("must be greater than or equal to %v", n))
		}
		return Pass()
	})
}

// unpadded turns the zero-padded elements of a Go time layout into their
// one-or-two digit forms. Hours ("15") already accept a single digit.
var unpadded = strings.NewReplacer("01", "1", "02", "2", "04", "4", "05", "5")

// Timestamp fails if the string value does not parse with the Go time layout.
// Month, day, hour, minute and second may be written without a leading zero.
func Timestamp(layout string) Rule {
	lenient := unpadded.Replace(layout)
	return RuleFunc(func(f Field, _ Document) Outcome {
		s, ok := f.Value.(string)
		if !ok {
			return Fail(ReasonInvalidFormat, "invalid format, expected "+layout)
		}
		if _, err := time.Parse(lenient, s); err != nil {
			return Fail(ReasonInvalidFormat, "invalid format, expected "+layout)
		}
		return Pass()
	})
}
