package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// JSON value kinds as reported in type mismatch messages.
const (
	kindUndefined = "undefined"
	kindNull      = "null"
	kindString    = "string"
	kindNumber    = "number"
	kindBoolean   = "boolean"
	kindArray     = "array"
	kindObject    = "object"
	kindInteger   = "integer"
	kindFloat     = "float"
)

// maxInt32 bounds integer columns (decimals, token_id).
const maxInt32 = math.MaxInt32

// object is a decoded top-level payload plus the issues collected while reading it.
type object struct {
	fields map[string]json.RawMessage
	issues []FieldError
}

// parseObject decodes body as a JSON object. A nil object means the body was
// rejected and the returned issues explain why.
func parseObject(body []byte) (*object, []FieldError) {
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, []FieldError{{
			Code:    CodeInvalidJSON,
			Path:    []string{},
			Message: fmt.Sprintf("Malformed JSON: %v", err),
		}}
	}

	if kind := kindOf(raw); kind != kindObject {
		return nil, []FieldError{typeIssue(nil, kindObject, kind)}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, []FieldError{{
			Code:    CodeInvalidJSON,
			Path:    []string{},
			Message: fmt.Sprintf("Malformed JSON: %v", err),
		}}
	}

	return &object{fields: fields}, nil
}

// requiredString reads a mandatory string field.
func (o *object) requiredString(name string) string {
	raw, ok := o.fields[name]
	if !ok {
		o.issues = append(o.issues, typeIssue([]string{name}, kindString, kindUndefined))
		return ""
	}
	if kind := kindOf(raw); kind != kindString {
		o.issues = append(o.issues, typeIssue([]string{name}, kindString, kind))
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		o.issues = append(o.issues, typeIssue([]string{name}, kindString, kindString))
		return ""
	}
	return s
}

// nullableString reads an optional string field that may also be null.
func (o *object) nullableString(name string) *string {
	raw, ok := o.fields[name]
	if !ok {
		return nil
	}

	switch kind := kindOf(raw); kind {
	case kindNull:
		return nil
	case kindString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			o.issues = append(o.issues, typeIssue([]string{name}, kindString, kindString))
			return nil
		}
		return &s
	default:
		o.issues = append(o.issues, typeIssue([]string{name}, kindString, kind))
		return nil
	}
}

// requiredInt reads a mandatory integer field bounded to the int32 column range.
func (o *object) requiredInt(name string) int64 {
	raw, ok := o.fields[name]
	if !ok {
		o.issues = append(o.issues, typeIssue([]string{name}, kindNumber, kindUndefined))
		return 0
	}

	v, ok := o.integer(name, raw)
	if !ok {
		return 0
	}
	return v
}

// optionalInt reads an integer field that may be omitted. Null is rejected:
// the column is NOT NULL and only absence selects the default.
func (o *object) optionalInt(name string) *int {
	raw, ok := o.fields[name]
	if !ok {
		return nil
	}

	v, ok := o.integer(name, raw)
	if !ok {
		return nil
	}
	i := int(v)
	return &i
}

func (o *object) integer(name string, raw json.RawMessage) (int64, bool) {
	path := []string{name}

	if kind := kindOf(raw); kind != kindNumber {
		o.issues = append(o.issues, typeIssue(path, kindNumber, kind))
		return 0, false
	}

	// raw is a well-formed JSON number, so the only possible error is
	// ErrRange, which comes with ±Inf and is caught by the bounds below.
	f, _ := strconv.ParseFloat(string(raw), 64)

	if !math.IsInf(f, 0) && f != math.Trunc(f) {
		o.issues = append(o.issues, typeIssue(path, kindInteger, kindFloat))
		return 0, false
	}

	if f > maxInt32 {
		o.issues = append(o.issues, FieldError{
			Code:    CodeTooBig,
			Path:    path,
			Message: fmt.Sprintf("Number must be less than or equal to %d", maxInt32),
		})
		return 0, false
	}
	if f < math.MinInt32 {
		o.issues = append(o.issues, FieldError{
			Code:    CodeTooSmall,
			Path:    path,
			Message: fmt.Sprintf("Number must be greater than or equal to %d", math.MinInt32),
		})
		return 0, false
	}

	return int64(f), true
}

// err returns the collected issues as a ValidationError, or nil.
func (o *object) err() error {
	if len(o.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: o.issues}
}

func typeIssue(path []string, expected, received string) FieldError {
	if path == nil {
		path = []string{}
	}

	msg := fmt.Sprintf("Expected %s, received %s", expected, received)
	if received == kindUndefined {
		msg = "Required"
	}

	return FieldError{
		Code:     CodeInvalidType,
		Path:     path,
		Message:  msg,
		Expected: expected,
		Received: received,
	}
}

// kindOf classifies an already-valid JSON value by its first byte.
func kindOf(raw json.RawMessage) string {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '"':
			return kindString
		case '{':
			return kindObject
		case '[':
			return kindArray
		case 't', 'f':
			return kindBoolean
		case 'n':
			return kindNull
		default:
			return kindNumber
		}
	}
	return kindUndefined
}
