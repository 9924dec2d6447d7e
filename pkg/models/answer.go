package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AnswerKind discriminates the variants an answer value can take.
type AnswerKind int

const (
	AnswerNull AnswerKind = iota
	AnswerString
	AnswerNumber
	AnswerBool
	AnswerList
)

// String returns the kind name for logging.
func (k AnswerKind) String() string {
	switch k {
	case AnswerNull:
		return "null"
	case AnswerString:
		return "string"
	case AnswerNumber:
		return "number"
	case AnswerBool:
		return "bool"
	case AnswerList:
		return "list"
	default:
		return "unknown"
	}
}

// AnswerValue is a tagged variant holding one collected answer. Exactly one
// of the payload fields is meaningful, selected by Kind.
type AnswerValue struct {
	Kind AnswerKind
	Str  string
	Num  float64
	Bool bool
	List []string
}

// NullValue returns the null answer.
func NullValue() AnswerValue { return AnswerValue{Kind: AnswerNull} }

// StringValue wraps a string answer.
func StringValue(s string) AnswerValue { return AnswerValue{Kind: AnswerString, Str: s} }

// NumberValue wraps a numeric answer.
func NumberValue(n float64) AnswerValue { return AnswerValue{Kind: AnswerNumber, Num: n} }

// BoolValue wraps a boolean answer.
func BoolValue(b bool) AnswerValue { return AnswerValue{Kind: AnswerBool, Bool: b} }

// ListValue wraps a multi-select answer.
func ListValue(items []string) AnswerValue { return AnswerValue{Kind: AnswerList, List: items} }

// IsNull reports whether the answer is the null variant.
func (v AnswerValue) IsNull() bool { return v.Kind == AnswerNull }

// Raw returns the answer as its plain string form: the string itself, a
// number without trailing zeros, "true"/"false", or list items joined with
// commas. Null yields the empty string.
func (v AnswerValue) Raw() string {
	switch v.Kind {
	case AnswerString:
		return v.Str
	case AnswerNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case AnswerBool:
		return strconv.FormatBool(v.Bool)
	case AnswerList:
		return strings.Join(v.List, ",")
	default:
		return ""
	}
}

// Native returns the answer as the dynamic value expected by expression
// environments: string, float64, bool, []string, or nil.
func (v AnswerValue) Native() any {
	switch v.Kind {
	case AnswerString:
		return v.Str
	case AnswerNumber:
		return v.Num
	case AnswerBool:
		return v.Bool
	case AnswerList:
		return v.List
	default:
		return nil
	}
}

// MarshalJSON encodes the variant as its natural JSON value.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Native())
}

// UnmarshalJSON decodes a JSON string, number, boolean, string array, or
// null into the matching variant.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = NullValue()
	case string:
		*v = StringValue(t)
	case float64:
		*v = NumberValue(t)
	case bool:
		*v = BoolValue(t)
	case []any:
		items := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("answer arrays may only contain strings, got %T", item)
			}
			items = append(items, s)
		}
		*v = ListValue(items)
	default:
		return fmt.Errorf("unsupported answer value of type %T", raw)
	}
	return nil
}

// Response records one collected answer for a question.
type Response struct {
	QuestionID string      `json:"questionId"`
	Value      AnswerValue `json:"value"`
}

// FindResponse returns the response for the given question id, or nil.
func FindResponse(responses []Response, questionID string) *Response {
	for i := range responses {
		if responses[i].QuestionID == questionID {
			return &responses[i]
		}
	}
	return nil
}
