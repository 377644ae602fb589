package collect

import (
	"fmt"
	"strconv"
	"strings"
)

// FormState is the explicit, mutable state of one port collector form.
// It is owned by a single form instance and is not safe for concurrent use.
type FormState struct {
	initial InitialValues
	values  Values
}

// NewFormState seeds a form from MergeDefaults(initial). The service field
// is prefilled from the initial tag string when it carries a service= tag.
func NewFormState(initial *InitialValues) *FormState {
	return NewFormStateWithBase(DefaultFormData, initial)
}

// NewFormStateWithBase is NewFormState with configured defaults.
func NewFormStateWithBase(base InitialValues, initial *InitialValues) *FormState {
	merged := MergeOnto(base, initial)
	values := Values{CollectType: CollectTypePort}
	if merged.CollectType != nil {
		values.CollectType = *merged.CollectType
	}
	if merged.NID != nil {
		values.NID = *merged.NID
	}
	if merged.Name != nil {
		values.Name = *merged.Name
	}
	if merged.Comment != nil {
		values.Comment = *merged.Comment
	}
	if merged.Tags != nil {
		values.Service = ServiceOrEmpty(*merged.Tags)
	}
	values.Port = clonePtr(merged.Port)
	values.Timeout = clonePtr(merged.Timeout)
	values.Step = clonePtr(merged.Step)
	return &FormState{initial: merged, values: values}
}

// Initial returns a copy of the effective initial values.
func (f *FormState) Initial() InitialValues {
	return f.initial.Clone()
}

// Values returns a copy of the current values.
func (f *FormState) Values() Values {
	v := f.values
	v.Port = clonePtr(v.Port)
	v.Timeout = clonePtr(v.Timeout)
	v.Step = clonePtr(v.Step)
	return v
}

func (f *FormState) SetNID(nid int64) {
	f.values.NID = nid
}

func (f *FormState) SetName(name string) {
	f.values.Name = name
}

func (f *FormState) SetService(s string) {
	f.values.Service = s
}

func (f *FormState) SetComment(c string) {
	f.values.Comment = c
}

func (f *FormState) SetPort(port int) {
	f.values.Port = Ptr(port)
}

func (f *FormState) SetTimeout(timeout int) {
	f.values.Timeout = Ptr(timeout)
}

func (f *FormState) SetStep(step int) {
	f.values.Step = Ptr(step)
}

func (f *FormState) ClearPort() {
	f.values.Port = nil
}

func (f *FormState) ClearTimeout() {
	f.values.Timeout = nil
}

func (f *FormState) ClearStep() {
	f.values.Step = nil
}

func (f *FormState) NID() int64 {
	return f.values.NID
}

func (f *FormState) Name() string {
	return f.values.Name
}

func (f *FormState) Service() string {
	return f.values.Service
}

func (f *FormState) Comment() string {
	return f.values.Comment
}

func (f *FormState) CollectType() CollectType {
	return f.values.CollectType
}

// Port returns the port and whether it is set.
func (f *FormState) Port() (int, bool) { return deref(f.values.Port) }

// Timeout returns the timeout in seconds and whether it is set.
func (f *FormState) Timeout() (int, bool) { return deref(f.values.Timeout) }

// Step returns the step in seconds and whether it is set.
func (f *FormState) Step() (int, bool) { return deref(f.values.Step) }

// Field returns the text representation of field, as a text input shows it.
func (f *FormState) Field(field Field) string {
	switch field {
	case FieldNID:
		if f.values.NID == 0 {
			return ""
		}
		return strconv.FormatInt(f.values.NID, 10)
	case FieldName:
		return f.values.Name
	case FieldService:
		return f.values.Service
	case FieldPort:
		return intText(f.values.Port)
	case FieldTimeout:
		return intText(f.values.Timeout)
	case FieldStep:
		return intText(f.values.Step)
	case FieldComment:
		return f.values.Comment
	case FieldCollectType:
		return string(f.values.CollectType)
	}
	return ""
}

// SetField parses raw text input for field. Empty numeric input clears the
// field; non-numeric input is rejected and leaves the field unchanged.
func (f *FormState) SetField(field Field, raw string) error {
	switch field {
	case FieldName:
		f.values.Name = raw
	case FieldService:
		f.values.Service = raw
	case FieldComment:
		f.values.Comment = raw
	case FieldNID:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			f.values.NID = 0
			return nil
		}
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return FieldErrors{field: {"must be a number"}}
		}
		f.values.NID = n
	case FieldPort, FieldTimeout, FieldStep:
		p, err := parseOptionalInt(raw)
		if err != nil {
			return FieldErrors{field: {"must be a number"}}
		}
		switch field {
		case FieldPort:
			f.values.Port = p
		case FieldTimeout:
			f.values.Timeout = p
		default:
			f.values.Step = p
		}
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

func parseOptionalInt(raw string) (*int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func intText(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func deref(p *int) (int, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}
