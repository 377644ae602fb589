package collect

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Validator checks form values. On success it returns the normalized
// values; on failure the error is a FieldErrors.
type Validator interface {
	Validate(values Values) (Values, error)
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(values Values) (Values, error)

// Validate implements Validator.
func (f ValidatorFunc) Validate(values Values) (Values, error) {
	return f(values)
}

var (
	// nameRule allows letters (any script), digits, '.', '_' and '-'.
	nameRule = regexp.MustCompile(`^[\p{L}\p{N}._-]+$`)
	// servicePattern is the service tag value rule.
	servicePattern = regexp.MustCompile(`^[a-zA-Z0-9-_.]+$`)
)

const (
	msgRequired       = "is required"
	msgNameFormat     = "may only contain letters, digits, '.', '_' and '-'"
	msgServicePattern = "may only contain letters, digits, '-', '_' and '.'"
	minPort           = 1
	maxPort           = 65535
	minTimeout        = 1
)

// Rule checks one field. It returns "" when the value is acceptable.
type Rule struct {
	Field Field
	Check func(v Values) string
}

// RuleValidator applies rules in order, collecting at most one message per
// rule and stopping at the first failing rule of each field.
type RuleValidator struct {
	rules []Rule
	steps []int
}

// RuleOption configures a RuleValidator.
type RuleOption func(*RuleValidator)

// WithSteps restricts step to the given options. An empty list accepts any
// positive step.
func WithSteps(steps []int) RuleOption {
	return func(v *RuleValidator) {
		v.steps = append([]int(nil), steps...)
	}
}

// WithRule appends an extra rule after the built-in ones.
func WithRule(r Rule) RuleOption {
	return func(v *RuleValidator) {
		v.rules = append(v.rules, r)
	}
}

// NewRuleValidator returns the port collector validator.
func NewRuleValidator(opts ...RuleOption) *RuleValidator {
	v := &RuleValidator{}
	v.rules = v.builtinRules()
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *RuleValidator) builtinRules() []Rule {
	return []Rule{
		{FieldNID, func(x Values) string {
			if x.NID <= 0 {
				return msgRequired
			}
			return ""
		}},
		{FieldName, func(x Values) string { return requiredString(x.Name) }},
		{FieldName, func(x Values) string {
			if !nameRule.MatchString(x.Name) {
				return msgNameFormat
			}
			return ""
		}},
		{FieldService, func(x Values) string { return requiredString(x.Service) }},
		{FieldService, func(x Values) string {
			if !servicePattern.MatchString(x.Service) {
				return msgServicePattern
			}
			return ""
		}},
		{FieldPort, func(x Values) string { return requiredInt(x.Port) }},
		{FieldPort, func(x Values) string {
			if *x.Port < minPort || *x.Port > maxPort {
				return fmt.Sprintf("must be between %d and %d", minPort, maxPort)
			}
			return ""
		}},
		{FieldTimeout, func(x Values) string { return requiredInt(x.Timeout) }},
		{FieldTimeout, func(x Values) string {
			if *x.Timeout < minTimeout {
				return fmt.Sprintf("must be at least %d", minTimeout)
			}
			return ""
		}},
		{FieldStep, func(x Values) string { return requiredInt(x.Step) }},
		{FieldStep, func(x Values) string {
			if len(v.steps) == 0 {
				if *x.Step <= 0 {
					return "must be positive"
				}
				return ""
			}
			if !slices.Contains(v.steps, *x.Step) {
				return "must be one of " + joinInts(v.steps)
			}
			return ""
		}},
	}
}

// Validate implements Validator.
func (v *RuleValidator) Validate(values Values) (Values, error) {
	values = normalize(values)
	errs := FieldErrors{}
	for _, r := range v.rules {
		if errs.Has(r.Field) {
			continue
		}
		if msg := r.Check(values); msg != "" {
			errs.Add(r.Field, msg)
		}
	}
	if len(errs) > 0 {
		return values, errs
	}
	return values, nil
}

// normalize fills defaults and trims the free-text comment. Name and
// service are checked as typed: surrounding spaces fail their patterns.
func normalize(values Values) Values {
	values.Comment = strings.TrimSpace(values.Comment)
	if values.CollectType == "" {
		values.CollectType = CollectTypePort
	}
	return values
}

func requiredString(s string) string {
	if strings.TrimSpace(s) == "" {
		return msgRequired
	}
	return ""
}

func requiredInt(p *int) string {
	if p == nil {
		return msgRequired
	}
	return ""
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ", ")
}
