package collect

// DefaultFormData is the static default record every form starts from.
// Use Defaults for a copy; this value must not be mutated.
var DefaultFormData = InitialValues{
	CollectType: Ptr(CollectTypePort),
	Timeout:     Ptr(3),
	Step:        Ptr(10),
}

// Defaults returns a deep copy of DefaultFormData.
func Defaults() InitialValues {
	return DefaultFormData.Clone()
}

// WithDefaults returns a copy of DefaultFormData with timeout and step
// replaced, for deployments that configure different defaults. Values <= 0
// keep the built-in default.
func WithDefaults(timeout, step int) InitialValues {
	out := Defaults()
	if timeout > 0 {
		out.Timeout = Ptr(timeout)
	}
	if step > 0 {
		out.Step = Ptr(step)
	}
	return out
}

// Clone returns a deep copy of v. No pointer in the result aliases v.
func (v InitialValues) Clone() InitialValues {
	return InitialValues{
		CollectType: clonePtr(v.CollectType),
		Name:        clonePtr(v.Name),
		NID:         clonePtr(v.NID),
		Port:        clonePtr(v.Port),
		Timeout:     clonePtr(v.Timeout),
		Step:        clonePtr(v.Step),
		Comment:     clonePtr(v.Comment),
		Tags:        clonePtr(v.Tags),
	}
}

// MergeDefaults overlays a deep copy of in onto DefaultFormData. Fields set
// in in win; missing fields fall back to the defaults. in is never mutated
// and a nil in yields exactly the defaults.
func MergeDefaults(in *InitialValues) InitialValues {
	return MergeOnto(DefaultFormData, in)
}

// MergeOnto is MergeDefaults with an explicit base record. Neither base nor
// in is mutated, and the result aliases neither.
func MergeOnto(base InitialValues, in *InitialValues) InitialValues {
	out := base.Clone()
	if in == nil {
		return out
	}
	src := in.Clone()
	if src.CollectType != nil {
		out.CollectType = src.CollectType
	}
	if src.Name != nil {
		out.Name = src.Name
	}
	if src.NID != nil {
		out.NID = src.NID
	}
	if src.Port != nil {
		out.Port = src.Port
	}
	if src.Timeout != nil {
		out.Timeout = src.Timeout
	}
	if src.Step != nil {
		out.Step = src.Step
	}
	if src.Comment != nil {
		out.Comment = src.Comment
	}
	if src.Tags != nil {
		out.Tags = src.Tags
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
