// Package collect holds the port-listen collector form logic: default
// merging, service tag parsing, validation and the submit pipeline.
// It has no UI dependencies; internal/ui drives it from a bubbletea model.
package collect

// CollectType names the kind of collector a form produces.
type CollectType string

// CollectTypePort is the only collector type produced by the port form.
const CollectTypePort CollectType = "port"

// Metric is the metric name a port collector reports.
const Metric = "proc.port.listen"

// InitialValues is an optional, partial record used to prefill the form.
// A nil field means "not supplied" and falls back to DefaultFormData.
type InitialValues struct {
	CollectType *CollectType `json:"collect_type,omitempty"`
	Name        *string      `json:"name,omitempty"`
	NID         *int64       `json:"nid,omitempty"`
	Port        *int         `json:"port,omitempty"`
	Timeout     *int         `json:"timeout,omitempty"`
	Step        *int         `json:"step,omitempty"`
	Comment     *string      `json:"comment,omitempty"`
	Tags        *string      `json:"tags,omitempty"`
}

// Values is the field set the form edits. Unset numeric fields are nil and
// reported as missing by the validator.
type Values struct {
	CollectType CollectType
	NID         int64
	Name        string
	Service     string
	Port        *int
	Timeout     *int
	Step        *int
	Comment     string
}

// Payload is what the submit callback receives. The transient service field
// is folded into Tags.
type Payload struct {
	CollectType CollectType `json:"collect_type"`
	NID         int64       `json:"nid"`
	Name        string      `json:"name"`
	Port        int         `json:"port"`
	Timeout     int         `json:"timeout"`
	Step        int         `json:"step"`
	Comment     string      `json:"comment"`
	Tags        string      `json:"tags"`
}

// Field identifies a form field.
type Field string

const (
	FieldNID         Field = "nid"
	FieldName        Field = "name"
	FieldService     Field = "service"
	FieldPort        Field = "port"
	FieldTimeout     Field = "timeout"
	FieldStep        Field = "step"
	FieldComment     Field = "comment"
	FieldCollectType Field = "collect_type"
)

// Fields lists the editable fields in display order.
var Fields = []Field{FieldNID, FieldName, FieldService, FieldPort, FieldTimeout, FieldStep, FieldComment}

// Ptr returns a pointer to v. Handy for building InitialValues literals.
func Ptr[T any](v T) *T {
	return &v
}
