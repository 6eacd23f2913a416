package listing

import (
	"github.com/yanqian/listing-insights/internal/domain/geo"
	apperrors "github.com/yanqian/listing-insights/pkg/errors"
)

// Phase is the submission state of a form.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
)

// Outcome is the settled result of one submission.
type Outcome struct {
	Success bool                `json:"success"`
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message"`
	Result  *PredictionResponse `json:"result,omitempty"`
	Errors  FieldErrors         `json:"errors,omitempty"`
}

// Form owns the state of one listing form: values, errors, phase and the last
// outcome. It is not safe for concurrent use; each request builds its own.
type Form struct {
	values  FormValues
	errors  FieldErrors
	phase   Phase
	outcome *Outcome
}

// NewForm starts an idle form from defaults.
func NewForm(defaults FormValues) *Form {
	return &Form{
		values: defaults.Clone(),
		errors: FieldErrors{},
		phase:  PhaseIdle,
	}
}

// Value returns the current raw value of field.
func (f *Form) Value(field string) string {
	return f.values[field]
}

// Values returns a copy of every field value.
func (f *Form) Values() FormValues {
	return f.values.Clone()
}

// Set changes one field and drops its stale errors.
func (f *Form) Set(field, value string) {
	f.values[field] = value
	delete(f.errors, field)
}

// Merge applies every entry of values.
func (f *Form) Merge(values FormValues) {
	for k, v := range values {
		f.Set(k, v)
	}
}

// Errors returns the messages recorded for field.
func (f *Form) Errors(field string) []string {
	return f.errors[field]
}

// FieldErrors returns every recorded error.
func (f *Form) FieldErrors() FieldErrors {
	return f.errors
}

// ClearErrors forgets all field errors.
func (f *Form) ClearErrors() {
	f.errors = FieldErrors{}
}

// SetLocation records a map position and the neighbourhood nearest to it.
// Coordinates are kept to six decimals, which is what the map reports.
func (f *Form) SetLocation(table []geo.Neighbourhood, p geo.Point) (geo.Neighbourhood, bool) {
	p = p.Rounded()
	f.Set(FieldLatitude, formatNumber(p.Lat))
	f.Set(FieldLongitude, formatNumber(p.Lon))
	n, ok := geo.Nearest(table, p)
	if ok {
		f.Set(FieldNeighbourhood, n.Name)
	}
	return n, ok
}

// Phase reports the submission phase.
func (f *Form) Phase() Phase {
	return f.phase
}

// Submitting reports whether a submission is in flight.
func (f *Form) Submitting() bool {
	return f.phase == PhaseSubmitting
}

// Outcome returns the last settled outcome, if any.
func (f *Form) Outcome() *Outcome {
	return f.outcome
}

// Begin moves the form to submitting and clears the previous result.
func (f *Form) Begin() error {
	if f.phase == PhaseSubmitting {
		return apperrors.Wrap(apperrors.CodeBusy, "a prediction is already in progress", nil)
	}
	f.phase = PhaseSubmitting
	f.outcome = nil
	f.ClearErrors()
	return nil
}

// Settle records the outcome and returns the form to idle.
func (f *Form) Settle(o Outcome) {
	f.outcome = &o
	if len(o.Errors) > 0 {
		f.errors = FieldErrors{}
		for k, v := range o.Errors {
			f.errors[k] = append([]string(nil), v...)
		}
	}
	f.phase = PhaseIdle
}
