// internal/domain/form/field.go
package form

import "encoding/json"

// Validity is the tri-state result of validating a field. Unknown means
// the field has not been evaluated yet.
type Validity int8

const (
	Unknown Validity = iota
	Valid
	Invalid
)

func validityOf(ok bool) Validity {
	if ok {
		return Valid
	}
	return Invalid
}

// True reports whether v is exactly Valid. Unknown counts as false.
func (v Validity) True() bool {
	return v == Valid
}

func (v Validity) String() string {
	switch v {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes Unknown as null so clients see the same shape as
// the browser form: null, true or false.
func (v Validity) MarshalJSON() ([]byte, error) {
	switch v {
	case Valid:
		return []byte("true"), nil
	case Invalid:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (v *Validity) UnmarshalJSON(data []byte) error {
	var b *bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	switch {
	case b == nil:
		*v = Unknown
	case *b:
		*v = Valid
	default:
		*v = Invalid
	}
	return nil
}

// FieldState is the value and validity of one form field.
type FieldState struct {
	Value   string   `json:"value"`
	IsValid Validity `json:"isValid"`
}

// Event is a transition input for a field. The set of events is closed.
type Event interface {
	fieldEvent()
}

// UserInput replaces the field value and validates it.
type UserInput struct {
	Value string
}

// Blur re-validates the stored value without changing it.
type Blur struct{}

// Reset returns the field to its pristine state.
type Reset struct{}

func (UserInput) fieldEvent() {}
func (Blur) fieldEvent()      {}
func (Reset) fieldEvent()     {}

// Reduce applies ev to state. It always returns a complete FieldState.
func Reduce(kind Kind, state FieldState, ev Event) FieldState {
	validate := Validator(kind)
	switch e := ev.(type) {
	case UserInput:
		return FieldState{Value: e.Value, IsValid: validityOf(validate(e.Value))}
	case Blur:
		return FieldState{Value: state.Value, IsValid: validityOf(validate(state.Value))}
	default:
		return FieldState{}
	}
}

// Field holds the state of a single input.
type Field struct {
	kind  Kind
	state FieldState
}

func NewField(kind Kind) *Field {
	return &Field{kind: kind}
}

func (f *Field) Kind() Kind {
	return f.kind
}

func (f *Field) State() FieldState {
	return f.state
}

// Dispatch applies ev and returns the new state.
func (f *Field) Dispatch(ev Event) FieldState {
	f.state = Reduce(f.kind, f.state, ev)
	return f.state
}
