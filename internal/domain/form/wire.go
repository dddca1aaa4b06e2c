// internal/domain/form/wire.go
package form

// MessageType tags messages exchanged with a connected form client.
type MessageType string

const (
	MessageInput  MessageType = "input"
	MessageBlur   MessageType = "blur"
	MessageReset  MessageType = "reset"
	MessageSubmit MessageType = "submit"
)

// ClientMessage is one UI event sent by a browser.
type ClientMessage struct {
	Type  MessageType `json:"type" validate:"required,oneof=input blur reset submit"`
	Field Kind        `json:"field,omitempty" validate:"required_if=Type input,required_if=Type blur,omitempty,oneof=email password"`
	Value string      `json:"value,omitempty"`
}

// Apply routes msg to the matching form operation and reports whether it
// resulted in a call to onLogin. Messages naming an unknown field are
// ignored.
func (f *LoginForm) Apply(msg ClientMessage) bool {
	switch msg.Type {
	case MessageInput:
		switch msg.Field {
		case KindEmail:
			f.OnEmailInput(msg.Value)
		case KindPassword:
			f.OnPasswordInput(msg.Value)
		}
	case MessageBlur:
		switch msg.Field {
		case KindEmail:
			f.OnEmailBlur()
		case KindPassword:
			f.OnPasswordBlur()
		}
	case MessageReset:
		f.Reset()
	case MessageSubmit:
		return f.Submit()
	}
	return false
}
