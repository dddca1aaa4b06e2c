// internal/domain/session/model.go
package session

// FlagKey is the storage key of the logged-in flag. It is used for
// every read, write and removal.
const FlagKey = "isLoggedIn"

// flagValue is what a login writes under FlagKey.
const flagValue = "1"

// Session is the restored login state of one client.
type Session struct {
	ClientID string `json:"clientId"`
	LoggedIn bool   `json:"isLoggedIn"`
}

// View names the top-level page a client should see.
type View string

const (
	ViewLogin View = "login"
	ViewHome  View = "home"
)

func (s Session) View() View {
	if s.LoggedIn {
		return ViewHome
	}
	return ViewLogin
}

type LoginRequest struct {
	ClientID string `json:"-" validate:"required"`
	Email    string `json:"email" validate:"loginemail"`
	Password string `json:"password" validate:"loginpassword"`
}
