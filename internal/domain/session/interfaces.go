// internal/domain/session/interfaces.go
package session

import "context"

type Validator interface {
	Validate(interface{}) error
}

// Store is per-client key/value storage, the server-side stand-in for
// browser local storage. GetItem reports ok=false for a missing key.
type Store interface {
	GetItem(ctx context.Context, clientID, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, clientID, key, value string) error
	RemoveItem(ctx context.Context, clientID, key string) error
	Ping(ctx context.Context) error
}
