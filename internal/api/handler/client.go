// internal/api/handler/client.go
package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// ClientCookie names the cookie that identifies a browser.
const ClientCookie = "client_id"

type clientKey struct{}

// ClientID ensures every request carries a client ID, issuing a new one
// in a cookie when the request has none or an unparseable one.
func ClientID(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(ClientCookie); err == nil {
				if parsed, err := uuid.Parse(c.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     ClientCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteStrictMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), id)))
		})
	}
}

func WithClientID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, clientKey{}, id)
}

func ClientIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(clientKey{}).(string)
	return id
}
