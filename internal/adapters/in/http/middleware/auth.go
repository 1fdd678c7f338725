// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseAuthClient is an alias so RouterDeps can carry the concrete type
// without importing the firebase package everywhere.
type FirebaseAuthClient = fbauth.Client

// context key avoids string collisions (SA1029)
type ctxKey struct{ name string }

var ctxKeyVendorID = ctxKey{name: "vendorID"}

// AuthMiddleware validates
//
//   - Authorization: Bearer <ID_TOKEN>
//
// and injects the vendor ID (the Firebase UID) into the request context.
// Every authenticated route is scoped to that vendor's namespace.
type AuthMiddleware struct {
	FirebaseAuth *FirebaseAuthClient
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.FirebaseAuth == nil {
			http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyVendorID, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// VendorID returns the vendor namespace injected by AuthMiddleware.
func VendorID(r *http.Request) (string, bool) {
	v := r.Context().Value(ctxKeyVendorID)
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return strings.TrimSpace(s), true
}
