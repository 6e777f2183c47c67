package auth

import (
	"net/http"

	logger "github.com/sirupsen/logrus"
)

// AuthenticateMiddleware lets requests through only with a valid admin
// cookie.
type AuthenticateMiddleware struct {
	Secret []byte
}

func (m *AuthenticateMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := VerifyUser(r, m.Secret)
		if err != nil {
			logger.Debugf("Rejected %s %s: %s", r.Method, r.URL.Path, err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		logger.Debugf("Admin %s on %s", user, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
