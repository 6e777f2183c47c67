package auth

import (
	"net/http"
	"time"
)

const userCookie = "_ssccscan_admin"

func VerifyUser(r *http.Request, secret []byte) (string, error) {
	cookie, err := r.Cookie(userCookie)
	if err == nil {
		user, err := GetUser(cookie.Value, secret)
		if err != nil {
			return user, err
		}
		return user, nil
	}
	return "", err
}

func SetAuthCookie(username string, w http.ResponseWriter, secret []byte, ttl time.Duration) error {

	token, err := BuildJWTString(username, secret, ttl)
	if err != nil {
		return err
	}
	cookie := &http.Cookie{
		Name:     userCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)
	return nil
}
