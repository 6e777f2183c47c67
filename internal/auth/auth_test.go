package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := BuildJWTString("admin", secret, time.Hour)
	require.NoError(t, err)

	user, err := GetUser(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "admin", user)
}

func TestGetUserErrors(t *testing.T) {
	expired, err := BuildJWTString("admin", secret, -time.Minute)
	require.NoError(t, err)
	valid, err := BuildJWTString("admin", secret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret []byte
	}{
		{"expired", expired, secret},
		{"wrong secret", valid, []byte("other")},
		{"garbage", "not-a-token", secret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GetUser(tt.token, tt.secret)
			assert.Error(t, err)
		})
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("hunter2", hash))
	assert.False(t, CheckPasswordHash("hunter3", hash))
	assert.False(t, CheckPasswordHash("hunter2", "not-a-hash"))
}

func TestAuthenticateMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := (&AuthenticateMiddleware{Secret: secret}).Handle(next)

	login := httptest.NewRecorder()
	require.NoError(t, SetAuthCookie("admin", login, secret, time.Hour))
	cookies := login.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	tests := []struct {
		name       string
		cookie     *http.Cookie
		wantStatus int
	}{
		{"no cookie", nil, http.StatusUnauthorized},
		{"bad cookie", &http.Cookie{Name: userCookie, Value: "junk"}, http.StatusUnauthorized},
		{"valid cookie", cookies[0], http.StatusTeapot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/last_scans", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
			}
		})
	}
}
