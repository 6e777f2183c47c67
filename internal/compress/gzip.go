package compress

import (
	"compress/gzip"
	"net/http"
	"strings"

	logger "github.com/sirupsen/logrus"
)

// RequestUngzipper transparently decodes gzip encoded request bodies.
type RequestUngzipper struct{}

func (u RequestUngzipper) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		if !strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		reader, err := gzip.NewReader(r.Body)
		if err != nil {
			logger.Warnf("Bad gzip body on %s: %s", r.URL.Path, err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"ok":false,"error":"invalid gzip body"}`))
			return
		}
		defer reader.Close()

		r.Body = reader
		r.Header.Del("Content-Encoding")
		r.ContentLength = -1
		next.ServeHTTP(w, r)
	})
}
