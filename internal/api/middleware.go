package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/teris-io/shortid"
)

func (s *App) errorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				var panicError error
				switch e := err.(type) {
				case error:
					panicError = e
				default:
					panicError = fmt.Errorf("%v", e)
				}
				s.log.Printf("panic: %v", panicError)
				errResp := NewInternalServerError(panicError)
				w.Header().Set("Connection", "close")
				s.writeError(w, errResp)
				return
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// requestLogger tags each request with a short id so concurrent request
// logs can be correlated.
func (s *App) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqId, err := shortid.Generate()
		if err != nil {
			reqId = "-"
		}

		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Printf("[%s] %s %s %s", reqId, r.Method, r.URL.RequestURI(), time.Since(start))
	})
}
