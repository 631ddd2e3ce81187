package middleware

import (
	"net/http"

	"github.com/mdjurovic/vitalis/pkg"

	log "github.com/sirupsen/logrus"
)

func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userAgent := r.Header.Get("User-Agent")
			userIP, _ := pkg.ReadUserIP(r)
			log.Tracef(" ====> request [%s] path: [%s] [UA: %s] [IP: %s]", r.Method, r.URL.Path, userAgent, userIP)
			next.ServeHTTP(w, r)
		})
	}
}
