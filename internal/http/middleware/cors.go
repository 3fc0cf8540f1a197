package middleware

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var defaultAllowOrigins = []string{
	"http://localhost",
	"http://localhost:80",
	"http://localhost:3000",
	"http://127.0.0.1",
	"http://127.0.0.1:80",
	"http://127.0.0.1:3000",
}

// CORS allows the given origins, or the local dev origins when none are
// configured. A single "*" allows any origin without credentials.
func CORS(origins []string) gin.HandlerFunc {
	allow := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			allow = append(allow, o)
		}
	}
	if len(allow) == 0 {
		allow = defaultAllowOrigins
	}
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-Id"},
		ExposeHeaders: []string{"Content-Disposition", "X-Trace-Id", "X-Request-Id"},
	}
	if len(allow) == 1 && allow[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allow
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
