package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
)

// SecureHeaders sets the standard browser hardening headers. HTTPS redirects
// and the strict content security policy apply in production only.
func SecureHeaders(isProduction bool) gin.HandlerFunc {
	opts := secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        isProduction,
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:      !isProduction,
	}
	if isProduction {
		opts.ContentSecurityPolicy = "default-src 'self'"
	}
	secureMiddleware := secure.New(opts)

	return func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			GetLoggerFromCtx(c.Request.Context()).Warn("Secure headers blocked request", slog.String("error", err.Error()))
			c.Abort()
			return
		}
		// Process wrote a redirect
		if status := c.Writer.Status(); status > 300 && status < 399 {
			c.Abort()
		}
	}
}
