package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nathanyu/bank-transfer/internal/telemetry"
)

// TokenVerifier decides whether a bearer token grants access. Swapping in a
// real secret backend only requires a new implementation; the routing layer
// never changes.
type TokenVerifier interface {
	Verify(token string) bool
}

// StaticTokenVerifier accepts exactly one shared secret.
type StaticTokenVerifier struct {
	secret string
}

// NewStaticTokenVerifier creates a verifier for the given secret.
func NewStaticTokenVerifier(secret string) *StaticTokenVerifier {
	return &StaticTokenVerifier{secret: secret}
}

// Verify compares the token against the secret in constant time.
func (v *StaticTokenVerifier) Verify(token string) bool {
	return subtle.ConstantTimeCompare([]byte(token), []byte(v.secret)) == 1
}

// BearerAuth guards a route with a bearer token. A missing header and a wrong
// token produce byte-identical 401 responses so a caller cannot tell which
// case occurred.
func BearerAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if fields := strings.Fields(c.GetHeader("Authorization")); len(fields) >= 2 {
			token = fields[1]
		}

		if !verifier.Verify(token) {
			telemetry.AuthRejectionsTotal.Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			return
		}

		c.Next()
	}
}
