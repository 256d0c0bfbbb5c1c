package middleware

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminRequired guards moderation endpoints with the shared admin key. The
// key arrives either as the ?key= query parameter (one-click email links) or
// as the "key" field of a JSON body. An empty configured key locks the whole
// admin surface.
func AdminRequired(configuredKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if configuredKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "admin access disabled"})
			return
		}

		presented := c.Query("key")
		if presented == "" {
			presented = keyFromBody(c)
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(configuredKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "cheie de admin invalidă"})
			return
		}

		c.Next()
	}
}

// keyFromBody peeks at the JSON body for a key field, then restores the body
// so the handler can bind it again.
func keyFromBody(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	var payload struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return payload.Key
}
