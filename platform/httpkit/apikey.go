package httpkit

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// APIKeyHeader is the header machine callers authenticate with.
	APIKeyHeader = "X-API-Key"
	// ContextAPIKey is the gin context key for the authenticated API key.
	ContextAPIKey = "apiKey"
)

// APIKey is an authenticated machine credential. Keys are stored as SHA-256
// digests; plaintext never touches the database.
type APIKey struct {
	KeyHash            string
	Name               string
	Role               string
	RateLimitPerMinute int
	Active             bool
}

// Verify reports whether the provided plaintext key matches this record,
// using a constant-time comparison.
func (k APIKey) Verify(providedKey string) bool {
	digest := HashAPIKey(providedKey)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(k.KeyHash)) == 1
}

// HashAPIKey returns the hex SHA-256 digest of a plaintext key.
func HashAPIKey(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// KeyStore looks up API keys by their digest.
type KeyStore interface {
	FindByHash(ctx context.Context, keyHash string) (*APIKey, error)
}

// GetAPIKey returns the authenticated key set by APIKeyRequired, or nil.
func GetAPIKey(c *gin.Context) *APIKey {
	value, ok := c.Get(ContextAPIKey)
	if !ok {
		return nil
	}
	key, ok := value.(*APIKey)
	if !ok {
		return nil
	}
	return key
}

// APIKeyRequired returns middleware that validates the X-API-Key header
// against the store and attaches the key record to the request context.
func APIKeyRequired(store KeyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(APIKeyHeader)
		if provided == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			return
		}

		key, err := store.FindByHash(c.Request.Context(), HashAPIKey(provided))
		if err != nil || key == nil || !key.Active || !key.Verify(provided) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}

		c.Set(ContextAPIKey, key)
		c.Next()
	}
}
