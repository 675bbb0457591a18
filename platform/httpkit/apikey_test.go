package httpkit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeKeyStore struct {
	keys map[string]*APIKey
}

func (s *fakeKeyStore) FindByHash(ctx context.Context, keyHash string) (*APIKey, error) {
	return s.keys[keyHash], nil
}

func TestVerify(t *testing.T) {
	key := APIKey{KeyHash: HashAPIKey("tok_secret"), Name: "ops", Active: true}
	if !key.Verify("tok_secret") {
		t.Error("Verify rejected the matching plaintext")
	}
	if key.Verify("tok_wrong") {
		t.Error("Verify accepted a mismatched plaintext")
	}
}

func TestAPIKeyRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)

	active := &APIKey{KeyHash: HashAPIKey("tok_active"), Name: "ops", Active: true}
	inactive := &APIKey{KeyHash: HashAPIKey("tok_revoked"), Name: "old", Active: false}
	store := &fakeKeyStore{keys: map[string]*APIKey{
		active.KeyHash:   active,
		inactive.KeyHash: inactive,
	}}

	engine := gin.New()
	engine.Use(APIKeyRequired(store))
	engine.GET("/ping", func(c *gin.Context) {
		key := GetAPIKey(c)
		if key == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no key in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"name": key.Name})
	})

	cases := []struct {
		name   string
		apiKey string
		status int
	}{
		{"valid key", "tok_active", http.StatusOK},
		{"missing key", "", http.StatusUnauthorized},
		{"unknown key", "tok_nope", http.StatusUnauthorized},
		{"deactivated key", "tok_revoked", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tc.apiKey != "" {
				req.Header.Set(APIKeyHeader, tc.apiKey)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Errorf("status = %d, want %d", rec.Code, tc.status)
			}
		})
	}
}
