package service

import (
	"sync"

	agents "tune_outbound_backend/internal/agents/domain"
)

// Cache is a process-local store of built agent profiles, keyed by
// industry. It is injected so tests and binaries control its lifetime.
type Cache struct {
	mu         sync.RWMutex
	byIndustry map[string]agents.Profile
}

// NewCache creates an empty agent cache.
func NewCache() *Cache {
	return &Cache{byIndustry: make(map[string]agents.Profile)}
}

// Get returns the cached profile for an industry, if present.
func (c *Cache) Get(industry string) (agents.Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byIndustry[industry]
	return p, ok
}

// Put stores a profile, replacing any previous entry for the industry.
func (c *Cache) Put(p agents.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byIndustry[p.Industry] = p
}
