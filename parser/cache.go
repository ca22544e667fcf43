package parser

import (
	"strings"
	"sync"

	"github.com/randalmurphal/outparse/template"
)

// Cache memoizes plans keyed by template text and binding signatures.
// Failed binds are not cached. It is safe for concurrent use.
//
// Example:
//
//	cache := parser.NewCache()
//	plan, err := cache.Plan("x={x}, y={y}", parser.Scalar("x", intConv), parser.Scalar("y", intConv))
type Cache struct {
	plans map[string]*Plan
	mu    sync.RWMutex
}

// NewCache creates an empty plan cache.
func NewCache() *Cache {
	return &Cache{
		plans: make(map[string]*Plan),
	}
}

// DefaultCache backs the package-level Extract and TryExtract.
var DefaultCache = NewCache()

// cacheKey joins the template and each binding signature with NUL bytes,
// which cannot occur in a converter signature.
func cacheKey(src string, bindings []Binding) string {
	var sb strings.Builder
	sb.WriteString(src)
	for _, b := range bindings {
		sb.WriteByte(0)
		sb.WriteString(b.Signature())
	}
	return sb.String()
}

// Plan returns the cached plan for src and bindings, compiling and binding
// on a miss.
func (c *Cache) Plan(src string, bindings ...Binding) (*Plan, error) {
	key := cacheKey(src, bindings)

	c.mu.RLock()
	plan, ok := c.plans[key]
	c.mu.RUnlock()
	if ok {
		return plan, nil
	}

	plan, err := Bind(template.Compile(src), bindings...)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if existing, ok := c.plans[key]; ok {
		plan = existing
	} else {
		c.plans[key] = plan
	}
	c.mu.Unlock()

	return plan, nil
}

// Len returns the number of cached plans.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.plans)
}

// Reset drops every cached plan.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.plans = make(map[string]*Plan)
	c.mu.Unlock()
}

// Extract binds src through DefaultCache and extracts input strictly.
func Extract(input, src string, bindings ...Binding) ([]any, error) {
	plan, err := DefaultCache.Plan(src, bindings...)
	if err != nil {
		return nil, err
	}
	return plan.Extract(input)
}

// TryExtract binds src through DefaultCache and extracts input tolerantly.
// A bind failure also reports false.
func TryExtract(input, src string, bindings ...Binding) ([]any, bool) {
	plan, err := DefaultCache.Plan(src, bindings...)
	if err != nil {
		return nil, false
	}
	return plan.TryExtract(input)
}
