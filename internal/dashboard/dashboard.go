// Package dashboard holds the role-scoped state containers behind the student,
// teacher and admin dashboards.
//
// Containers follow a replace-not-patch discipline: slices held in state are
// never mutated after publication, every action swaps in a freshly built copy.
// Snapshots can therefore share backing arrays with the container.
package dashboard

import (
	"sync"
	"time"

	"github.com/noah-isme/edgylearn-api/internal/liveness"
	"github.com/noah-isme/edgylearn-api/internal/models"
)

// Board is implemented by every role container.
type Board interface {
	liveness.Target
	Role() models.Role
	// View returns the current snapshot as a JSON-serialisable value.
	View() interface{}
}

// Change describes what an action did to a single record. Found is false for a
// stale id; Applied is false when the record exists but the action left it as is.
type Change[T any] struct {
	Before  T
	After   T
	Found   bool
	Applied bool
}

// IDGenerator hands out clock based ids that strictly increase even when the
// clock stalls or goes backwards.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDGenerator builds a generator. A nil clock uses time.Now.
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Next returns the next id in milliseconds since the epoch.
func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}

// removed returns a copy of items without the element at idx.
func removed[T any](items []T, idx int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...)
}

// replaced returns a copy of items with the element at idx swapped for item.
func replaced[T any](items []T, idx int, item T) []T {
	out := make([]T, len(items))
	copy(out, items)
	out[idx] = item
	return out
}

// prepended returns item followed by items, truncated to limit when limit > 0.
func prepended[T any](item T, items []T, limit int) []T {
	n := len(items) + 1
	if limit > 0 && n > limit {
		n = limit
	}
	out := make([]T, 0, n)
	out = append(out, item)
	return append(out, items[:n-1]...)
}

func cloned[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
