package nsgt

import (
	"container/list"
	"sync"

	"github.com/RyanBlaney/sonido-nsgt/algorithms/scale"
	"github.com/RyanBlaney/sonido-nsgt/algorithms/windowing"
)

// FrameCache keeps recently built frames, keyed by scale table, sample rate,
// signal length and the frame-shaping settings. Workers and Logger are not
// part of the key; a cached frame keeps those of the call that built it.
//
// Concurrent Gets for the same key build the frame once. Failed builds are
// not cached.
type FrameCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front is most recently used
	entries  map[cacheKey]*list.Element

	hits, misses int
}

type cacheKey struct {
	scale      uint64
	bands      int
	sampleRate float64
	length     int

	real          bool
	shape         windowing.Shape
	minWindow     int
	policy        CoefficientPolicy
	matrixForm    bool
	tight         bool
	warnTolerance float64
	engine        string
}

var errBuildAborted = newError(KindInvalidParameter, "frame build aborted")

type cacheEntry struct {
	key   cacheKey
	ready chan struct{}
	frame *Frame
	err   error
}

// NewFrameCache creates a cache holding at most capacity frames (minimum 1)
func NewFrameCache(capacity int) *FrameCache {
	return &FrameCache{
		capacity: max(1, capacity),
		order:    list.New(),
		entries:  make(map[cacheKey]*list.Element),
	}
}

func newCacheKey(s scale.Scale, sampleRate float64, length int, cfg *FrameConfig) cacheKey {
	policy, _ := ParsePolicy(string(cfg.Policy))
	return cacheKey{
		scale:         scale.Fingerprint(s),
		bands:         s.Len(),
		sampleRate:    sampleRate,
		length:        length,
		real:          cfg.Real,
		shape:         cfg.Shape,
		minWindow:     cfg.MinWindow,
		policy:        policy,
		matrixForm:    cfg.MatrixForm,
		tight:         cfg.Tight,
		warnTolerance: cfg.WarnTolerance,
		engine:        cfg.engineName(),
	}
}

// Get returns the cached frame for the arguments or builds it with
// BuildFrame. A nil cfg selects DefaultFrameConfig.
func (c *FrameCache) Get(s scale.Scale, sampleRate float64, length int, cfg *FrameConfig) (*Frame, error) {
	if s == nil {
		return nil, newError(KindInvalidScale, "scale has no bands")
	}
	if cfg == nil {
		cfg = DefaultFrameConfig()
	}
	key := newCacheKey(s, sampleRate, length, cfg)

	c.mu.Lock()
	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		c.hits++
		entry := el.Value.(*cacheEntry)
		c.mu.Unlock()

		<-entry.ready
		return entry.frame, entry.err
	}

	entry := &cacheEntry{key: key, ready: make(chan struct{})}
	c.entries[key] = c.order.PushFront(entry)
	c.misses++
	c.evict()
	c.mu.Unlock()

	// failed builds, panics included, are not kept
	defer func() {
		if entry.err != nil {
			c.remove(entry)
		}
	}()
	entry.build(s, sampleRate, length, cfg)
	return entry.frame, entry.err
}

// build runs BuildFrame and releases the waiters however it returns. A
// build that panics leaves errBuildAborted for them.
func (e *cacheEntry) build(s scale.Scale, sampleRate float64, length int, cfg *FrameConfig) {
	defer close(e.ready)
	e.err = errBuildAborted
	e.frame, e.err = BuildFrame(s, sampleRate, length, cfg)
}

// remove drops entry if it is still the one cached under its key
func (c *FrameCache) remove(entry *cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[entry.key]; ok && el.Value.(*cacheEntry) == entry {
		c.order.Remove(el)
		delete(c.entries, entry.key)
	}
}

// evict drops least recently used entries over capacity. Callers hold mu.
func (c *FrameCache) evict() {
	for c.order.Len() > c.capacity {
		el := c.order.Back()
		c.order.Remove(el)
		delete(c.entries, el.Value.(*cacheEntry).key)
	}
}

// Len returns the number of cached frames
func (c *FrameCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns the hit and miss counts
func (c *FrameCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Purge drops every cached frame
func (c *FrameCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	clear(c.entries)
}
