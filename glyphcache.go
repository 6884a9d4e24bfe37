package headlessterm

// glyphKey identifies one cached rasterization.
type glyphKey struct {
	r     rune
	bold  bool
	italic bool
}

type glyphCacheEntry struct {
	key   glyphKey
	glyph *Glyph
	prev  *glyphCacheEntry
	next  *glyphCacheEntry
}

// GlyphCache caches FontManager.Rasterize results keyed by (rune, bold,
// italic), evicting least-recently-used entries once a size bound is
// exceeded. A terminal renders the same handful of glyphs over and over;
// rasterizing on every flush would dominate render cost otherwise.
type GlyphCache struct {
	capacity int
	entries  map[glyphKey]*glyphCacheEntry
	head     *glyphCacheEntry // most recently used
	tail     *glyphCacheEntry // least recently used
}

// NewGlyphCache creates a cache holding up to capacity glyphs. A capacity
// <= 0 is replaced with a default of 512.
func NewGlyphCache(capacity int) *GlyphCache {
	if capacity <= 0 {
		capacity = 512
	}
	return &GlyphCache{
		capacity: capacity,
		entries:  make(map[glyphKey]*glyphCacheEntry),
	}
}

// Get returns the cached Glyph for the key, rasterizing and storing it via
// fm if it is not already cached.
func (c *GlyphCache) Get(fm FontManager, r rune, bold, italic bool) *Glyph {
	key := glyphKey{r: r, bold: bold, italic: italic}

	if e, ok := c.entries[key]; ok {
		c.moveToFront(e)
		return e.glyph
	}

	glyph := fm.Rasterize(r, bold, italic)
	e := &glyphCacheEntry{key: key, glyph: glyph}
	c.entries[key] = e
	c.pushFront(e)

	if len(c.entries) > c.capacity {
		c.evictLRU()
	}

	return glyph
}

// Reset discards every cached glyph. Called when the font manager or cell
// size changes, since cached rasterizations are no longer valid.
func (c *GlyphCache) Reset() {
	c.entries = make(map[glyphKey]*glyphCacheEntry)
	c.head = nil
	c.tail = nil
}

// Len returns the number of cached glyphs.
func (c *GlyphCache) Len() int {
	return len(c.entries)
}

func (c *GlyphCache) pushFront(e *glyphCacheEntry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *GlyphCache) moveToFront(e *glyphCacheEntry) {
	if c.head == e {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

func (c *GlyphCache) unlink(e *glyphCacheEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *GlyphCache) evictLRU() {
	if c.tail == nil {
		return
	}
	lru := c.tail
	c.unlink(lru)
	delete(c.entries, lru.key)
}
